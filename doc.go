// Package ibx holds the types shared by the InterBase/Firebird dialect
// packages: the error taxonomy and the reflection cache contract.
//
// The engine itself lives in dialect/interbase. Query operation trees are
// built with dialect/sql, and schema definitions with dialect/sql/schema.
package ibx
