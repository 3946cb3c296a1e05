// Package dialect defines the driver contract consumed by the InterBase and
// Firebird dialect packages.
//
// # Dialect Constants
//
// Each supported engine family is identified by a constant string:
//
//	dialect.Firebird  = "firebird"
//	dialect.InterBase = "interbase"
//
// # Driver Interface
//
// The package defines the Driver interface for database operations:
//
//	type Driver interface {
//	    ExecQuerier
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// # ExecQuerier Interface
//
// The ExecQuerier interface is implemented by both Driver and Tx, and is the
// row cursor the catalog reflector runs its queries through:
//
//	type ExecQuerier interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	}
//
// # Usage
//
// Opening a database connection:
//
//	import (
//	    "github.com/syssam/ibx/dialect"
//	    "github.com/syssam/ibx/dialect/sql"
//	    _ "github.com/nakagami/firebirdsql"
//	)
//
//	drv, err := sql.Open(dialect.Firebird, "sysdba:masterkey@localhost:3050/var/db/test.fdb")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
// # Sub-packages
//
//   - dialect/sql: driver implementation and query operation trees
//   - dialect/sql/schema: schema definitions, validation and Atlas conversion
//   - dialect/sqlschema: DDL annotations (temporary tables, index options)
//   - dialect/interbase: compilers, catalog reflector and capabilities
package dialect
