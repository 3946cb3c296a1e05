// Package interbase implements the InterBase and Firebird dialect: the type
// registry, identifier preparer, statement and DDL compilers, the catalog
// reflector and the capability descriptor they share.
//
// # Capabilities
//
// A Dialect is built once per connection. Open reads the engine version from
// rdb$get_context('SYSTEM', 'ENGINE_VERSION') and derives the Capabilities
// that every compile and reflect call consults:
//
//	drv, err := sql.Open(dialect.Firebird, dsn)
//	if err != nil {
//	    return err
//	}
//	d, err := interbase.Open(ctx, drv)
//	if err != nil {
//	    return err
//	}
//	query, args, err := d.Compile(sql.Select("id").From(sql.Table("users")).Limit(10))
//
// # Reflection
//
// The Reflector rebuilds tables, views, sequences and domains from the rdb$
// system tables. Names are logical: upper-case catalog names come back in
// lower case, and lower-case names are upper-cased before lookup. Results
// are cached msgpack-encoded in an ibx.Cache, so each call returns its own
// copy. Call Invalidate after changing the schema.
//
// # DDL transaction boundary
//
// The engine does not expose a new or dropped table or index to later
// statements until the transaction creating it commits. Migrator.Apply
// commits after each such operation. Callers executing the statements of
// CompileDDL or CompileAll themselves own this boundary.
package interbase
