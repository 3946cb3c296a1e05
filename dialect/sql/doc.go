// Package sql provides the database/sql driver wrapper and the query tree
// compiled by the Firebird and InterBase dialect.
//
// # Query Trees
//
// Builders produce a dialect-neutral tree. Rendering happens in the dialect
// compiler, which consults the server capabilities:
//
//   - Selector: SELECT with joins, predicates, grouping, ordering, paging and locks
//   - InsertBuilder: INSERT with an optional RETURNING clause
//   - UpdateBuilder: UPDATE with SET and WHERE clauses
//   - DeleteBuilder: DELETE with WHERE predicates
//
// Example:
//
//	users := sql.Table("users").As("u")
//	q := sql.Select("u.id", "u.name").
//	    From(users).
//	    Where(sql.EQ("u.status", "active")).
//	    OrderBy("u.name").
//	    Offset(20).
//	    Limit(10)
//
//	query, args, err := d.Compile(q) // d is an *interbase.Dialect
//	// SELECT u.id, u.name FROM users u WHERE u.status = ? ORDER BY u.name ROWS 21 TO 30
//
// # Predicates
//
//	sql.EQ("name", "john")           // name = ?
//	sql.NEQ("status", "deleted")     // status <> ?
//	sql.GT("age", 18)                // age > ?
//	sql.HasPrefix("email", "admin")  // email STARTING WITH ?
//	sql.ContainsFold("name", "jo")   // name CONTAINING ?
//	sql.IsNull("deleted_at")         // deleted_at IS NULL
//	sql.In("status", "a", "b")       // status IN (?, ?)
//
// # Drivers
//
// Driver wraps a *sql.DB opened with a registered database/sql driver, such
// as github.com/nakagami/firebirdsql. StatsDriver and DebugDriver decorate it
// with statistics and slog logging, and StatsCollector exports the statistics
// to Prometheus.
package sql
