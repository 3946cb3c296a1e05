package sql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/syssam/ibx/dialect"
)

// Driver adapts a *sql.DB opened with a Firebird or InterBase database/sql
// driver to dialect.Driver.
type Driver struct {
	Conn
	dialect string
}

var _ dialect.Driver = (*Driver)(nil)

// NewDriver returns a Driver for c. The dialect name is usually the name the
// database/sql driver was registered under.
func NewDriver(dialect string, c Conn) *Driver {
	return &Driver{Conn: c, dialect: dialect}
}

// Open opens a database with sql.Open and wraps it in a Driver.
func Open(dialect, source string) (*Driver, error) {
	db, err := sql.Open(dialect, source)
	if err != nil {
		return nil, err
	}
	return OpenDB(dialect, db), nil
}

// OpenDB wraps an already opened database.
func OpenDB(dialect string, db *sql.DB) *Driver {
	return NewDriver(dialect, Conn{db, dialect})
}

// DB returns the wrapped database.
func (d Driver) DB() *sql.DB {
	return d.ExecQuerier.(*sql.DB)
}

// Dialect returns dialect.Firebird or dialect.InterBase when the registered
// driver name starts with one of them, as decorated driver names do
// ("firebirdsql", "interbase-otel"). Other names are returned unchanged.
func (d Driver) Dialect() string {
	switch {
	case strings.HasPrefix(d.dialect, dialect.Firebird):
		return dialect.Firebird
	case strings.HasPrefix(d.dialect, dialect.InterBase):
		return dialect.InterBase
	default:
		return d.dialect
	}
}

// Tx starts a transaction with the engine defaults.
func (d *Driver) Tx(ctx context.Context) (dialect.Tx, error) {
	tx, err := d.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{Conn: Conn{tx, d.dialect}, Tx: tx}, nil
}

// Close closes the database.
func (d *Driver) Close() error { return d.DB().Close() }

// Tx is a dialect.Tx bound to one attachment.
type Tx struct {
	Conn
	driver.Tx
}

// ExecQuerier is implemented by *sql.DB, *sql.Tx and *sql.Conn.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Conn implements dialect.ExecQuerier on top of an ExecQuerier.
type Conn struct {
	ExecQuerier
	dialect string
}

// Exec runs a statement. args must be a []any and v either nil or a
// *sql.Result that receives the result.
func (c Conn) Exec(ctx context.Context, query string, args, v any) error {
	argv, err := arguments(args)
	if err != nil {
		return err
	}
	var dst *sql.Result
	switch v := v.(type) {
	case nil:
	case *sql.Result:
		dst = v
	default:
		return fmt.Errorf("dialect/sql: exec: unexpected destination %T, want *sql.Result", v)
	}
	res, err := c.ExecContext(ctx, query, argv...)
	if err != nil {
		return fmt.Errorf("dialect/sql: exec: %w", err)
	}
	if dst != nil {
		*dst = res
	}
	return nil
}

// Query runs a query. args must be a []any and v a *Rows that receives the
// open result set. The caller closes it.
func (c Conn) Query(ctx context.Context, query string, args, v any) error {
	dst, ok := v.(*Rows)
	if !ok {
		return fmt.Errorf("dialect/sql: query: unexpected destination %T, want *sql.Rows", v)
	}
	argv, err := arguments(args)
	if err != nil {
		return err
	}
	rows, err := c.QueryContext(ctx, query, argv...)
	if err != nil {
		return fmt.Errorf("dialect/sql: query: %w", err)
	}
	*dst = Rows{rows}
	return nil
}

func arguments(args any) ([]any, error) {
	argv, ok := args.([]any)
	if !ok {
		return nil, fmt.Errorf("dialect/sql: unexpected arguments %T, want []any", args)
	}
	return argv, nil
}

type (
	// Rows holds an open result set. It wraps the scanner in a struct so
	// that *sql.Rows is never copied.
	Rows struct{ ColumnScanner }
	// Result is sql.Result.
	Result = sql.Result
	// NullInt64 is sql.NullInt64.
	NullInt64 = sql.NullInt64
	// NullString is sql.NullString.
	NullString = sql.NullString
)

// ColumnScanner is the subset of *sql.Rows the catalog readers use.
type ColumnScanner interface {
	Close() error
	ColumnTypes() ([]*sql.ColumnType, error)
	Columns() ([]string, error)
	Err() error
	Next() bool
	NextResultSet() bool
	Scan(dest ...any) error
}
