// Package schema holds the relational data model shared by the DDL compiler
// and the catalog reflector: tables, columns, constraints, indexes, sequences,
// domains and views, plus the schema operations the DDL compiler accepts.
package schema

import (
	"fmt"
	"strings"

	"github.com/syssam/ibx/dialect/sqlschema"
)

// Autoincrement is the tri-state autoincrement setting of a column.
type Autoincrement int8

const (
	// AutoincrementAuto lets the DDL compiler decide. After reflection it
	// also means the engine could not tell.
	AutoincrementAuto Autoincrement = iota
	AutoincrementEnabled
	AutoincrementDisabled
)

// String implements fmt.Stringer.
func (a Autoincrement) String() string {
	switch a {
	case AutoincrementEnabled:
		return "enabled"
	case AutoincrementDisabled:
		return "disabled"
	default:
		return "auto"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Autoincrement) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Autoincrement) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "auto":
		*a = AutoincrementAuto
	case "enabled", "true":
		*a = AutoincrementEnabled
	case "disabled", "false":
		*a = AutoincrementDisabled
	default:
		return fmt.Errorf("schema: invalid autoincrement value %q", text)
	}
	return nil
}

// Computed describes a COMPUTED BY column.
type Computed struct {
	Expr string `yaml:"expr"`
	// Persisted is not supported by the engine and must stay nil.
	Persisted *bool `yaml:"persisted,omitempty"`
}

// Identity describes a GENERATED ... AS IDENTITY column.
type Identity struct {
	Always    bool   `yaml:"always,omitempty"`
	Start     *int64 `yaml:"start,omitempty"`
	Increment *int64 `yaml:"increment,omitempty"`
}

// Sequence names a generator. On a column it is the generator feeding it.
type Sequence struct {
	Name string `yaml:"name"`
	// Optional sequences are used only when the engine has no better way to
	// produce values for the column.
	Optional bool `yaml:"optional,omitempty"`
}

// Column describes a table column.
type Column struct {
	Name     string     `yaml:"name"`
	Type     ColumnType `yaml:"type"`
	Nullable bool       `yaml:"nullable,omitempty"`
	// Default is the raw SQL text of the default value.
	Default       *string       `yaml:"default,omitempty"`
	Computed      *Computed     `yaml:"computed,omitempty"`
	Identity      *Identity     `yaml:"identity,omitempty"`
	Comment       string        `yaml:"comment,omitempty"`
	Autoincrement Autoincrement `yaml:"autoincrement,omitempty"`
	Sequence      *Sequence     `yaml:"sequence,omitempty"`
	// Quote is set when the catalog name must be quoted to keep its case.
	Quote bool `yaml:"quote,omitempty"`
}

// NewColumn returns a NOT NULL column of the given type.
func NewColumn(name string, typ ColumnType) *Column {
	return &Column{Name: name, Type: typ}
}

// SetNullable sets the nullability of the column.
func (c *Column) SetNullable(b bool) *Column {
	c.Nullable = b
	return c
}

// SetDefault sets the raw SQL default of the column.
func (c *Column) SetDefault(expr string) *Column {
	c.Default = &expr
	return c
}

// SetIdentity marks the column as an identity column.
func (c *Column) SetIdentity(id *Identity) *Column {
	c.Identity = id
	return c
}

// SetComment sets the column comment.
func (c *Column) SetComment(comment string) *Column {
	c.Comment = comment
	return c
}

// PrimaryKey is a table primary key constraint.
type PrimaryKey struct {
	Name    string   `yaml:"name,omitempty"`
	Columns []string `yaml:"columns"`
}

// ForeignKey is a foreign key constraint.
type ForeignKey struct {
	Name       string                  `yaml:"name,omitempty"`
	Columns    []string                `yaml:"columns"`
	RefTable   string                  `yaml:"ref_table"`
	RefColumns []string                `yaml:"ref_columns"`
	OnUpdate   sqlschema.CascadeAction `yaml:"on_update,omitempty"`
	OnDelete   sqlschema.CascadeAction `yaml:"on_delete,omitempty"`
}

// Unique is a unique constraint.
type Unique struct {
	Name    string   `yaml:"name,omitempty"`
	Columns []string `yaml:"columns"`
}

// Check is a check constraint.
type Check struct {
	Name string `yaml:"name,omitempty"`
	Expr string `yaml:"expr"`
}

// Index describes a table index. A column index lists Columns. An
// expression index lists Expressions, and after reflection its Columns hold
// one slot per expression token: the column name when the token is a plain
// column, and "" otherwise.
type Index struct {
	Name        string   `yaml:"name"`
	Unique      bool     `yaml:"unique,omitempty"`
	Descending  bool     `yaml:"descending,omitempty"`
	Columns     []string `yaml:"columns,omitempty"`
	Expressions []string `yaml:"expressions,omitempty"`
	// Where is the partial index predicate.
	Where string `yaml:"where,omitempty"`
}

// Table describes a database table.
type Table struct {
	Name        string                `yaml:"name"`
	Columns     []*Column             `yaml:"columns"`
	PrimaryKey  *PrimaryKey           `yaml:"primary_key,omitempty"`
	ForeignKeys []*ForeignKey         `yaml:"foreign_keys,omitempty"`
	Uniques     []*Unique             `yaml:"uniques,omitempty"`
	Checks      []*Check              `yaml:"checks,omitempty"`
	Indexes     []*Index              `yaml:"indexes,omitempty"`
	Comment     string                `yaml:"comment,omitempty"`
	Annotation  *sqlschema.Annotation `yaml:"annotation,omitempty"`
}

// NewTable returns a new table with the given name.
func NewTable(name string) *Table {
	return &Table{Name: name}
}

// AddColumns appends the given columns to the table.
func (t *Table) AddColumns(columns ...*Column) *Table {
	t.Columns = append(t.Columns, columns...)
	return t
}

// SetPrimaryKey sets the primary key columns of the table.
func (t *Table) SetPrimaryKey(name string, columns ...string) *Table {
	t.PrimaryKey = &PrimaryKey{Name: name, Columns: columns}
	return t
}

// AddForeignKeys appends the given foreign keys to the table.
func (t *Table) AddForeignKeys(fks ...*ForeignKey) *Table {
	t.ForeignKeys = append(t.ForeignKeys, fks...)
	return t
}

// AddIndex appends a column index to the table.
func (t *Table) AddIndex(name string, unique bool, columns ...string) *Table {
	t.Indexes = append(t.Indexes, &Index{Name: name, Unique: unique, Columns: columns})
	return t
}

// SetAnnotation sets the DDL annotation of the table.
func (t *Table) SetAnnotation(ant *sqlschema.Annotation) *Table {
	t.Annotation = ant
	return t
}

// SetComment sets the table comment.
func (t *Table) SetComment(c string) *Table {
	t.Comment = c
	return t
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Index returns the index with the given name.
func (t *Table) Index(name string) (*Index, bool) {
	for _, idx := range t.Indexes {
		if idx.Name == name {
			return idx, true
		}
	}
	return nil, false
}

// AutoincrementColumn returns the column whose values are produced by an
// emulated generator and trigger, or nil. That is the single-column integer
// primary key that has autoincrement not disabled, no identity, and no
// default other than an optional sequence.
func (t *Table) AutoincrementColumn() *Column {
	if t.PrimaryKey == nil || len(t.PrimaryKey.Columns) != 1 {
		return nil
	}
	c, ok := t.Column(t.PrimaryKey.Columns[0])
	if !ok {
		return nil
	}
	switch {
	case !c.Type.Kind.IsInteger(),
		c.Autoincrement == AutoincrementDisabled,
		c.Identity != nil,
		c.Computed != nil,
		c.Default != nil,
		c.Sequence != nil && !c.Sequence.Optional:
		return nil
	}
	return c
}

// Domain is a user-defined domain.
type Domain struct {
	Name     string     `yaml:"name"`
	Type     ColumnType `yaml:"type"`
	Nullable bool       `yaml:"nullable,omitempty"`
	Default  *string    `yaml:"default,omitempty"`
	Check    string     `yaml:"check,omitempty"`
	Comment  string     `yaml:"comment,omitempty"`
}

// View is a view and its defining query.
type View struct {
	Name       string `yaml:"name"`
	Definition string `yaml:"definition"`
}
