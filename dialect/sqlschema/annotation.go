// Package sqlschema provides Firebird-specific DDL annotations for tables,
// foreign keys and indexes.
//
// Import this package as:
//
//	import "github.com/syssam/ibx/dialect/sqlschema"
//
// # API Styles
//
// Functional style:
//
//	sqlschema.Temporary(sqlschema.PreserveRows)
//	sqlschema.WithComments(false)
//
// Struct literal style:
//
//	sqlschema.Annotation{
//	    Prefixes: []string{"GLOBAL TEMPORARY"},
//	    OnCommit: sqlschema.PreserveRows,
//	}
//
// # Table Annotations
//
// Global temporary tables:
//
//	t := &schema.Table{
//	    Name:       "session_data",
//	    Annotation: sqlschema.Temporary(sqlschema.DeleteRows),
//	}
//
// renders as:
//
//	CREATE GLOBAL TEMPORARY TABLE session_data (...)
//	 ON COMMIT DELETE ROWS
//
// # Cascade Actions
//
// Available constants for ForeignKey.OnDelete and ForeignKey.OnUpdate:
//
//	sqlschema.Cascade    - Delete/update related rows
//	sqlschema.SetNull    - Set foreign key to NULL
//	sqlschema.Restrict   - Prevent delete/update if related rows exist
//	sqlschema.SetDefault - Set foreign key to default value
//	sqlschema.NoAction   - No action (database default)
package sqlschema

import "strings"

// AnnotationName is the name used for SQL annotations.
const AnnotationName = "sql"

// CascadeAction defines cascade behavior for foreign key constraints.
type CascadeAction string

const (
	Cascade    CascadeAction = "CASCADE"
	SetNull    CascadeAction = "SET NULL"
	Restrict   CascadeAction = "RESTRICT"
	SetDefault CascadeAction = "SET DEFAULT"
	NoAction   CascadeAction = "NO ACTION"
)

// IsDefault reports whether the action is the engine default and can be
// omitted from the rendered constraint.
func (a CascadeAction) IsDefault() bool {
	switch CascadeAction(strings.ToUpper(strings.TrimSpace(string(a)))) {
	case "", NoAction, Restrict:
		return true
	}
	return false
}

// OnCommit is the row lifetime of a global temporary table.
type OnCommit string

const (
	// PreserveRows keeps rows until the connection ends.
	PreserveRows OnCommit = "PRESERVE ROWS"
	// DeleteRows clears rows at the end of each transaction.
	DeleteRows OnCommit = "DELETE ROWS"
)

// TemporaryPrefix is the CREATE TABLE prefix for global temporary tables.
const TemporaryPrefix = "GLOBAL TEMPORARY"

// Annotation holds DDL options for a table.
type Annotation struct {
	// Prefixes are keywords placed between CREATE and TABLE.
	Prefixes []string `yaml:"prefixes,omitempty"`

	// OnCommit appends an ON COMMIT clause after the column list.
	OnCommit OnCommit `yaml:"on_commit,omitempty"`

	// WithComments controls whether table and column comments are emitted
	// as COMMENT ON statements. Nil means enabled.
	WithComments *bool `yaml:"with_comments,omitempty"`
}

// Name returns the annotation name.
func (Annotation) Name() string {
	return AnnotationName
}

// Temporary marks a table as GLOBAL TEMPORARY with the given row lifetime.
// An empty OnCommit leaves the clause out and the engine default applies.
func Temporary(onCommit OnCommit) *Annotation {
	return &Annotation{
		Prefixes: []string{TemporaryPrefix},
		OnCommit: onCommit,
	}
}

// Prefixes returns an annotation carrying the given CREATE TABLE prefixes.
func Prefixes(prefixes ...string) *Annotation {
	return &Annotation{Prefixes: prefixes}
}

// WithComments controls whether comments are stored in the database.
func WithComments(enable bool) *Annotation {
	return &Annotation{WithComments: &enable}
}

// Merge combines two annotations. Values set on other win.
func (a *Annotation) Merge(other *Annotation) *Annotation {
	if a == nil {
		return other
	}
	if other == nil {
		return a
	}
	merged := *a
	if len(other.Prefixes) > 0 {
		merged.Prefixes = append(append([]string(nil), a.Prefixes...), other.Prefixes...)
	}
	if other.OnCommit != "" {
		merged.OnCommit = other.OnCommit
	}
	if other.WithComments != nil {
		merged.WithComments = other.WithComments
	}
	return &merged
}

// CommentsEnabled reports whether COMMENT ON statements should be emitted.
func (a *Annotation) CommentsEnabled() bool {
	return a == nil || a.WithComments == nil || *a.WithComments
}

// IsTemporary reports whether the annotation declares a temporary table.
func (a *Annotation) IsTemporary() bool {
	if a == nil {
		return false
	}
	for _, p := range a.Prefixes {
		if strings.EqualFold(strings.TrimSpace(p), TemporaryPrefix) {
			return true
		}
	}
	return false
}
