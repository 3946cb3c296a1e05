package schema

import (
	"fmt"
	"strings"
)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Table   string
	Column  string
	Message string
	// Breaking indicates if this is a breaking change.
	Breaking bool
}

func (e *ValidationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s.%s: %s", e.Table, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Table, e.Message)
}

// ValidationResult holds the results of schema validation.
type ValidationResult struct {
	Errors   []*ValidationError
	Warnings []*ValidationError
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// HasBreakingChanges returns true if there are any breaking changes.
func (r *ValidationResult) HasBreakingChanges() bool {
	for _, e := range r.Errors {
		if e.Breaking {
			return true
		}
	}
	for _, w := range r.Warnings {
		if w.Breaking {
			return true
		}
	}
	return false
}

// String returns a human-readable summary of the validation result.
func (r *ValidationResult) String() string {
	var sb strings.Builder
	if len(r.Errors) > 0 {
		sb.WriteString("Errors:\n")
		for _, e := range r.Errors {
			sb.WriteString("  - ")
			sb.WriteString(e.Error())
			if e.Breaking {
				sb.WriteString(" [BREAKING]")
			}
			sb.WriteString("\n")
		}
	}
	if len(r.Warnings) > 0 {
		sb.WriteString("Warnings:\n")
		for _, w := range r.Warnings {
			sb.WriteString("  - ")
			sb.WriteString(w.Error())
			if w.Breaking {
				sb.WriteString(" [BREAKING]")
			}
			sb.WriteString("\n")
		}
	}
	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}
	return sb.String()
}

// ValidateOption configures schema validation.
type ValidateOption func(*validateConfig)

type validateConfig struct {
	allowDropColumn    bool
	allowDropTable     bool
	allowDropIndex     bool
	allowNullToNotNull bool
}

// AllowDropColumn allows dropping columns without error.
func AllowDropColumn() ValidateOption {
	return func(c *validateConfig) {
		c.allowDropColumn = true
	}
}

// AllowDropTable allows dropping tables without error.
func AllowDropTable() ValidateOption {
	return func(c *validateConfig) {
		c.allowDropTable = true
	}
}

// AllowDropIndex allows dropping indexes without error.
func AllowDropIndex() ValidateOption {
	return func(c *validateConfig) {
		c.allowDropIndex = true
	}
}

// AllowNullToNotNull allows changing nullable columns to not null.
func AllowNullToNotNull() ValidateOption {
	return func(c *validateConfig) {
		c.allowNullToNotNull = true
	}
}

// ValidateDiff validates the difference between current and desired schema.
// It returns validation errors for breaking changes and warnings for potentially
// dangerous operations.
//
// Example:
//
//	result := schema.ValidateDiff(current, desired)
//	if result.HasBreakingChanges() {
//	    log.Fatal("Breaking changes detected:", result)
//	}
//	if result.HasWarnings() {
//	    log.Println("Warnings:", result)
//	}
func ValidateDiff(current, desired []*Table, opts ...ValidateOption) *ValidationResult {
	cfg := &validateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	result := &ValidationResult{}
	currentMap := make(map[string]*Table, len(current))
	for _, t := range current {
		currentMap[t.Name] = t
	}
	desiredMap := make(map[string]*Table, len(desired))
	for _, t := range desired {
		desiredMap[t.Name] = t
	}

	// Check for dropped tables
	for name := range currentMap {
		if _, ok := desiredMap[name]; !ok {
			err := &ValidationError{
				Table:    name,
				Message:  "table will be dropped",
				Breaking: true,
			}
			if cfg.allowDropTable {
				result.Warnings = append(result.Warnings, err)
			} else {
				result.Errors = append(result.Errors, err)
			}
		}
	}

	// Check for changes in existing tables
	for name, desired := range desiredMap {
		current, exists := currentMap[name]
		if !exists {
			// New table, no validation needed
			continue
		}
		validateTableDiff(current, desired, cfg, result)
	}

	return result
}

func validateTableDiff(current, desired *Table, cfg *validateConfig, result *ValidationResult) {
	currentCols := make(map[string]*Column, len(current.Columns))
	for _, c := range current.Columns {
		currentCols[c.Name] = c
	}

	// Check for dropped columns
	for name := range currentCols {
		if _, found := desired.Column(name); !found {
			err := &ValidationError{
				Table:    current.Name,
				Column:   name,
				Message:  "column will be dropped",
				Breaking: true,
			}
			if cfg.allowDropColumn {
				result.Warnings = append(result.Warnings, err)
			} else {
				result.Errors = append(result.Errors, err)
			}
		}
	}

	// Check for column changes
	for _, desiredCol := range desired.Columns {
		currentCol, exists := currentCols[desiredCol.Name]
		if !exists {
			// New column
			if !desiredCol.Nullable && desiredCol.Default == nil && desiredCol.Identity == nil {
				result.Warnings = append(result.Warnings, &ValidationError{
					Table:   current.Name,
					Column:  desiredCol.Name,
					Message: "new NOT NULL column without default value may fail if table has data",
				})
			}
			continue
		}

		// Type change
		if !currentCol.Type.Equal(desiredCol.Type) {
			result.Warnings = append(result.Warnings, &ValidationError{
				Table:   current.Name,
				Column:  desiredCol.Name,
				Message: fmt.Sprintf("column type changing from %v to %v", currentCol.Type, desiredCol.Type),
			})
		}

		// Nullable to NOT NULL
		if currentCol.Nullable && !desiredCol.Nullable {
			err := &ValidationError{
				Table:    current.Name,
				Column:   desiredCol.Name,
				Message:  "column changing from NULL to NOT NULL may fail if column has NULL values",
				Breaking: true,
			}
			if cfg.allowNullToNotNull {
				result.Warnings = append(result.Warnings, err)
			} else {
				result.Errors = append(result.Errors, err)
			}
		}

		// Length reduction
		if cl, dl := currentCol.Type.Length, desiredCol.Type.Length; cl > 0 && dl > 0 && dl < cl {
			result.Warnings = append(result.Warnings, &ValidationError{
				Table:   current.Name,
				Column:  desiredCol.Name,
				Message: fmt.Sprintf("column length reducing from %d to %d may truncate data", cl, dl),
			})
		}

		// Identity switched on an existing column
		if currentCol.Identity == nil && desiredCol.Identity != nil {
			result.Warnings = append(result.Warnings, &ValidationError{
				Table:    current.Name,
				Column:   desiredCol.Name,
				Message:  "column cannot become an identity column in place",
				Breaking: true,
			})
		}
	}

	// Unique constraints added
	currentUniques := make(map[string]bool, len(current.Uniques))
	for _, u := range current.Uniques {
		currentUniques[strings.Join(u.Columns, ",")] = true
	}
	for _, u := range desired.Uniques {
		if !currentUniques[strings.Join(u.Columns, ",")] {
			result.Warnings = append(result.Warnings, &ValidationError{
				Table:   current.Name,
				Column:  strings.Join(u.Columns, ","),
				Message: "adding UNIQUE constraint may fail if duplicate values exist",
			})
		}
	}

	// Check for dropped indexes
	for _, idx := range current.Indexes {
		if _, found := desired.Index(idx.Name); !found {
			err := &ValidationError{
				Table:   current.Name,
				Message: fmt.Sprintf("index %q will be dropped", idx.Name),
			}
			if cfg.allowDropIndex {
				result.Warnings = append(result.Warnings, err)
			} else {
				result.Errors = append(result.Errors, err)
			}
		}
	}
}

// ValidateTable validates a single table definition.
func ValidateTable(t *Table) *ValidationResult {
	result := &ValidationResult{}
	addErr := func(column, format string, args ...any) {
		result.Errors = append(result.Errors, &ValidationError{
			Table:   t.Name,
			Column:  column,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if t.Name == "" {
		addErr("", "table has no name")
	}

	// Check for duplicate column names
	colNames := make(map[string]bool)
	for _, c := range t.Columns {
		if colNames[c.Name] {
			addErr(c.Name, "duplicate column name")
		}
		colNames[c.Name] = true
		if c.Identity != nil && c.Default != nil {
			addErr(c.Name, "column cannot have both an identity and a default")
		}
		if c.Computed != nil && c.Computed.Persisted != nil {
			addErr(c.Name, "persisted computed columns are not supported")
		}
	}

	// Check for primary key
	if t.PrimaryKey == nil || len(t.PrimaryKey.Columns) == 0 {
		result.Warnings = append(result.Warnings, &ValidationError{
			Table:   t.Name,
			Message: "table has no primary key",
		})
	} else {
		for _, name := range t.PrimaryKey.Columns {
			if !colNames[name] {
				addErr("", "primary key references non-existent column %q", name)
			}
		}
	}

	// Check for duplicate index names
	idxNames := make(map[string]bool)
	for _, idx := range t.Indexes {
		if idx.Name == "" {
			addErr("", "index has no name")
		}
		if idxNames[idx.Name] {
			addErr("", "duplicate index name: %s", idx.Name)
		}
		idxNames[idx.Name] = true
		if len(idx.Columns) == 0 && len(idx.Expressions) == 0 {
			addErr("", "index %q has no columns or expressions", idx.Name)
		}

		// Check that index columns exist. Empty slots stand for expressions.
		for _, col := range idx.Columns {
			if col != "" && !colNames[col] {
				addErr("", "index %q references non-existent column %q", idx.Name, col)
			}
		}
	}

	for _, u := range t.Uniques {
		for _, col := range u.Columns {
			if !colNames[col] {
				addErr("", "unique constraint %q references non-existent column %q", u.Name, col)
			}
		}
	}

	// Check foreign keys
	for _, fk := range t.ForeignKeys {
		for _, col := range fk.Columns {
			if !colNames[col] {
				addErr("", "foreign key references non-existent column %q", col)
			}
		}
		if len(fk.Columns) != len(fk.RefColumns) {
			addErr("", "foreign key %q has %d columns but references %d", fk.Name, len(fk.Columns), len(fk.RefColumns))
		}
	}

	return result
}

// ValidateSchema validates all tables in a schema.
func ValidateSchema(tables []*Table) *ValidationResult {
	result := &ValidationResult{}

	byName := make(map[string]*Table, len(tables))
	for _, t := range tables {
		// Check for duplicate table names
		if _, ok := byName[t.Name]; ok {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   t.Name,
				Message: "duplicate table name",
			})
		}
		byName[t.Name] = t

		// Validate individual table
		tableResult := ValidateTable(t)
		result.Errors = append(result.Errors, tableResult.Errors...)
		result.Warnings = append(result.Warnings, tableResult.Warnings...)
	}

	// Validate foreign key references
	for _, t := range tables {
		for _, fk := range t.ForeignKeys {
			ref, ok := byName[fk.RefTable]
			if !ok {
				result.Errors = append(result.Errors, &ValidationError{
					Table:   t.Name,
					Message: fmt.Sprintf("foreign key references non-existent table %q", fk.RefTable),
				})
				continue
			}
			for _, col := range fk.RefColumns {
				if _, ok := ref.Column(col); !ok {
					result.Errors = append(result.Errors, &ValidationError{
						Table:   t.Name,
						Message: fmt.Sprintf("foreign key references non-existent column %q in table %q", col, fk.RefTable),
					})
				}
			}
		}
	}

	return result
}
