package schema

// Operation is a schema change accepted by the DDL compiler.
//
// The set is closed: CreateTable, DropTable, AddColumn, DropColumn,
// CreateIndex, DropIndex, CreateSequence, DropSequence, SetTableComment and
// SetColumnComment.
type Operation interface {
	op()
}

type (
	// CreateTable creates a table with its inline constraints.
	CreateTable struct {
		Table       *Table
		IfNotExists bool
	}

	// DropTable drops a table.
	DropTable struct {
		Name string
	}

	// AddColumn adds a column to an existing table.
	AddColumn struct {
		Table  string
		Column *Column
	}

	// DropColumn drops a column from a table.
	DropColumn struct {
		Table  string
		Column string
	}

	// CreateIndex creates an index on Table.
	CreateIndex struct {
		Index *Index
		Table string
	}

	// DropIndex drops an index. Table is informational: the statement needs
	// only the index name.
	DropIndex struct {
		Name  string
		Table string
	}

	// CreateSequence creates a generator.
	CreateSequence struct {
		Name        string
		IfNotExists bool
	}

	// DropSequence drops a generator.
	DropSequence struct {
		Name string
	}

	// SetTableComment sets or clears a table comment.
	SetTableComment struct {
		Table   string
		Comment string
	}

	// SetColumnComment sets or clears a column comment.
	SetColumnComment struct {
		Table   string
		Column  string
		Comment string
	}
)

func (*CreateTable) op()      {}
func (*DropTable) op()        {}
func (*AddColumn) op()        {}
func (*DropColumn) op()       {}
func (*CreateIndex) op()      {}
func (*DropIndex) op()        {}
func (*CreateSequence) op()   {}
func (*DropSequence) op()     {}
func (*SetTableComment) op()  {}
func (*SetColumnComment) op() {}

// IsBoundary reports whether op changes table or index structure. The engine
// does not see such changes until they are committed, so executors commit
// after each one.
func IsBoundary(op Operation) bool {
	switch op.(type) {
	case *CreateTable, *DropTable, *AddColumn, *DropColumn, *CreateIndex, *DropIndex:
		return true
	}
	return false
}

// Target returns the name of the table or generator op changes, or "" when
// op does not say, as for a DropIndex without its table.
func Target(op Operation) string {
	switch op := op.(type) {
	case *CreateTable:
		if op.Table != nil {
			return op.Table.Name
		}
	case *DropTable:
		return op.Name
	case *AddColumn:
		return op.Table
	case *DropColumn:
		return op.Table
	case *CreateIndex:
		return op.Table
	case *DropIndex:
		return op.Table
	case *CreateSequence:
		return op.Name
	case *DropSequence:
		return op.Name
	case *SetTableComment:
		return op.Table
	case *SetColumnComment:
		return op.Table
	}
	return ""
}
