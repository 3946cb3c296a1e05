package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usersTable() *Table {
	return NewTable("users").
		AddColumns(
			NewColumn("id", Simple(Integer)),
			NewColumn("email", VarCharType(255)),
			NewColumn("bio", TextBlobType()).SetNullable(true),
		).
		SetPrimaryKey("pk_users", "id").
		AddIndex("ix_users_email", true, "email")
}

func TestValidateTable(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		res := ValidateTable(usersTable())
		assert.False(t, res.HasErrors(), res.String())
		assert.False(t, res.HasWarnings(), res.String())
		assert.Equal(t, "No issues found", res.String())
	})
	t.Run("no_primary_key", func(t *testing.T) {
		tbl := usersTable()
		tbl.PrimaryKey = nil
		res := ValidateTable(tbl)
		assert.False(t, res.HasErrors())
		require.True(t, res.HasWarnings())
		assert.Contains(t, res.Warnings[0].Message, "no primary key")
	})
	t.Run("duplicate_column", func(t *testing.T) {
		tbl := usersTable().AddColumns(NewColumn("email", VarCharType(10)))
		res := ValidateTable(tbl)
		require.True(t, res.HasErrors())
		assert.Equal(t, "users.email: duplicate column name", res.Errors[0].Error())
	})
	t.Run("missing_key_columns", func(t *testing.T) {
		tbl := usersTable().SetPrimaryKey("", "uid")
		tbl.AddIndex("ix_ghost", false, "ghost")
		tbl.AddForeignKeys(&ForeignKey{Name: "fk", Columns: []string{"org_id"}, RefTable: "orgs", RefColumns: []string{"id"}})
		res := ValidateTable(tbl)
		require.Len(t, res.Errors, 3)
		assert.Contains(t, res.String(), `primary key references non-existent column "uid"`)
		assert.Contains(t, res.String(), `index "ix_ghost" references non-existent column "ghost"`)
		assert.Contains(t, res.String(), `foreign key references non-existent column "org_id"`)
	})
	t.Run("expression_slots", func(t *testing.T) {
		tbl := usersTable()
		tbl.Indexes = append(tbl.Indexes, &Index{
			Name:        "ix_lower_email",
			Columns:     []string{"", "email"},
			Expressions: []string{"LOWER(email)", "email"},
		})
		assert.False(t, ValidateTable(tbl).HasErrors())
	})
	t.Run("empty_index", func(t *testing.T) {
		tbl := usersTable()
		tbl.Indexes = append(tbl.Indexes, &Index{Name: "ix_empty"})
		res := ValidateTable(tbl)
		require.True(t, res.HasErrors())
		assert.Contains(t, res.Errors[0].Message, "no columns or expressions")
	})
	t.Run("identity_with_default", func(t *testing.T) {
		tbl := usersTable()
		tbl.Columns[0].SetIdentity(&Identity{Always: true}).SetDefault("0")
		res := ValidateTable(tbl)
		require.True(t, res.HasErrors())
		assert.Equal(t, "id", res.Errors[0].Column)
	})
}

func TestValidateSchema(t *testing.T) {
	posts := NewTable("posts").
		AddColumns(NewColumn("id", Simple(Integer)), NewColumn("author_id", Simple(Integer))).
		SetPrimaryKey("", "id").
		AddForeignKeys(&ForeignKey{Columns: []string{"author_id"}, RefTable: "users", RefColumns: []string{"id"}})

	res := ValidateSchema([]*Table{usersTable(), posts})
	assert.False(t, res.HasErrors(), res.String())

	res = ValidateSchema([]*Table{posts})
	require.True(t, res.HasErrors())
	assert.Contains(t, res.Errors[0].Message, `non-existent table "users"`)

	posts.ForeignKeys[0].RefColumns = []string{"uid"}
	res = ValidateSchema([]*Table{usersTable(), posts, usersTable()})
	require.Len(t, res.Errors, 2)
	assert.Contains(t, res.String(), "duplicate table name")
	assert.Contains(t, res.String(), `non-existent column "uid" in table "users"`)
}

func TestValidateDiff(t *testing.T) {
	t.Run("no_changes", func(t *testing.T) {
		res := ValidateDiff([]*Table{usersTable()}, []*Table{usersTable()})
		assert.False(t, res.HasErrors())
		assert.False(t, res.HasWarnings())
	})
	t.Run("drop_table", func(t *testing.T) {
		res := ValidateDiff([]*Table{usersTable()}, nil)
		require.True(t, res.HasErrors())
		assert.True(t, res.HasBreakingChanges())

		res = ValidateDiff([]*Table{usersTable()}, nil, AllowDropTable())
		assert.False(t, res.HasErrors())
		assert.True(t, res.HasWarnings())
	})
	t.Run("drop_column", func(t *testing.T) {
		desired := usersTable()
		desired.Columns = desired.Columns[:2]
		res := ValidateDiff([]*Table{usersTable()}, []*Table{desired})
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "bio", res.Errors[0].Column)

		res = ValidateDiff([]*Table{usersTable()}, []*Table{desired}, AllowDropColumn())
		assert.False(t, res.HasErrors())
	})
	t.Run("null_to_not_null", func(t *testing.T) {
		desired := usersTable()
		desired.Columns[2].Nullable = false
		res := ValidateDiff([]*Table{usersTable()}, []*Table{desired})
		require.Len(t, res.Errors, 1)
		assert.True(t, res.Errors[0].Breaking)

		res = ValidateDiff([]*Table{usersTable()}, []*Table{desired}, AllowNullToNotNull())
		assert.False(t, res.HasErrors())
	})
	t.Run("type_and_length", func(t *testing.T) {
		desired := usersTable()
		desired.Columns[1].Type = VarCharType(100)
		res := ValidateDiff([]*Table{usersTable()}, []*Table{desired})
		assert.False(t, res.HasErrors())
		require.Len(t, res.Warnings, 2)
		assert.Contains(t, res.Warnings[0].Message, "column type changing")
		assert.Contains(t, res.Warnings[1].Message, "reducing from 255 to 100")
	})
	t.Run("new_columns_and_uniques", func(t *testing.T) {
		desired := usersTable().AddColumns(NewColumn("age", Simple(SmallInt)))
		desired.Uniques = []*Unique{{Name: "uq_age", Columns: []string{"age"}}}
		res := ValidateDiff([]*Table{usersTable()}, []*Table{desired})
		assert.False(t, res.HasErrors())
		require.Len(t, res.Warnings, 2)
		assert.Contains(t, res.Warnings[0].Message, "NOT NULL column without default")
		assert.Contains(t, res.Warnings[1].Message, "adding UNIQUE constraint")
	})
	t.Run("drop_index", func(t *testing.T) {
		desired := usersTable()
		desired.Indexes = nil
		res := ValidateDiff([]*Table{usersTable()}, []*Table{desired})
		require.Len(t, res.Errors, 1)
		assert.False(t, res.Errors[0].Breaking)

		res = ValidateDiff([]*Table{usersTable()}, []*Table{desired}, AllowDropIndex())
		assert.False(t, res.HasErrors())
	})
}
