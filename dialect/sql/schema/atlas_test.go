package schema

import (
	"testing"

	atlas "ariga.io/atlas/sql/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/ibx/dialect/sqlschema"
)

func TestToAtlas(t *testing.T) {
	users := usersTable().SetComment("people")
	users.Checks = []*Check{{Name: "ck_email", Expr: "email <> ''"}}
	posts := NewTable("posts").
		AddColumns(
			NewColumn("id", Simple(BigInt)),
			NewColumn("author_id", Simple(Integer)),
			NewColumn("price", NumericType(10, 2)),
			NewColumn("created", TimestampType(true)).SetDefault("CURRENT_TIMESTAMP"),
			NewColumn("payload", VarBinaryType(16)),
			&Column{Name: "legacy", Type: ColumnType{Kind: Unknown, Raw: "QUAD"}},
		).
		SetPrimaryKey("pk_posts", "id").
		AddForeignKeys(
			&ForeignKey{Name: "fk_author", Columns: []string{"author_id"}, RefTable: "users", RefColumns: []string{"id"}, OnDelete: sqlschema.Cascade},
			&ForeignKey{Name: "fk_ext", Columns: []string{"author_id"}, RefTable: "external", RefColumns: []string{"ext_id"}},
		)

	s := ToAtlas("main", []*Table{users, posts})
	require.Len(t, s.Tables, 2)

	at, ok := s.Table("users")
	require.True(t, ok)
	assert.Same(t, s, at.Schema)
	require.NotNil(t, at.PrimaryKey)
	assert.Equal(t, "pk_users", at.PrimaryKey.Name)
	require.Len(t, at.Indexes, 1)
	assert.True(t, at.Indexes[0].Unique)
	assert.Equal(t, "people", commentText(at.Attrs))
	email, ok := at.Column("email")
	require.True(t, ok)
	assert.Equal(t, &atlas.StringType{T: "varchar", Size: 255}, email.Type.Type)
	assert.False(t, email.Type.Null)
	assert.Len(t, email.Indexes, 1)

	pt, ok := s.Table("posts")
	require.True(t, ok)
	price, _ := pt.Column("price")
	assert.Equal(t, &atlas.DecimalType{T: "numeric", Precision: 10, Scale: 2}, price.Type.Type)
	created, _ := pt.Column("created")
	assert.Equal(t, &atlas.TimeType{T: "timestamp with time zone"}, created.Type.Type)
	assert.Equal(t, &atlas.RawExpr{X: "CURRENT_TIMESTAMP"}, created.Default)
	legacy, _ := pt.Column("legacy")
	assert.Equal(t, &atlas.UnsupportedType{T: "QUAD"}, legacy.Type.Type)

	require.Len(t, pt.ForeignKeys, 2)
	fk := pt.ForeignKeys[0]
	assert.Equal(t, "fk_author", fk.Symbol)
	assert.Same(t, at, fk.RefTable)
	assert.Equal(t, atlas.Cascade, fk.OnDelete)
	assert.Equal(t, atlas.NoAction, fk.OnUpdate)
	ext := pt.ForeignKeys[1]
	assert.Equal(t, "external", ext.RefTable.Name)
	require.Len(t, ext.RefColumns, 1)
	assert.Equal(t, "ext_id", ext.RefColumns[0].Name)
}

func TestDiffAndPlan(t *testing.T) {
	current := []*Table{
		usersTable(),
		NewTable("legacy").AddColumns(NewColumn("id", Simple(Integer))),
	}
	users := usersTable()
	users.Columns = users.Columns[:2]
	users.AddColumns(NewColumn("age", Simple(SmallInt)).SetNullable(true))
	users.Columns[1].Comment = "login"
	users.Indexes = []*Index{{Name: "ix_users_age", Columns: []string{"age"}}}
	users.Comment = "people"
	posts := NewTable("posts").AddColumns(NewColumn("id", Simple(Integer)).SetComment("key")).SetPrimaryKey("", "id")
	posts.AddIndex("ix_posts_id", false, "id")
	desired := []*Table{users, posts}

	changes := Diff(current, desired)
	require.Len(t, changes, 3)
	mod, ok := changes[0].(*atlas.ModifyTable)
	require.True(t, ok)
	assert.Equal(t, "users", mod.T.Name)
	add, ok := changes[1].(*atlas.AddTable)
	require.True(t, ok)
	assert.Equal(t, "posts", add.T.Name)
	drop, ok := changes[2].(*atlas.DropTable)
	require.True(t, ok)
	assert.Equal(t, "legacy", drop.T.Name)

	ops, skipped := Plan(changes, desired)
	assert.Empty(t, skipped)
	assert.Equal(t, []Operation{
		&SetColumnComment{Table: "users", Column: "email", Comment: "login"},
		&AddColumn{Table: "users", Column: users.Columns[2]},
		&DropColumn{Table: "users", Column: "bio"},
		&CreateIndex{Index: users.Indexes[0], Table: "users"},
		&DropIndex{Name: "ix_users_email", Table: "users"},
		&SetTableComment{Table: "users", Comment: "people"},
		&CreateTable{Table: posts},
		&CreateIndex{Index: posts.Indexes[0], Table: "posts"},
		&SetColumnComment{Table: "posts", Column: "id", Comment: "key"},
		&DropTable{Name: "legacy"},
	}, ops)
}

func TestPlanSkipsTypeChanges(t *testing.T) {
	desired := usersTable()
	desired.Columns[1].Type = VarCharType(100)
	changes := Diff([]*Table{usersTable()}, []*Table{desired})
	ops, skipped := Plan(changes, []*Table{desired})
	assert.Empty(t, ops)
	require.Len(t, skipped, 1)
	mc, ok := skipped[0].(*atlas.ModifyColumn)
	require.True(t, ok)
	assert.Equal(t, atlas.ChangeType, mc.Change)
}
