package gen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/ibx/dialect/sql/schema"
)

func usersTable() *schema.Table {
	return schema.NewTable("users").
		AddColumns(
			schema.NewColumn("id", schema.Simple(schema.Integer)),
			schema.NewColumn("email", schema.VarCharType(255)).SetNullable(true).SetComment("login address"),
			schema.NewColumn("balance", schema.NumericType(18, 2)),
			schema.NewColumn("created_at", schema.TimestampType(false)),
			schema.NewColumn("avatar", schema.BinaryBlobType()).SetNullable(true),
		).
		SetPrimaryKey("pk_users", "id").
		SetComment("registered accounts")
}

func TestNewModel(t *testing.T) {
	m, err := NewModel(usersTable())
	require.NoError(t, err)
	assert.Equal(t, "User", m.Name)
	names := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"ID", "Email", "Balance", "CreatedAt", "Avatar"}, names)
	require.Len(t, m.PrimaryKey, 1)
	assert.Equal(t, "ID", m.PrimaryKey[0].Name)
}

func TestNewModel_Names(t *testing.T) {
	tbl := schema.NewTable("things").AddColumns(
		schema.NewColumn("user_id", schema.Simple(schema.Integer)),
		schema.NewColumn("USER_ID", schema.Simple(schema.Integer)),
		schema.NewColumn("columns", schema.VarCharType(10)),
	)
	m, err := NewModel(tbl)
	require.NoError(t, err)
	assert.Equal(t, "UserID", m.Fields[0].Name)
	assert.Equal(t, "UserID2", m.Fields[1].Name)
	assert.Equal(t, "ColumnsField", m.Fields[2].Name, "generated methods are not shadowed")
	assert.Empty(t, m.PrimaryKey)
}

func TestNewModel_Errors(t *testing.T) {
	_, err := NewModel(schema.NewTable("empty"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGenerationFailed))

	tbl := schema.NewTable("t").
		AddColumns(schema.NewColumn("a", schema.Simple(schema.Integer))).
		SetPrimaryKey("", "b")
	_, err = NewModel(tbl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `primary key column "b"`)
}

func TestRender(t *testing.T) {
	cfg, err := NewConfig(WithPackage("models"), WithTarget(t.TempDir()))
	require.NoError(t, err)
	m, err := NewModel(usersTable())
	require.NoError(t, err)
	src := cfg.Render(m).GoString()

	assert.Contains(t, src, "// Code generated by ibx. DO NOT EDIT.")
	assert.Contains(t, src, "package models")
	assert.Contains(t, src, "// User is a row of table users.")
	assert.Contains(t, src, "// registered accounts")
	assert.Regexp(t, "ID\\s+int32\\s+`db:\"id\"`", src)
	assert.Regexp(t, "Email\\s+sql\\.NullString\\s+`db:\"email\"`\\s+// login address", src)
	assert.Regexp(t, `Balance\s+decimal\.Decimal`, src)
	assert.Regexp(t, `CreatedAt\s+time\.Time`, src)
	assert.Regexp(t, `Avatar\s+\[\]byte`, src)
	assert.Regexp(t, `UserTable\s+= "users"`, src)
	assert.Regexp(t, `UserColumnCreatedAt\s+= "created_at"`, src)
	assert.Contains(t, src, "func (User) TableName() string")
	assert.Contains(t, src, "func (m *User) ScanTargets() []any")
	assert.Contains(t, src, "&m.ID, &m.Email")
	assert.Contains(t, src, "return []any{m.ID}")
}

func TestRender_Tags(t *testing.T) {
	cfg, err := NewConfig(WithPackage("models"), WithTarget(t.TempDir()), WithTags("db", "json"))
	require.NoError(t, err)
	m, err := NewModel(schema.NewTable("t").AddColumns(schema.NewColumn("a", schema.Simple(schema.Boolean)).SetNullable(true)))
	require.NoError(t, err)
	src := cfg.Render(m).GoString()
	assert.Regexp(t, "A\\s+sql\\.NullBool\\s+`db:\"a\" json:\"a\"`", src)
	assert.NotContains(t, src, "PrimaryKey()")
}

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "models")
	cfg, err := NewConfig(WithPackage("models"), WithTarget(dir), WithWorkers(2))
	require.NoError(t, err)
	tables := []*schema.Table{
		schema.NewTable("groups").AddColumns(schema.NewColumn("id", schema.Simple(schema.BigInt))),
		schema.NewTable("group_members").AddColumns(
			schema.NewColumn("group_id", schema.Simple(schema.BigInt)),
			schema.NewColumn("name", schema.VarCharType(50)).SetNullable(true),
		),
	}
	require.NoError(t, Generate(context.Background(), cfg, tables))

	b, err := os.ReadFile(filepath.Join(dir, "groups.go"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "type Group struct")
	b, err = os.ReadFile(filepath.Join(dir, "group_members.go"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "type GroupMember struct")
	assert.Contains(t, string(b), `"database/sql"`)
}

func TestGenerate_Conflict(t *testing.T) {
	cfg, err := NewConfig(WithPackage("models"), WithTarget(t.TempDir()))
	require.NoError(t, err)
	tables := []*schema.Table{
		schema.NewTable("user").AddColumns(schema.NewColumn("id", schema.Simple(schema.Integer))),
		schema.NewTable("users").AddColumns(schema.NewColumn("id", schema.Simple(schema.Integer))),
	}
	err = Generate(context.Background(), cfg, tables)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model name User")
}
