package interbase

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/ibx"
	"github.com/syssam/ibx/dialect"
	"github.com/syssam/ibx/dialect/sql"
	"github.com/syssam/ibx/dialect/sql/schema"
	"github.com/syssam/ibx/dialect/sqlschema"
)

var (
	columnCols = []string{
		"field_name", "null_flag", "field_type", "field_length", "field_precision", "field_scale",
		"field_sub_type", "segment_length", "character_set_name", "collation_name",
		"default_source", "description", "computed_source",
	}
	identityCols = append(append([]string{}, columnCols...), "identity_type", "initial_value", "generator_increment")
	indexCols    = []string{"index_name", "unique_flag", "descending_flag", "field_name", "expression_source", "condition_source"}
	fkCols       = []string{"cname", "fname", "targetrname", "targetfname", "update_rule", "delete_rule"}
)

func mockReflector(t *testing.T, caps *Capabilities, opts ...ReflectOption) (*Reflector, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	drv := sql.OpenDB(dialect.Firebird, db)
	return NewReflector(drv, caps, append([]ReflectOption{WithCache(nil)}, opts...)...), mock
}

func TestReflector_TableNames(t *testing.T) {
	r, mock := mockReflector(t, fb3())
	mock.ExpectQuery(escape(tableNamesQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"relation_name"}).AddRow("USERS").AddRow("MixedCase").AddRow("ORDER"))
	names, err := r.TableNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "MixedCase", "ORDER"}, names)

	mock.ExpectQuery(escape(tempTableNamesQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"relation_name"}).AddRow("SCRATCH"))
	names, err = r.TempTableNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"scratch"}, names)

	mock.ExpectQuery(escape(viewNamesQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"relation_name"}))
	names, err = r.ViewNames(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReflector_InterBaseCatalog(t *testing.T) {
	r, mock := mockReflector(t, NewCapabilities(Version{}, InterBase))
	mock.ExpectQuery(escape(tableNamesLegacyQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"relation_name"}).AddRow("USERS"))
	names, err := r.TableNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"users"}, names)

	names, err = r.TempTableNames(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)

	mock.ExpectQuery(escape(viewNamesLegacyQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"relation_name"}).AddRow("ACTIVE_USERS"))
	names, err = r.ViewNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"active_users"}, names)

	mock.ExpectQuery(escape(viewDefinitionLegacyQuery)).WithArgs("ACTIVE_USERS").
		WillReturnRows(sqlmock.NewRows([]string{"view_source"}).AddRow("\n  SELECT * FROM users WHERE active = 1 "))
	def, err := r.ViewDefinition(context.Background(), "active_users")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM users WHERE active = 1", def)

	// Without identity support, autoincrement stays unknown.
	mock.ExpectQuery(escape(columnsQuery)).WithArgs("USERS").
		WillReturnRows(sqlmock.NewRows(columnCols).AddRow("ID", 1, "LONG", 4, 0, 0, 0, nil, nil, nil, nil, nil, nil))
	columns, err := r.Columns(context.Background(), "users")
	require.NoError(t, err)
	require.Len(t, columns, 1)
	assert.Equal(t, schema.AutoincrementAuto, columns[0].Autoincrement)
	assert.Nil(t, columns[0].Identity)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReflector_Ghost(t *testing.T) {
	r, mock := mockReflector(t, fb3())
	mock.ExpectQuery(escape(hasTableQuery)).WithArgs("GHOST").
		WillReturnRows(sqlmock.NewRows([]string{"has_table"}))
	ok, err := r.HasTable(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, ok)

	mock.ExpectQuery(escape(columnsIdentityQuery)).WithArgs("GHOST").
		WillReturnRows(sqlmock.NewRows(identityCols))
	mock.ExpectQuery(escape(hasTableQuery)).WithArgs("GHOST").
		WillReturnRows(sqlmock.NewRows([]string{"has_table"}))
	_, err = r.Columns(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, ibx.IsNotFound(err))

	mock.ExpectQuery(escape(tableCommentQuery)).WithArgs("GHOST").
		WillReturnRows(sqlmock.NewRows([]string{"comment"}))
	_, err = r.TableComment(context.Background(), "ghost")
	assert.True(t, ibx.IsNotFound(err))

	mock.ExpectQuery(escape(viewDefinitionQuery)).WithArgs("GHOST").
		WillReturnRows(sqlmock.NewRows([]string{"view_source"}))
	_, err = r.ViewDefinition(context.Background(), "ghost")
	var nf *ibx.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, ibx.KindView, nf.Kind)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReflector_EmptyButPresent(t *testing.T) {
	r, mock := mockReflector(t, fb3())
	mock.ExpectQuery(escape(primaryKeyQuery)).WithArgs("LOGS").
		WillReturnRows(sqlmock.NewRows([]string{"cname", "fname"}))
	mock.ExpectQuery(escape(hasTableQuery)).WithArgs("LOGS").
		WillReturnRows(sqlmock.NewRows([]string{"has_table"}).AddRow(1))
	pk, err := r.PrimaryKey(context.Background(), "logs")
	require.NoError(t, err)
	assert.Nil(t, pk)

	mock.ExpectQuery(escape(foreignKeysQuery)).WithArgs("LOGS").
		WillReturnRows(sqlmock.NewRows(fkCols))
	mock.ExpectQuery(escape(hasTableQuery)).WithArgs("LOGS").
		WillReturnRows(sqlmock.NewRows([]string{"has_table"}).AddRow(1))
	fks, err := r.ForeignKeys(context.Background(), "logs")
	require.NoError(t, err)
	assert.Empty(t, fks)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReflector_Columns(t *testing.T) {
	var warnings []*ibx.UnknownTypeWarning
	r, mock := mockReflector(t, fb3(), WithWarningHook(func(_ context.Context, w *ibx.UnknownTypeWarning) {
		warnings = append(warnings, w)
	}))
	mock.ExpectQuery(escape(columnsIdentityQuery)).WithArgs("USERS").
		WillReturnRows(sqlmock.NewRows(identityCols).
			AddRow("ID", 1, "LONG", 4, 0, 0, 0, nil, nil, nil, nil, nil, nil, 1, 100, 5).
			AddRow("NAME", nil, "VARYING", 50, nil, 0, 0, nil, "UTF8", "UNICODE_CI", "DEFAULT 'anonymous'", "display name", nil, nil, nil, nil).
			AddRow("DATA", 0, "VARYING", 16, nil, 0, 0, nil, "OCTETS", "OCTETS", " default NULL", nil, nil, nil, nil, nil).
			AddRow("TOTAL", 1, "INT64", 8, 18, 2, 1, nil, nil, nil, nil, nil, "(price * qty)", nil, nil, nil).
			AddRow("lower_col", 0, "LONG", 4, 0, 0, 0, nil, nil, nil, "DEFAULT 0", nil, nil, nil, nil, nil).
			AddRow("Q", 0, "QUAD", 8, nil, 0, 0, nil, nil, nil, nil, nil, nil, nil, nil, nil))
	columns, err := r.Columns(context.Background(), "users")
	require.NoError(t, err)
	require.Len(t, columns, 6)

	id := columns[0]
	assert.Equal(t, "id", id.Name)
	assert.Equal(t, schema.Simple(schema.Integer), id.Type)
	assert.False(t, id.Nullable)
	require.NotNil(t, id.Identity)
	assert.False(t, id.Identity.Always)
	assert.Equal(t, int64(100), *id.Identity.Start)
	assert.Equal(t, int64(5), *id.Identity.Increment)
	assert.Equal(t, schema.AutoincrementEnabled, id.Autoincrement)

	name := columns[1]
	assert.Equal(t, "name", name.Name)
	assert.True(t, name.Nullable)
	assert.Equal(t, schema.VarCharType(50).WithCharset("UTF8").WithCollation("UNICODE_CI"), name.Type)
	require.NotNil(t, name.Default)
	assert.Equal(t, "'anonymous'", *name.Default)
	assert.Equal(t, "display name", name.Comment)
	assert.Equal(t, schema.AutoincrementDisabled, name.Autoincrement)

	data := columns[2]
	assert.Equal(t, schema.VarBinary, data.Type.Kind, "OCTETS strings reflect as binary")
	assert.Equal(t, 16, data.Type.Length)
	assert.Empty(t, data.Type.Charset)
	assert.Nil(t, data.Default, "a NULL default is no default")

	total := columns[3]
	assert.Equal(t, schema.NumericType(18, 2), total.Type)
	require.NotNil(t, total.Computed)
	assert.Equal(t, "price * qty", total.Computed.Expr)

	lowerCol := columns[4]
	assert.Equal(t, `"lower_col"`, lowerCol.Name)
	assert.True(t, lowerCol.Quote)
	assert.False(t, id.Quote)

	q := columns[5]
	assert.Equal(t, schema.Unknown, q.Type.Kind)
	require.Len(t, warnings, 1)
	assert.Equal(t, "users", warnings[0].Table)
	assert.Equal(t, "q", warnings[0].Column)
	assert.Equal(t, "QUAD", warnings[0].Type)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReflector_ColumnsBadDefault(t *testing.T) {
	r, mock := mockReflector(t, fb3())
	mock.ExpectQuery(escape(columnsIdentityQuery)).WithArgs("T").
		WillReturnRows(sqlmock.NewRows(identityCols).
			AddRow("A", 0, "LONG", 4, 0, 0, 0, nil, nil, nil, "VORGABE 0", nil, nil, nil, nil, nil))
	_, err := r.Columns(context.Background(), "t")
	require.Error(t, err)
	assert.True(t, ibx.IsInvariantError(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReflector_Constraints(t *testing.T) {
	r, mock := mockReflector(t, fb3())
	ctx := context.Background()

	mock.ExpectQuery(escape(primaryKeyQuery)).WithArgs("MEMBERS").
		WillReturnRows(sqlmock.NewRows([]string{"cname", "fname"}).AddRow("PK_MEMBERS", "TENANT").AddRow("PK_MEMBERS", "ID"))
	pk, err := r.PrimaryKey(ctx, "members")
	require.NoError(t, err)
	assert.Equal(t, &schema.PrimaryKey{Name: "pk_members", Columns: []string{"tenant", "id"}}, pk)

	mock.ExpectQuery(escape(foreignKeysQuery)).WithArgs("MEMBERS").
		WillReturnRows(sqlmock.NewRows(fkCols).
			AddRow("FK_GROUP", "TENANT", "GROUPS", "TENANT", "RESTRICT", "CASCADE").
			AddRow("FK_GROUP", "GROUP_ID", "GROUPS", "ID", "RESTRICT", "CASCADE").
			AddRow("FK_OWNER", "OWNER_ID", "USERS", "ID", "SET NULL", "NO ACTION"))
	fks, err := r.ForeignKeys(ctx, "members")
	require.NoError(t, err)
	assert.Equal(t, []*schema.ForeignKey{
		{Name: "fk_group", Columns: []string{"tenant", "group_id"}, RefTable: "groups", RefColumns: []string{"tenant", "id"}, OnDelete: sqlschema.Cascade},
		{Name: "fk_owner", Columns: []string{"owner_id"}, RefTable: "users", RefColumns: []string{"id"}, OnUpdate: sqlschema.SetNull},
	}, fks)

	mock.ExpectQuery(escape(uniqueConstraintsQuery)).WithArgs("MEMBERS").
		WillReturnRows(sqlmock.NewRows([]string{"cname", "column_name"}).
			AddRow("UQ_EMAIL", "EMAIL").
			AddRow("UQ_PAIR", "TENANT").
			AddRow("UQ_PAIR", "HANDLE"))
	uniques, err := r.UniqueConstraints(ctx, "members")
	require.NoError(t, err)
	assert.Equal(t, []*schema.Unique{
		{Name: "uq_email", Columns: []string{"email"}},
		{Name: "uq_pair", Columns: []string{"tenant", "handle"}},
	}, uniques)

	mock.ExpectQuery(escape(checkConstraintsQuery)).WithArgs("MEMBERS").
		WillReturnRows(sqlmock.NewRows([]string{"cname", "sqltext"}).
			AddRow("CK_AGE", "CHECK (age > 0)").
			AddRow("CK_AGE", "CHECK (age > 0)").
			AddRow("CK_RANGE", "check ((lo) < (hi))"))
	checks, err := r.CheckConstraints(ctx, "members")
	require.NoError(t, err)
	assert.Equal(t, []*schema.Check{
		{Name: "ck_age", Expr: "age > 0"},
		{Name: "ck_range", Expr: "(lo) < (hi)"},
	}, checks)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReflector_Indexes(t *testing.T) {
	r, mock := mockReflector(t, fb3())
	mock.ExpectQuery(escape(indexesQuery)).WithArgs("USERS").
		WillReturnRows(sqlmock.NewRows(indexCols).
			AddRow("IX_EXPR", 0, 1, nil, "(LOWER(NAME)||EMAIL)", nil).
			AddRow("IX_NAME", 1, nil, "NAME", nil, nil).
			AddRow("IX_NAME", 1, nil, "EMAIL", nil, nil).
			AddRow("IX_NOTE", 0, 0, nil, `(email||"note")`, nil))
	mock.ExpectQuery(escape(columnNamesQuery)).WithArgs("USERS").
		WillReturnRows(sqlmock.NewRows([]string{"fname"}).AddRow("ID").AddRow("NAME").AddRow("EMAIL").AddRow("note"))
	indexes, err := r.Indexes(context.Background(), "users")
	require.NoError(t, err)
	assert.Equal(t, []*schema.Index{
		{Name: "ix_expr", Descending: true, Columns: []string{"", "email"}, Expressions: []string{"LOWER(NAME)", "EMAIL"}},
		{Name: "ix_name", Unique: true, Columns: []string{"name", "email"}},
		{Name: "ix_note", Columns: []string{"email", `"note"`}, Expressions: []string{"email", `"note"`}},
	}, indexes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReflector_PartialIndexes(t *testing.T) {
	r, mock := mockReflector(t, NewCapabilities(Version{5, 0, 0}, Firebird))
	mock.ExpectQuery(escape(indexesPartialQuery)).WithArgs("USERS").
		WillReturnRows(sqlmock.NewRows(indexCols).
			AddRow("IX_ACTIVE", 0, 0, "EMAIL", nil, "WHERE active = 1"))
	indexes, err := r.Indexes(context.Background(), "users")
	require.NoError(t, err)
	require.Len(t, indexes, 1)
	assert.Equal(t, "active = 1", indexes[0].Where)
	assert.Equal(t, []string{"email"}, indexes[0].Columns)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReflector_Sequences(t *testing.T) {
	r, mock := mockReflector(t, fb3())
	mock.ExpectQuery(escape(sequenceNamesQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"generator_name"}).AddRow("USERS_ID_GEN"))
	names, err := r.SequenceNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"users_id_gen"}, names)

	mock.ExpectQuery(escape(hasSequenceQuery)).WithArgs("USERS_ID_GEN").
		WillReturnRows(sqlmock.NewRows([]string{"has_sequence"}).AddRow(1))
	ok, err := r.HasSequence(context.Background(), "users_id_gen")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReflector_Domains(t *testing.T) {
	r, mock := mockReflector(t, fb3())
	mock.ExpectQuery(escape(domainsQuery)).
		WillReturnRows(sqlmock.NewRows([]string{
			"fname", "null_flag", "field_type", "field_length", "field_precision", "field_scale",
			"field_sub_type", "segment_length", "character_set_name", "collation_name",
			"default_source", "validation_source", "description",
		}).
			AddRow("D_POSITIVE", 1, "LONG", 4, 0, 0, 0, nil, nil, nil, "DEFAULT 1", "CHECK (VALUE > 0)", "positive ints").
			AddRow("D_NOTE", nil, "BLOB", 8, nil, 0, 1, 80, "UTF8", nil, nil, nil, nil))
	domains, err := r.Domains(context.Background())
	require.NoError(t, err)
	require.Len(t, domains, 2)
	one := "1"
	assert.Equal(t, &schema.Domain{
		Name:    "d_positive",
		Type:    schema.Simple(schema.Integer),
		Default: &one,
		Check:   "VALUE > 0",
		Comment: "positive ints",
	}, domains[0])
	assert.True(t, domains[1].Nullable)
	assert.True(t, domains[1].Type.IsTextBlob())
	assert.Equal(t, 80, domains[1].Type.SegmentSize)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReflector_Table(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	r := NewReflector(sql.OpenDB(dialect.Firebird, db), NewCapabilities(Version{2, 5, 0}, Firebird))

	mock.ExpectQuery(escape(columnsQuery)).WithArgs("USERS").
		WillReturnRows(sqlmock.NewRows(columnCols).
			AddRow("ID", 1, "LONG", 4, 0, 0, 0, nil, nil, nil, nil, nil, nil).
			AddRow("EMAIL", 1, "VARYING", 100, nil, 0, 0, nil, "UTF8", "UTF8", nil, nil, nil))
	mock.ExpectQuery(escape(primaryKeyQuery)).WithArgs("USERS").
		WillReturnRows(sqlmock.NewRows([]string{"cname", "fname"}).AddRow("PK_USERS", "ID"))
	mock.ExpectQuery(escape(foreignKeysQuery)).WithArgs("USERS").
		WillReturnRows(sqlmock.NewRows(fkCols))
	// The existence check is cached, so the other empty results reuse it.
	mock.ExpectQuery(escape(hasTableQuery)).WithArgs("USERS").
		WillReturnRows(sqlmock.NewRows([]string{"has_table"}).AddRow(1))
	mock.ExpectQuery(escape(uniqueConstraintsQuery)).WithArgs("USERS").
		WillReturnRows(sqlmock.NewRows([]string{"cname", "column_name"}).AddRow("UQ_EMAIL", "EMAIL"))
	mock.ExpectQuery(escape(checkConstraintsQuery)).WithArgs("USERS").
		WillReturnRows(sqlmock.NewRows([]string{"cname", "sqltext"}))
	mock.ExpectQuery(escape(indexesQuery)).WithArgs("USERS").
		WillReturnRows(sqlmock.NewRows(indexCols))
	mock.ExpectQuery(escape(tableCommentQuery)).WithArgs("USERS").
		WillReturnRows(sqlmock.NewRows([]string{"comment"}).AddRow("registered users"))

	tbl, err := r.Table(context.Background(), "users")
	require.NoError(t, err)
	assert.Equal(t, "users", tbl.Name)
	require.Len(t, tbl.Columns, 2)
	assert.Equal(t, "email", tbl.Columns[1].Name)
	assert.Equal(t, []string{"id"}, tbl.PrimaryKey.Columns)
	assert.Empty(t, tbl.ForeignKeys)
	require.Len(t, tbl.Uniques, 1)
	assert.Empty(t, tbl.Checks)
	assert.Empty(t, tbl.Indexes)
	assert.Equal(t, "registered users", tbl.Comment)
	require.NoError(t, mock.ExpectationsWereMet())

	// Served from the cache.
	again, err := r.Table(context.Background(), "users")
	require.NoError(t, err)
	assert.Equal(t, tbl.Comment, again.Comment)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReflector_LowerCaseCatalogNames(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	r := NewReflector(sql.OpenDB(dialect.Firebird, db), fb3())
	ctx := context.Background()

	mock.ExpectQuery(escape(tableNamesQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"relation_name"}).AddRow("orders").AddRow("ORDERS"))
	names, err := r.TableNames(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{`"orders"`, "orders"}, names)

	mock.ExpectQuery(escape(hasTableQuery)).WithArgs("orders").
		WillReturnRows(sqlmock.NewRows([]string{"has_table"}).AddRow(1))
	ok, err := r.HasTable(ctx, names[0])
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectQuery(escape(columnsIdentityQuery)).WithArgs("orders").
		WillReturnRows(sqlmock.NewRows(identityCols).
			AddRow("id", 1, "INT64", 8, 0, 0, 0, nil, nil, nil, nil, nil, nil, nil, nil, nil).
			AddRow("TOTAL", 0, "LONG", 4, 0, 0, 0, nil, nil, nil, nil, nil, nil, nil, nil, nil))
	mock.ExpectQuery(escape(primaryKeyQuery)).WithArgs("orders").
		WillReturnRows(sqlmock.NewRows([]string{"cname", "fname"}).AddRow("PK_ORDERS", "id"))
	mock.ExpectQuery(escape(foreignKeysQuery)).WithArgs("orders").
		WillReturnRows(sqlmock.NewRows(fkCols))
	mock.ExpectQuery(escape(uniqueConstraintsQuery)).WithArgs("orders").
		WillReturnRows(sqlmock.NewRows([]string{"cname", "column_name"}))
	mock.ExpectQuery(escape(checkConstraintsQuery)).WithArgs("orders").
		WillReturnRows(sqlmock.NewRows([]string{"cname", "sqltext"}))
	mock.ExpectQuery(escape(indexesQuery)).WithArgs("orders").
		WillReturnRows(sqlmock.NewRows(indexCols).AddRow("IX_ORDERS_ID", 0, 0, "id", nil, nil))
	mock.ExpectQuery(escape(tableCommentQuery)).WithArgs("orders").
		WillReturnRows(sqlmock.NewRows([]string{"comment"}).AddRow(nil))

	tbl, err := r.Table(ctx, names[0])
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, `"orders"`, tbl.Name)
	require.Len(t, tbl.Columns, 2)
	assert.Equal(t, `"id"`, tbl.Columns[0].Name)
	assert.True(t, tbl.Columns[0].Quote)
	assert.Equal(t, "total", tbl.Columns[1].Name)
	assert.Equal(t, []string{`"id"`}, tbl.PrimaryKey.Columns)
	require.Len(t, tbl.Indexes, 1)
	assert.Equal(t, []string{`"id"`}, tbl.Indexes[0].Columns)

	// The reflected table compiles back to the same catalog spellings.
	d := New(fb3())
	stmts, err := d.CompileDDL(&schema.CreateTable{Table: tbl})
	require.NoError(t, err)
	assert.Equal(t, []string{`CREATE TABLE "orders" ("id" BIGINT NOT NULL, total INTEGER, CONSTRAINT pk_orders PRIMARY KEY ("id"))`}, stmts)
	stmts, err = d.CompileDDL(&schema.CreateIndex{Index: tbl.Indexes[0], Table: tbl.Name})
	require.NoError(t, err)
	assert.Equal(t, []string{`CREATE INDEX ix_orders_id ON "orders" ("id")`}, stmts)
}

func TestParseDefault(t *testing.T) {
	tests := []struct {
		in      string
		want    *string
		wantErr bool
	}{
		{in: "DEFAULT 0", want: schema.Ptr("0")},
		{in: "default 'abc'", want: schema.Ptr("'abc'")},
		{in: "  DEFAULT\n  CURRENT_TIMESTAMP  ", want: schema.Ptr("CURRENT_TIMESTAMP")},
		{in: "DEFAULT\tNULL"},
		{in: "DEFAULT null"},
		{in: "DEFAULT"},
		{in: "DEFAULTS 1", wantErr: true},
		{in: "VORGABE 0", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDefault(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, ibx.IsInvariantError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripParens(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "(a + b)", want: "a + b"},
		{in: "((a + b))", want: "(a + b)"},
		{in: "(a) + (b)", want: "(a) + (b)"},
		{in: "a + b", want: "a + b"},
		{in: "( x )", want: "x"},
		{in: "()", want: ""},
		{in: "(", want: "("},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, stripParens(tt.in))
		})
	}
}
