package interbase

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/ibx/dialect"
	"github.com/syssam/ibx/dialect/sql"
)

func TestOpen(t *testing.T) {
	t.Run("version query", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery(escape(versionQuery)).
			WillReturnRows(sqlmock.NewRows([]string{"rdb$get_context"}).AddRow("4.0.5"))
		d, err := Open(context.Background(), sql.OpenDB(dialect.Firebird, db))
		require.NoError(t, err)
		assert.Equal(t, Version{4, 0, 5}, d.Capabilities().Version)
		assert.Equal(t, 63, d.Capabilities().MaxIdentifierLength)
		assert.NotNil(t, d.Driver())
		require.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("given version", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		d, err := Open(context.Background(), sql.OpenDB(dialect.Firebird, db), WithVersion(Version{2, 5, 9}))
		require.NoError(t, err)
		assert.False(t, d.Capabilities().SupportsNativeBoolean)
		require.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("interbase", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		d, err := Open(context.Background(), sql.OpenDB(dialect.InterBase, db))
		require.NoError(t, err)
		assert.Equal(t, InterBase, d.Capabilities().Variant)
		assert.False(t, d.Capabilities().SupportsReturning)
		require.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("variant override", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		d, err := Open(context.Background(), sql.OpenDB(dialect.Firebird, db), WithVariant(InterBase))
		require.NoError(t, err)
		assert.Equal(t, InterBase, d.Capabilities().Variant)
		require.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("version query failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery(escape(versionQuery)).
			WillReturnRows(sqlmock.NewRows([]string{"rdb$get_context"}))
		_, err = Open(context.Background(), sql.OpenDB(dialect.Firebird, db))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "interbase: open")
	})
}

func TestDialect_NextValue(t *testing.T) {
	d, mock := mockDialect(t, fb3())
	mock.ExpectQuery(escape("SELECT GEN_ID(users_id_gen, 1) FROM rdb$database")).
		WillReturnRows(sqlmock.NewRows([]string{"gen_id"}).AddRow(42))
	n, err := d.NextValue(context.Background(), d.Driver(), "users_id_gen")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	mock.ExpectQuery(escape(`SELECT GEN_ID("Mixed", 1) FROM rdb$database`)).
		WillReturnRows(sqlmock.NewRows([]string{"gen_id"}))
	_, err = d.NextValue(context.Background(), d.Driver(), "Mixed")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDialect_Reflector(t *testing.T) {
	d, mock := mockDialect(t, fb3())
	r := d.Reflector(WithCache(nil))
	mock.ExpectQuery(escape(hasTableQuery)).WithArgs("USERS").
		WillReturnRows(sqlmock.NewRows([]string{"has_table"}).AddRow(1))
	ok, err := r.HasTable(context.Background(), "users")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}
