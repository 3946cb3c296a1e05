package sql

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/ibx/dialect"
)

var errLost = errors.New("connection lost")

func TestStatsDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var slow []string
	drv := NewStatsDriver(OpenDB(dialect.Firebird, db),
		WithSlowThreshold(0),
		WithSlowQueryHook(func(_ context.Context, query string, _ []any, _ time.Duration) {
			slow = append(slow, query)
		}),
		WithDisconnectClassifier(func(err error) bool { return errors.Is(err, errLost) }),
	)

	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec("DELETE").WillReturnError(errLost)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT 1 FROM rdb$database", []any{}, rows))
	require.NoError(t, rows.Close())
	require.ErrorIs(t, drv.Exec(context.Background(), "DELETE FROM users", []any{}, nil), errLost)

	tx, err := drv.Tx(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Exec(context.Background(), "INSERT INTO users DEFAULT VALUES", []any{}, nil))
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())

	s := drv.QueryStats().Stats()
	assert.EqualValues(t, 1, s.TotalQueries)
	assert.EqualValues(t, 2, s.TotalExecs)
	assert.EqualValues(t, 1, s.Errors)
	assert.EqualValues(t, 1, s.Disconnects)
	assert.EqualValues(t, 3, s.SlowQueries)
	assert.Len(t, slow, 3)
	assert.Contains(t, s.String(), "queries=1 execs=2")

	drv.SetSlowThreshold(time.Hour)
	assert.Equal(t, time.Hour, drv.SlowThreshold())

	drv.QueryStats().Reset()
	assert.Equal(t, StatsSnapshot{}, drv.QueryStats().Stats())
	assert.Zero(t, StatsSnapshot{}.AvgQueryDuration())
}

func TestStatsCollector(t *testing.T) {
	stats := &QueryStats{}
	stats.TotalQueries.Add(3)
	stats.Errors.Add(1)
	c := NewStatsCollector("ibx", stats)

	assert.Equal(t, 6, testutil.CollectAndCount(c))
	const expected = `
# HELP ibx_sql_errors_total Number of failed statements.
# TYPE ibx_sql_errors_total counter
ibx_sql_errors_total 1
# HELP ibx_sql_queries_total Number of queries executed.
# TYPE ibx_sql_queries_total counter
ibx_sql_queries_total 3
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected), "ibx_sql_queries_total", "ibx_sql_errors_total"))
}

func TestDebugDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	drv := NewDebugDriver(OpenDB(dialect.Firebird, db), DebugWithLogger(logger))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE").WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	tx, err := drv.Tx(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Exec(context.Background(), "UPDATE users SET age = ?", []any{1}, nil))
	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())

	out := buf.String()
	assert.Contains(t, out, "begin transaction")
	assert.Contains(t, out, `msg="tx exec" sql="UPDATE users SET age = ?"`)
	assert.Contains(t, out, "rollback transaction")
}

func TestStatsDriver_OverDebug(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	drv := NewStatsDriver(NewDebugDriver(OpenDB(dialect.Firebird, db), DebugWithLogger(logger)))
	assert.Equal(t, dialect.Firebird, drv.Dialect())

	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectClose()

	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT 1 FROM rdb$database", []any{}, rows))
	require.NoError(t, rows.Close())
	require.NoError(t, drv.Close())
	require.NoError(t, mock.ExpectationsWereMet())

	assert.EqualValues(t, 1, drv.QueryStats().Stats().TotalQueries)
	assert.Contains(t, buf.String(), `sql="SELECT 1 FROM rdb$database"`)
}
