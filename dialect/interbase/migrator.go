package interbase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/syssam/ibx/dialect"
	"github.com/syssam/ibx/dialect/sql/schema"
)

// Migrator executes schema operations inside transactions.
//
// The engine does not see a table or index change until the transaction
// that made it commits, so statements depending on it would fail. Apply
// therefore commits after every structural operation (see
// schema.IsBoundary) and continues in a new transaction.
type Migrator struct {
	d      *Dialect
	logger *slog.Logger
	dryRun func(string)
}

// MigrateOption configures a Migrator.
type MigrateOption func(*Migrator)

// MigrateWithLogger sets the logger receiving each executed statement.
func MigrateWithLogger(l *slog.Logger) MigrateOption {
	return func(m *Migrator) {
		m.logger = l
	}
}

// MigrateDryRun makes Apply pass statements to fn instead of executing them.
func MigrateDryRun(fn func(stmt string)) MigrateOption {
	return func(m *Migrator) {
		m.dryRun = fn
	}
}

// NewMigrator returns a migrator for the driver of d.
func NewMigrator(d *Dialect, opts ...MigrateOption) *Migrator {
	m := &Migrator{d: d, logger: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Apply compiles and executes ops in order. On failure the running
// transaction is rolled back. Transactions committed at earlier
// boundaries stay committed.
func (m *Migrator) Apply(ctx context.Context, ops ...schema.Operation) error {
	plan := make([][]string, len(ops))
	for i, op := range ops {
		stmts, err := m.d.CompileDDL(op)
		if err != nil {
			return err
		}
		plan[i] = stmts
	}
	if m.dryRun != nil {
		for _, stmts := range plan {
			for _, s := range stmts {
				m.dryRun(s)
			}
		}
		return nil
	}
	if m.d.drv == nil {
		return errors.New("interbase: migrate: dialect has no driver")
	}
	tx, err := m.d.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("interbase: migrate: begin: %w", err)
	}
	for i, op := range ops {
		for _, s := range plan[i] {
			m.logger.DebugContext(ctx, "migrate", "stmt", s)
			if err := tx.Exec(ctx, s, []any{}, nil); err != nil {
				return rollback(tx, fmt.Errorf("interbase: migrate: %w", err))
			}
		}
		if !schema.IsBoundary(op) || i == len(ops)-1 {
			continue
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("interbase: migrate: commit: %w", err)
		}
		if tx, err = m.d.drv.Tx(ctx); err != nil {
			return fmt.Errorf("interbase: migrate: begin: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("interbase: migrate: commit: %w", err)
	}
	return nil
}

// rollback calls to tx.Rollback and wraps the given error with the rollback error if occurred.
func rollback(tx dialect.Tx, err error) error {
	if rerr := tx.Rollback(); rerr != nil {
		err = fmt.Errorf("%w: %v", err, rerr)
	}
	return err
}
