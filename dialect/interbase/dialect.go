package interbase

import (
	"context"
	"fmt"

	"github.com/syssam/ibx/dialect"
	"github.com/syssam/ibx/dialect/sql"
)

// Dialect compiles statements and schema operations for one engine and
// hands out reflectors and migrators bound to the same capabilities.
type Dialect struct {
	drv  dialect.Driver
	caps *Capabilities
	prep *Preparer
}

// Option configures Open.
type Option func(*openConfig)

type openConfig struct {
	version *Version
	variant *Variant
}

// WithVersion skips the server version probe.
func WithVersion(v Version) Option {
	return func(c *openConfig) {
		c.version = &v
	}
}

// WithVariant overrides the variant derived from the driver dialect name.
func WithVariant(v Variant) Option {
	return func(c *openConfig) {
		c.variant = &v
	}
}

// New returns a dialect with fixed capabilities and no driver. It compiles
// but cannot reflect or migrate.
func New(caps *Capabilities) *Dialect {
	return &Dialect{caps: caps, prep: NewPreparer(caps)}
}

// Open builds the dialect of the server behind drv. The server version is
// probed unless given with WithVersion. InterBase servers are not probed:
// they have no ENGINE_VERSION context variable.
func Open(ctx context.Context, drv dialect.Driver, opts ...Option) (*Dialect, error) {
	var cfg openConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	variant := VariantOf(drv.Dialect())
	if cfg.variant != nil {
		variant = *cfg.variant
	}
	var v Version
	switch {
	case cfg.version != nil:
		v = *cfg.version
	case variant == InterBase:
	default:
		var err error
		if v, err = ServerVersion(ctx, drv); err != nil {
			return nil, fmt.Errorf("interbase: open: %w", err)
		}
	}
	d := New(NewCapabilities(v, variant))
	d.drv = drv
	return d, nil
}

// Capabilities returns the capabilities the dialect compiles for.
func (d *Dialect) Capabilities() *Capabilities { return d.caps }

// Preparer returns the identifier preparer of the dialect.
func (d *Dialect) Preparer() *Preparer { return d.prep }

// Driver returns the driver given to Open, or nil.
func (d *Dialect) Driver() dialect.Driver { return d.drv }

// Reflector returns a reflector reading through the dialect driver.
func (d *Dialect) Reflector(opts ...ReflectOption) *Reflector {
	return NewReflector(d.drv, d.caps, opts...)
}

// Migrator returns a migrator executing through the dialect driver.
func (d *Dialect) Migrator(opts ...MigrateOption) *Migrator {
	return NewMigrator(d, opts...)
}

// NextValue advances the generator seq and returns its new value.
func (d *Dialect) NextValue(ctx context.Context, ex dialect.ExecQuerier, seq string) (int64, error) {
	name, err := d.prep.FormatSequence(seq)
	if err != nil {
		return 0, err
	}
	rows := &sql.Rows{}
	if err := ex.Query(ctx, fmt.Sprintf(nextValueQuery, name), []any{}, rows); err != nil {
		return 0, fmt.Errorf("interbase: next value: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("interbase: next value: %w", err)
		}
		return 0, fmt.Errorf("interbase: next value: no row for generator %s", name)
	}
	var n sql.NullInt64
	if err := rows.Scan(&n); err != nil {
		return 0, fmt.Errorf("interbase: next value: %w", err)
	}
	return n.Int64, nil
}
