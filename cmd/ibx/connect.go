package main

import (
	"context"
	stdsql "database/sql"
	"fmt"
	"io"

	_ "github.com/nakagami/firebirdsql"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/syssam/ibx"
	"github.com/syssam/ibx/config"
	"github.com/syssam/ibx/dialect"
	"github.com/syssam/ibx/dialect/interbase"
	"github.com/syssam/ibx/dialect/sql"
)

// driverName is the database/sql driver registered by firebirdsql. It
// speaks the wire protocol shared by both engines.
const driverName = "firebirdsql"

// session is an open connection and the dialect probed through it.
type session struct {
	dialect   *interbase.Dialect
	reflector *interbase.Reflector
	stats     *sql.StatsDriver
}

// resolve returns the connection config and, when loaded from a profiles
// file, the selected profile.
func (o *options) resolve() (*config.Config, *config.Profile, error) {
	if o.url != "" {
		cfg, err := config.ParseURL(o.url)
		return cfg, nil, err
	}
	if o.configPath == "" {
		return nil, nil, ibx.NewConfigurationError("url", "set --url, $IBX_URL or --config")
	}
	f, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	p, err := f.Profile(o.profile)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := f.Connection(o.profile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, p, nil
}

// open connects to the configured server and builds its dialect.
func (o *options) open(ctx context.Context) (*session, error) {
	cfg, p, err := o.resolve()
	if err != nil {
		return nil, err
	}
	db, err := stdsql.Open(driverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg, err)
	}
	return o.session(ctx, sql.OpenDB(cfg.Dialect, db), p)
}

// session wraps drv for statistics, and for logging when verbose, then
// opens the dialect.
func (o *options) session(ctx context.Context, drv *sql.Driver, p *config.Profile) (*session, error) {
	var inner dialect.Driver = drv
	if o.verbose {
		inner = sql.NewDebugDriver(drv, sql.DebugWithLogger(o.log))
	}
	s := &session{
		stats: sql.NewStatsDriver(inner,
			sql.WithSlowThreshold(o.slow),
			sql.WithSlowQueryLog(o.log),
			sql.WithDisconnectClassifier(interbase.IsDisconnect),
		),
	}
	opts, err := o.dialectOptions(p)
	if err != nil {
		s.stats.Close()
		return nil, err
	}
	if s.dialect, err = interbase.Open(ctx, s.stats, opts...); err != nil {
		s.stats.Close()
		return nil, err
	}
	o.log.DebugContext(ctx, "connected", "variant", s.dialect.Capabilities().Variant, "version", s.dialect.Capabilities().Version)
	s.reflector = s.dialect.Reflector(o.reflectOptions(p)...)
	return s, nil
}

func (o *options) dialectOptions(p *config.Profile) ([]interbase.Option, error) {
	raw := o.serverVersion
	if raw == "" && p != nil {
		raw = p.Version
	}
	if raw == "" {
		return nil, nil
	}
	v, err := interbase.ParseVersion(raw)
	if err != nil {
		return nil, ibx.NewConfigurationError("server-version", err.Error())
	}
	return []interbase.Option{interbase.WithVersion(v)}, nil
}

func (o *options) reflectOptions(p *config.Profile) []interbase.ReflectOption {
	opts := []interbase.ReflectOption{interbase.WithLogger(o.log)}
	if p == nil {
		return opts
	}
	switch {
	case p.Cache.Disabled:
		opts = append(opts, interbase.WithCache(nil))
	case p.Cache.Size > 0:
		opts = append(opts, interbase.WithCache(ibx.NewMemoryCache(p.Cache.Size)))
	}
	if p.Cache.TTL > 0 {
		opts = append(opts, interbase.WithCacheTTL(p.Cache.TTL))
	}
	return opts
}

// Close releases the reflector cache and the connection, then prints the
// collected metrics when asked to.
func (s *session) Close(o *options, w io.Writer) error {
	err := s.reflector.Close()
	if cerr := s.stats.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if o.metrics {
		if merr := writeMetrics(w, s.stats.QueryStats()); merr != nil && err == nil {
			err = merr
		}
	}
	return err
}

// writeMetrics renders stats in the Prometheus text exposition format.
func writeMetrics(w io.Writer, stats *sql.QueryStats) error {
	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(sql.NewStatsCollector("ibx", stats)); err != nil {
		return err
	}
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// withSession opens a session, runs fn and closes the session.
func (o *options) withSession(ctx context.Context, stderr io.Writer, fn func(*session) error) (err error) {
	s, err := o.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(o, stderr); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(s)
}
