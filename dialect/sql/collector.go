package sql

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StatsCollector exports a QueryStats as Prometheus metrics.
type StatsCollector struct {
	stats *QueryStats

	queries     *prometheus.Desc
	execs       *prometheus.Desc
	duration    *prometheus.Desc
	slow        *prometheus.Desc
	errors      *prometheus.Desc
	disconnects *prometheus.Desc
}

// NewStatsCollector returns a collector reading from stats. Metric names are
// prefixed with namespace.
func NewStatsCollector(namespace string, stats *QueryStats) *StatsCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "sql", name), help, nil, nil)
	}
	return &StatsCollector{
		stats:       stats,
		queries:     desc("queries_total", "Number of queries executed."),
		execs:       desc("execs_total", "Number of statements executed."),
		duration:    desc("duration_seconds_total", "Time spent executing statements."),
		slow:        desc("slow_queries_total", "Number of statements over the slow threshold."),
		errors:      desc("errors_total", "Number of failed statements."),
		disconnects: desc("disconnects_total", "Number of failures caused by a lost connection."),
	}
}

// Describe implements prometheus.Collector.
func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.queries
	ch <- c.execs
	ch <- c.duration
	ch <- c.slow
	ch <- c.errors
	ch <- c.disconnects
}

// Collect implements prometheus.Collector.
func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats.Stats()
	ch <- prometheus.MustNewConstMetric(c.queries, prometheus.CounterValue, float64(s.TotalQueries))
	ch <- prometheus.MustNewConstMetric(c.execs, prometheus.CounterValue, float64(s.TotalExecs))
	ch <- prometheus.MustNewConstMetric(c.duration, prometheus.CounterValue, s.TotalDuration.Seconds())
	ch <- prometheus.MustNewConstMetric(c.slow, prometheus.CounterValue, float64(s.SlowQueries))
	ch <- prometheus.MustNewConstMetric(c.errors, prometheus.CounterValue, float64(s.Errors))
	ch <- prometheus.MustNewConstMetric(c.disconnects, prometheus.CounterValue, float64(s.Disconnects))
}

var _ prometheus.Collector = (*StatsCollector)(nil)
