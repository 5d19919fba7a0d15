package mimgo

import (
	"github.com/hupe1980/mimgo/distance"
	"github.com/hupe1980/mimgo/neighbors"
	"github.com/hupe1980/mimgo/resource"
)

// AutoCacheSize sizes the neighbor cache to hold one list per doppelgaenger
// cell and modality, so every list is computed once per run.
const AutoCacheSize = -1

type options struct {
	k                int
	metric           distance.Metric
	column           string
	cacheSize        int
	logger           *Logger
	metricsCollector MetricsCollector
	resources        *resource.Controller
}

func defaultOptions() options {
	return options{
		k:                neighbors.DefaultK,
		metric:           distance.MetricEuclidean,
		column:           ColumnName,
		cacheSize:        AutoCacheSize,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

// Option configures a Scorer.
type Option func(*options)

// WithK sets the number of neighbors compared per cell. Defaults to 50.
func WithK(k int) Option {
	return func(o *options) {
		o.k = k
	}
}

// WithMetric sets the distance metric used to rank neighbors.
// Defaults to distance.MetricEuclidean.
func WithMetric(m distance.Metric) Option {
	return func(o *options) {
		o.metric = m
	}
}

// WithColumnName overrides the result column name. Defaults to ColumnName.
func WithColumnName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.column = name
		}
	}
}

// WithNeighborCacheSize bounds the number of memoised neighbor lists.
// 0 disables memoisation, AutoCacheSize (the default) sizes the cache to the
// doppelgaenger count of the run.
func WithNeighborCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example:
//
//	logger := mimgo.NewJSONLogger(slog.LevelInfo)
//	scorer, _ := mimgo.New(mimgo.WithLogger(logger))
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &mimgo.BasicMetricsCollector{}
//	scorer, _ := mimgo.New(mimgo.WithMetricsCollector(metrics))
//	// ... score ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithResourceController accounts distance matrix memory against rc.
// With a memory budget set, a run whose matrices exceed it fails with ErrMemoryLimit.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}
