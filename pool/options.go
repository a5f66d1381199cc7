package pool

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"golang.org/x/time/rate"
)

// Default configuration values
var (
	// DefaultName labels metrics and log records of unnamed pools
	DefaultName = "pool"

	// DefaultRejectLogRate is the number of "pool full" debug records
	// allowed per second
	DefaultRejectLogRate rate.Limit = 1
)

// options holds configuration for a pool (unexported)
type options struct {
	name          string
	logger        *slog.Logger
	meter         metric.Meter
	rejectLogRate rate.Limit
}

// Option configures a pool
type Option func(*options)

func newOptions(opts ...Option) *options {
	o := &options{
		name:          DefaultName,
		logger:        slog.Default(),
		rejectLogRate: DefaultRejectLogRate,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithName sets the name used in metric attributes and log records.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMeter sets the OpenTelemetry meter. Default is the global meter provider.
func WithMeter(m metric.Meter) Option {
	return func(o *options) {
		o.meter = m
	}
}

// WithRejectLogRate limits how many rejected pushes per second are logged.
// Set to rate.Inf to log every one.
func WithRejectLogRate(r rate.Limit) Option {
	return func(o *options) {
		o.rejectLogRate = r
	}
}
