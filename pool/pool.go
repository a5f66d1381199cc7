// Package pool provides recycle pools for event and header allocations.
//
// A pool never blocks: TryPush rejects when full and TryPop reports a miss
// when empty, and the caller falls back to the garbage collector or a fresh
// allocation.
//
// Usage:
//
//	pools := pool.NewPools(1024, 128, pool.WithName("events"))
//	ev, err := event.New(event.TypeCustom, event.WithPools(pools))
package pool

import (
	"context"
	"log/slog"

	event "github.com/rbaliyan/switchevent"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/time/rate"
)

// Bounded is a fixed-capacity pool backed by a buffered channel.
// It is safe for concurrent use.
type Bounded[T any] struct {
	name     string
	items    chan *T
	logger   *slog.Logger
	logLimit *rate.Limiter
	attrs    metric.MeasurementOption
	hits     metric.Int64Counter
	misses   metric.Int64Counter
	rejects  metric.Int64Counter
	recycled metric.Int64Counter
}

// New creates a pool holding at most capacity values. A capacity of zero
// rejects every push.
func New[T any](capacity int, opts ...Option) *Bounded[T] {
	o := newOptions(opts...)
	if capacity < 0 {
		capacity = 0
	}

	meter := o.meter
	if meter == nil {
		meter = otel.Meter("switchevent.pool")
	}
	hits, _ := meter.Int64Counter("switchevent.pool.hits",
		metric.WithDescription("Number of allocations served from the pool"),
		metric.WithUnit("{object}"),
	)
	misses, _ := meter.Int64Counter("switchevent.pool.misses",
		metric.WithDescription("Number of allocations the pool could not serve"),
		metric.WithUnit("{object}"),
	)
	rejects, _ := meter.Int64Counter("switchevent.pool.rejects",
		metric.WithDescription("Number of releases rejected because the pool was full"),
		metric.WithUnit("{object}"),
	)
	recycled, _ := meter.Int64Counter("switchevent.pool.recycled",
		metric.WithDescription("Number of releases accepted by the pool"),
		metric.WithUnit("{object}"),
	)

	return &Bounded[T]{
		name:     o.name,
		items:    make(chan *T, capacity),
		logger:   o.logger,
		logLimit: rate.NewLimiter(o.rejectLogRate, 1),
		attrs:    metric.WithAttributes(attribute.String("pool", o.name)),
		hits:     hits,
		misses:   misses,
		rejects:  rejects,
		recycled: recycled,
	}
}

// TryPush offers v to the pool and reports whether it was kept.
func (p *Bounded[T]) TryPush(v *T) bool {
	if v == nil {
		return false
	}
	select {
	case p.items <- v:
		p.recycled.Add(context.Background(), 1, p.attrs)
		return true
	default:
		p.rejects.Add(context.Background(), 1, p.attrs)
		if p.logLimit.Allow() {
			p.logger.Debug("pool full, dropping object", "pool", p.name, "capacity", cap(p.items))
		}
		return false
	}
}

// TryPop takes a value from the pool if one is available.
func (p *Bounded[T]) TryPop() (*T, bool) {
	select {
	case v := <-p.items:
		p.hits.Add(context.Background(), 1, p.attrs)
		return v, true
	default:
		p.misses.Add(context.Background(), 1, p.attrs)
		return nil, false
	}
}

// Len returns the number of pooled values.
func (p *Bounded[T]) Len() int { return len(p.items) }

// Cap returns the pool capacity.
func (p *Bounded[T]) Cap() int { return cap(p.items) }

// Name returns the pool name.
func (p *Bounded[T]) Name() string { return p.name }

// NewPools returns event.Pools with a header pool of headerCap and an event
// pool of eventCap. Pool names get ".headers" and ".events" suffixes.
func NewPools(headerCap, eventCap int, opts ...Option) event.Pools {
	o := newOptions(opts...)
	withName := func(suffix string) []Option {
		return append(append([]Option(nil), opts...), WithName(o.name+suffix))
	}
	return event.Pools{
		Headers: New[event.Header](headerCap, withName(".headers")...),
		Events:  New[event.Event](eventCap, withName(".events")...),
	}
}

// Compile-time checks
var (
	_ event.Pool[event.Header] = (*Bounded[event.Header])(nil)
	_ event.Pool[event.Event]  = (*Bounded[event.Event])(nil)
)
