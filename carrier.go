package event

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// HeaderCarrier adapts an Event to propagation.TextMapCarrier so trace
// context travels as ordinary headers (traceparent, tracestate, baggage).
type HeaderCarrier struct {
	Event *Event
}

// Get returns the value of the first header named key.
func (c HeaderCarrier) Get(key string) string {
	return c.Event.Get(key)
}

// Set replaces every header named key with a single value.
func (c HeaderCarrier) Set(key, value string) {
	c.Event.DelHeader(key)
	c.Event.addValue(StackBottom, key, value)
}

// Keys returns the distinct header names in store order.
func (c HeaderCarrier) Keys() []string {
	seen := make(map[string]struct{}, c.Event.Len())
	keys := make([]string, 0, c.Event.Len())
	c.Event.Range(func(h *Header) bool {
		k := strings.ToLower(h.name)
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			keys = append(keys, h.name)
		}
		return true
	})
	return keys
}

var _ propagation.TextMapCarrier = HeaderCarrier{}

// InjectTrace writes the trace context of ctx into e using the global
// propagator.
func InjectTrace(ctx context.Context, e *Event) {
	otel.GetTextMapPropagator().Inject(ctx, HeaderCarrier{Event: e})
}

// ExtractTrace returns ctx carrying the remote trace context found in e.
func ExtractTrace(ctx context.Context, e *Event) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, HeaderCarrier{Event: e})
}
