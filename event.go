package event

import (
	"fmt"
)

// Well-known header names.
const (
	HeaderEventName     = "Event-Name"
	HeaderEventSubclass = "Event-Subclass"
	HeaderPriority      = "priority"
	HeaderContentLength = "Content-Length"

	// BodyHeader aliases the body in Lookup and in the JSON encoding.
	BodyHeader = "_body"
)

// Flags is a bit set of per-event behaviors.
type Flags uint32

const (
	// FlagUniqueHeaders makes StackTop/StackBottom additions replace every
	// existing header of the same name.
	FlagUniqueHeaders Flags = 1 << iota
)

// Has reports whether every bit of x is set in f.
func (f Flags) Has(x Flags) bool { return f&x == x }

// Event is the unit of state exchanged between the core and its clients:
// a typed, ordered collection of headers plus an optional body.
//
// An Event is not safe for concurrent mutation. Hand each consumer its own
// Duplicate.
type Event struct {
	typ      Type
	subclass string
	priority Priority
	flags    Flags
	headers  headerList
	body     []byte
	hasBody  bool
	userData any
	bindData any
	pools    Pools
}

// New creates an event of type t. A subclass may only be given for
// TypeCustom and TypeClone. The Event-Name header is added for every type
// but TypeClone, and Event-Subclass when a subclass is set.
func New(t Type, opts ...Option) (*Event, error) {
	o := newOptions(opts...)
	if !t.Valid() {
		return nil, fmt.Errorf("%w: event type %d", ErrInvalidArgument, int(t))
	}
	if o.subclass != "" && t != TypeCustom && t != TypeClone {
		return nil, &SubclassError{Type: t, Subclass: o.subclass}
	}

	e := o.pools.allocEvent()
	e.typ = t
	e.subclass = o.subclass
	e.priority = PriorityNormal
	e.flags = o.flags
	e.pools = o.pools

	if t != TypeClone {
		e.addValue(StackBottom, HeaderEventName, t.String())
	}
	if o.subclass != "" {
		e.addValue(StackBottom, HeaderEventSubclass, o.subclass)
	}
	return e, nil
}

// NewCustom creates a TypeCustom event carrying subclass.
func NewCustom(subclass string, opts ...Option) (*Event, error) {
	return New(TypeCustom, append(opts, WithSubclass(subclass))...)
}

// Type returns the event type.
func (e *Event) Type() Type { return e.typ }

// SetType changes the event type without touching the Event-Name header.
func (e *Event) SetType(t Type) { e.typ = t }

// Subclass returns the subclass label, empty when none.
func (e *Event) Subclass() string { return e.subclass }

// Flags returns the event flags.
func (e *Event) Flags() Flags { return e.flags }

// Priority returns the event priority.
func (e *Event) Priority() Priority { return e.priority }

// SetPriority stores p and places a "priority" header carrying its name at
// the top of the store, replacing any earlier one.
func (e *Event) SetPriority(p Priority) {
	e.priority = p
	e.DelHeader(HeaderPriority)
	e.addValue(StackTop, HeaderPriority, p.String())
}

// Body returns the body bytes. The slice belongs to the event.
func (e *Event) Body() []byte { return e.body }

// HasBody reports whether a body was set, even an empty one.
func (e *Event) HasBody() bool { return e.hasBody }

// SetBody replaces the body with a copy of b.
func (e *Event) SetBody(b []byte) {
	e.body = append(e.body[:0:0], b...)
	e.hasBody = true
}

// AddBody replaces the body with the formatted string.
func (e *Event) AddBody(format string, args ...any) {
	if len(args) == 0 {
		e.SetBody([]byte(format))
		return
	}
	e.SetBody(fmt.Appendf(nil, format, args...))
}

// ClearBody removes the body.
func (e *Event) ClearBody() {
	e.body = nil
	e.hasBody = false
}

// UserData returns the opaque per-event value. The event never owns it.
func (e *Event) UserData() any { return e.userData }

// SetUserData stores an opaque per-event value.
func (e *Event) SetUserData(v any) { e.userData = v }

// BindData returns the opaque value attached by the subscription binding.
func (e *Event) BindData() any { return e.bindData }

// SetBindData stores the opaque binding value.
func (e *Event) SetBindData(v any) { e.bindData = v }

// Merge overlays the headers of other onto e. Array headers are pushed
// element by element in order; scalar headers are added at the bottom,
// empty values included. The body is never merged.
func (e *Event) Merge(other *Event) {
	if other == nil {
		return
	}
	// other may be e; work from a copy
	for _, hr := range other.Record().Headers {
		if hr.Array {
			for _, v := range hr.Values {
				e.pushValue(hr.Name, v)
			}
			continue
		}
		if e.flags.Has(FlagUniqueHeaders) {
			e.DelHeader(hr.Name)
		}
		h := e.newHeader(hr.Name)
		h.value = hr.Value
		e.headers.pushBack(h)
	}
}

// Duplicate returns a deep copy of e built as a CLONE event and then given
// e's type. Subclass, flags, priority, user data (shallow), headers and
// body are copied. Headers keep their order and form, empty values
// included. No Event-Name header is generated; the one carried by e
// is copied like any other. When e has a subclass its Event-Subclass header
// is regenerated as the first header rather than copied.
func (e *Event) Duplicate() *Event {
	d := e.pools.allocEvent()
	d.typ = TypeClone
	d.subclass = e.subclass
	d.flags = e.flags
	d.pools = e.pools
	if e.subclass != "" {
		d.addValue(StackBottom, HeaderEventSubclass, e.subclass)
	}

	d.typ = e.typ
	d.priority = e.priority
	d.userData = e.userData
	d.bindData = e.bindData

	e.headers.each(func(h *Header) bool {
		if e.subclass != "" && equalFold(h.name, HeaderEventSubclass) {
			return true
		}
		c := d.newHeader(h.name)
		if h.array != nil {
			c.array = append([]string{}, h.array...)
		} else {
			c.value = h.value
		}
		d.headers.pushBack(c)
		return true
	})

	if e.hasBody {
		d.SetBody(e.body)
	}
	return d
}

// Destroy releases every header and the body, offering headers and the
// event itself back to the configured pools. e must not be used afterwards.
func (e *Event) Destroy() {
	if e == nil {
		return
	}
	for _, h := range e.headers.reset() {
		e.releaseHeader(h)
	}
	pools := e.pools
	headers := e.headers
	*e = Event{headers: headers}
	pools.releaseEvent(e)
}
