package codec

import (
	event "github.com/rbaliyan/switchevent"
)

// wireEvent is the binary wire format shared by MsgPack and CBOR.
// Type and priority travel by name.
type wireEvent struct {
	Type     string       `msgpack:"type" cbor:"type"`
	Subclass string       `msgpack:"subclass,omitempty" cbor:"subclass,omitempty"`
	Priority string       `msgpack:"priority,omitempty" cbor:"priority,omitempty"`
	Flags    uint32       `msgpack:"flags,omitempty" cbor:"flags,omitempty"`
	Headers  []wireHeader `msgpack:"headers" cbor:"headers"`
	Body     []byte       `msgpack:"body,omitempty" cbor:"body,omitempty"`
	HasBody  bool         `msgpack:"has_body,omitempty" cbor:"has_body,omitempty"`
}

type wireHeader struct {
	Name   string   `msgpack:"name" cbor:"name"`
	Value  string   `msgpack:"value,omitempty" cbor:"value,omitempty"`
	Values []string `msgpack:"values,omitempty" cbor:"values,omitempty"`
	Array  bool     `msgpack:"array,omitempty" cbor:"array,omitempty"`
}

func toWire(ev *event.Event) wireEvent {
	r := ev.Record()
	w := wireEvent{
		Type:     r.Type.String(),
		Subclass: r.Subclass,
		Flags:    uint32(r.Flags),
		Headers:  make([]wireHeader, 0, len(r.Headers)),
		Body:     r.Body,
		HasBody:  r.HasBody,
	}
	if r.Priority != event.PriorityNormal {
		w.Priority = r.Priority.String()
	}
	for _, h := range r.Headers {
		w.Headers = append(w.Headers, wireHeader(h))
	}
	return w
}

func fromWire(w wireEvent, opts ...event.Option) (*event.Event, error) {
	t, err := event.ParseType(w.Type)
	if err != nil {
		return nil, err
	}
	priority := event.PriorityNormal
	if w.Priority != "" {
		if priority, err = event.ParsePriority(w.Priority); err != nil {
			return nil, err
		}
	}
	r := event.Record{
		Type:     t,
		Subclass: w.Subclass,
		Priority: priority,
		Flags:    event.Flags(w.Flags),
		Headers:  make([]event.HeaderRecord, 0, len(w.Headers)),
		Body:     w.Body,
		HasBody:  w.HasBody,
	}
	for _, h := range w.Headers {
		r.Headers = append(r.Headers, event.HeaderRecord(h))
	}
	return event.FromRecord(r, opts...)
}
