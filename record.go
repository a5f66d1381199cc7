package event

import "fmt"

// HeaderRecord is the plain-data form of a Header.
type HeaderRecord struct {
	Name   string
	Value  string
	Values []string
	Array  bool
}

// Record is the plain-data form of an Event. Unlike the header operations,
// converting to and from a Record keeps duplicate headers, header order,
// flags and body presence exactly.
type Record struct {
	Type     Type
	Subclass string
	Priority Priority
	Flags    Flags
	Headers  []HeaderRecord
	Body     []byte
	HasBody  bool
}

// Record returns a deep copy of e as plain data.
func (e *Event) Record() Record {
	r := Record{
		Type:     e.typ,
		Subclass: e.subclass,
		Priority: e.priority,
		Flags:    e.flags,
		Headers:  make([]HeaderRecord, 0, e.headers.len()),
		HasBody:  e.hasBody,
	}
	e.headers.each(func(h *Header) bool {
		hr := HeaderRecord{Name: h.name, Array: h.array != nil}
		if hr.Array {
			hr.Values = append([]string(nil), h.array...)
		} else {
			hr.Value = h.value
		}
		r.Headers = append(r.Headers, hr)
		return true
	})
	if e.hasBody {
		r.Body = append([]byte(nil), e.body...)
	}
	return r
}

// FromRecord rebuilds an event from r. Headers are restored as given, with
// no uniqueness or empty-value processing. Flags from opts are added to the
// record's; the subclass option is ignored.
func FromRecord(r Record, opts ...Option) (*Event, error) {
	if !r.Type.Valid() {
		return nil, fmt.Errorf("%w: event type %d", ErrInvalidArgument, int(r.Type))
	}
	if r.Subclass != "" && r.Type != TypeCustom && r.Type != TypeClone {
		return nil, &SubclassError{Type: r.Type, Subclass: r.Subclass}
	}
	for _, hr := range r.Headers {
		if hr.Name == "" {
			return nil, fmt.Errorf("%w: empty header name", ErrInvalidArgument)
		}
	}

	o := newOptions(opts...)
	e := o.pools.allocEvent()
	e.typ = r.Type
	e.subclass = r.Subclass
	e.priority = r.Priority
	e.flags = r.Flags | o.flags
	e.pools = o.pools
	for _, hr := range r.Headers {
		h := e.newHeader(hr.Name)
		if hr.Array {
			h.array = append([]string{}, hr.Values...)
		} else {
			h.value = hr.Value
		}
		e.headers.pushBack(h)
	}
	if r.HasBody {
		e.SetBody(r.Body)
	}
	return e, nil
}
