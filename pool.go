package event

// Pool recycles allocations. Implementations must be safe for concurrent use.
// TryPush may reject the value, in which case it is left to the garbage
// collector; TryPop reports false when nothing is available.
type Pool[T any] interface {
	TryPush(v *T) bool
	TryPop() (*T, bool)
}

// Pools is the pair of recycle pools an Event draws from. Either may be nil.
type Pools struct {
	Headers Pool[Header]
	Events  Pool[Event]
}

func (p Pools) allocEvent() *Event {
	if p.Events != nil {
		if e, ok := p.Events.TryPop(); ok && e != nil {
			headers := e.headers
			*e = Event{headers: headers}
			return e
		}
	}
	return &Event{}
}

func (p Pools) releaseEvent(e *Event) {
	if p.Events != nil {
		p.Events.TryPush(e)
	}
}
