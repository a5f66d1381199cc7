package event

// options holds construction settings for an Event (unexported)
type options struct {
	subclass string
	flags    Flags
	pools    Pools
}

// Option configures a new Event
type Option func(*options)

func newOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithSubclass sets the subclass label. Only TypeCustom and TypeClone
// accept one; New fails with ErrInvalidArgument otherwise.
func WithSubclass(subclass string) Option {
	return func(o *options) {
		o.subclass = subclass
	}
}

// WithUniqueHeaders makes bottom/top additions replace existing headers of
// the same name.
func WithUniqueHeaders() Option {
	return func(o *options) {
		o.flags |= FlagUniqueHeaders
	}
}

// WithFlags sets the event flags.
func WithFlags(flags Flags) Option {
	return func(o *options) {
		o.flags = flags
	}
}

// WithPools recycles header and event allocations through p.
// Default is no pooling.
func WithPools(p Pools) Option {
	return func(o *options) {
		o.pools = p
	}
}
