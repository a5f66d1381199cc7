package event

import (
	"fmt"
	"strings"
)

// Stack selects where and how AddHeader inserts a value.
type Stack int

const (
	// StackBottom appends a new header at the tail. This is the default.
	StackBottom Stack = iota
	// StackTop inserts a new header at the head.
	StackTop
	// StackPush appends the value to the array of an existing header.
	StackPush
	// StackUnshift prepends the value to the array of an existing header.
	StackUnshift
)

func (s Stack) String() string {
	switch s {
	case StackBottom:
		return "bottom"
	case StackTop:
		return "top"
	case StackPush:
		return "push"
	case StackUnshift:
		return "unshift"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// headerList keeps headers in traversal order with amortized O(1) insertion
// at either end. front holds the head portion in reverse.
type headerList struct {
	front []*Header
	back  []*Header
}

func (l *headerList) len() int { return len(l.front) + len(l.back) }

func (l *headerList) pushBack(h *Header)  { l.back = append(l.back, h) }
func (l *headerList) pushFront(h *Header) { l.front = append(l.front, h) }

func (l *headerList) each(fn func(*Header) bool) {
	for i := len(l.front) - 1; i >= 0; i-- {
		if !fn(l.front[i]) {
			return
		}
	}
	for _, h := range l.back {
		if !fn(h) {
			return
		}
	}
}

// removeIf drops every header matching fn and returns them in traversal order.
func (l *headerList) removeIf(fn func(*Header) bool) []*Header {
	var removed []*Header
	keep := l.front[:0]
	// front is reversed, so collect its removals back to front
	var frontRemoved []*Header
	for _, h := range l.front {
		if fn(h) {
			frontRemoved = append(frontRemoved, h)
			continue
		}
		keep = append(keep, h)
	}
	clear(l.front[len(keep):])
	l.front = keep
	for i := len(frontRemoved) - 1; i >= 0; i-- {
		removed = append(removed, frontRemoved[i])
	}

	keep = l.back[:0]
	for _, h := range l.back {
		if fn(h) {
			removed = append(removed, h)
			continue
		}
		keep = append(keep, h)
	}
	clear(l.back[len(keep):])
	l.back = keep
	return removed
}

func (l *headerList) reset() []*Header {
	all := make([]*Header, 0, l.len())
	l.each(func(h *Header) bool {
		all = append(all, h)
		return true
	})
	clear(l.front)
	clear(l.back)
	l.front = l.front[:0]
	l.back = l.back[:0]
	return all
}

// find returns the first header named name in traversal order.
func (e *Event) find(name string) *Header {
	hash := hashName(name)
	var found *Header
	e.headers.each(func(h *Header) bool {
		if h.matches(name, hash) {
			found = h
			return false
		}
		return true
	})
	return found
}

func (e *Event) newHeader(name string) *Header {
	var h *Header
	if e.pools.Headers != nil {
		if pooled, ok := e.pools.Headers.TryPop(); ok && pooled != nil {
			pooled.reset()
			h = pooled
		}
	}
	if h == nil {
		h = &Header{}
	}
	h.name = name
	h.hash = hashName(name)
	return h
}

func (e *Event) releaseHeader(h *Header) {
	h.reset()
	if e.pools.Headers != nil {
		e.pools.Headers.TryPush(h)
	}
}

func (e *Event) insert(h *Header, stack Stack) {
	if stack == StackTop {
		e.headers.pushFront(h)
		return
	}
	e.headers.pushBack(h)
}

// AddHeader adds value under name following stack.
//
// StackBottom and StackTop insert a new header. When the event has
// FlagUniqueHeaders every header of that name is removed first; otherwise
// the new header sits beside the old ones and Header/Get keep returning the
// first. An empty value deletes the header instead. A value starting with
// "ARRAY::" is split on "|:" and each element pushed.
//
// StackPush and StackUnshift append or prepend to the array of the first
// header of that name, creating it if needed.
//
// A name of the form "name[N]" writes array slot N, padding new slots with
// empty strings. Indexes outside [0, MaxHeaderIndex] are ignored.
func (e *Event) AddHeader(stack Stack, name, value string) error {
	if name == "" {
		return fmt.Errorf("%w: empty header name", ErrInvalidArgument)
	}

	if base, index, ok := splitIndex(name); ok {
		if base == "" {
			return fmt.Errorf("%w: empty header name in %q", ErrInvalidArgument, name)
		}
		if index < 0 || index > MaxHeaderIndex {
			return nil
		}
		h := e.find(base)
		if h == nil {
			h = e.newHeader(base)
			e.insert(h, stack)
		}
		h.set(index, value)
		return nil
	}

	if stack == StackPush || stack == StackUnshift {
		if h := e.find(name); h != nil {
			if stack == StackPush {
				h.push(value)
			} else {
				h.unshift(value)
			}
			return nil
		}
	}

	if strings.HasPrefix(value, ArrayPrefix) {
		return e.addArray(name, value)
	}

	e.addValue(stack, name, value)
	return nil
}

// AddHeaderf is AddHeader with a formatted value.
func (e *Event) AddHeaderf(stack Stack, name, format string, args ...any) error {
	return e.AddHeader(stack, name, fmt.Sprintf(format, args...))
}

// SetHeader adds value under name at the bottom of the store.
func (e *Event) SetHeader(name, value string) error {
	return e.AddHeader(StackBottom, name, value)
}

// addValue inserts a new header without "ARRAY::" or index interpretation.
func (e *Event) addValue(stack Stack, name, value string) {
	array := stack == StackPush || stack == StackUnshift
	if value == "" && !array {
		e.DelHeader(name)
		return
	}
	if e.flags.Has(FlagUniqueHeaders) {
		e.DelHeader(name)
	}
	h := e.newHeader(name)
	if array {
		h.array = []string{value}
	} else {
		h.value = value
	}
	e.insert(h, stack)
}

// pushValue appends v to the array of name, creating the header if needed.
func (e *Event) pushValue(name, v string) {
	if h := e.find(name); h != nil {
		h.push(v)
		return
	}
	e.addValue(StackPush, name, v)
}

func (e *Event) addArray(name, value string) error {
	if len(value) <= len(ArrayPrefix) {
		return fmt.Errorf("%w: array value %q has no elements", ErrFormat, value)
	}
	if e.flags.Has(FlagUniqueHeaders) {
		e.DelHeader(name)
	}
	for _, v := range strings.Split(value[len(ArrayPrefix):], ArraySeparator) {
		e.pushValue(name, v)
	}
	return nil
}

// Header returns the first header named name, case-insensitively, or nil.
func (e *Event) Header(name string) *Header {
	return e.find(name)
}

// Lookup returns the scalar form of the first header named name. A name of
// the form "name[N]" returns array element N instead. "_body" falls back to
// the event body when no such header exists.
func (e *Event) Lookup(name string) (string, bool) {
	base, index, indexed := splitIndex(name)
	if h := e.find(base); h != nil {
		if indexed {
			return h.Index(index)
		}
		return h.Value(), true
	}
	if !indexed && equalFold(name, BodyHeader) && e.hasBody {
		return string(e.body), true
	}
	return "", false
}

// Get is Lookup without the presence flag.
func (e *Event) Get(name string) string {
	v, _ := e.Lookup(name)
	return v
}

// GetIndex returns element i of the first header named name.
func (e *Event) GetIndex(name string, i int) (string, bool) {
	h := e.find(name)
	if h == nil {
		return "", false
	}
	return h.Index(i)
}

// DelHeader removes every header named name and reports whether any existed.
func (e *Event) DelHeader(name string) bool {
	hash := hashName(name)
	return e.remove(func(h *Header) bool {
		return h.matches(name, hash)
	})
}

// DelHeaderValue removes every header named name whose scalar form equals value.
func (e *Event) DelHeaderValue(name, value string) bool {
	hash := hashName(name)
	return e.remove(func(h *Header) bool {
		return h.matches(name, hash) && h.Value() == value
	})
}

func (e *Event) remove(fn func(*Header) bool) bool {
	removed := e.headers.removeIf(fn)
	for _, h := range removed {
		e.releaseHeader(h)
	}
	return len(removed) > 0
}

// Headers returns the headers in store order. The slice is a snapshot; the
// headers themselves belong to the event.
func (e *Event) Headers() []*Header {
	all := make([]*Header, 0, e.headers.len())
	e.headers.each(func(h *Header) bool {
		all = append(all, h)
		return true
	})
	return all
}

// Range calls fn for every header in store order until fn returns false.
func (e *Event) Range(fn func(*Header) bool) {
	e.headers.each(fn)
}

// Len returns the number of headers, duplicates included.
func (e *Event) Len() int {
	return e.headers.len()
}
