// Package event provides the event object model of the switch: the typed,
// header-based message exchanged between the core and its control and
// monitoring clients. Wire encodings live in transport/codec.
//
// Basic example:
//
//	ev, err := event.NewCustom("conference::maintenance")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ev.Destroy()
//
//	ev.SetHeader("Action", "add-member")
//	ev.AddHeader(event.StackPush, "Member", "1001")
//	ev.AddHeader(event.StackPush, "Member", "1002")
//	ev.Get("Member") // "ARRAY::1001|:1002"
//
// Header stacks:
//   - StackBottom: append a new header (default). Empty values delete.
//   - StackTop: insert a new header at the head.
//   - StackPush: append to the array of an existing header.
//   - StackUnshift: prepend to the array of an existing header.
//
// Array headers:
// A header is either a single string or an ordered list. Reading an array
// header as a string renders "ARRAY::a|:b"; adding such a string pushes each
// element. "name[N]" writes slot N directly.
//
// Duplicate names:
// Unless the event is created WithUniqueHeaders, adding a header whose name
// already exists keeps both. Header and Get return the first; DelHeader
// removes all of them.
//
// Event Options:
//   - WithSubclass: subclass label, CUSTOM and CLONE only.
//   - WithUniqueHeaders: replace instead of duplicating headers.
//   - WithPools: recycle headers and events through a Pool (see package pool).
//
// Type names:
// Types are a closed enumeration. ParseType resolves names case-insensitively
// and also accepts a 13 character namespace prefix such as "SWITCH_EVENT_".
//
// Concurrency:
// An Event is owned by one goroutine at a time. Dispatchers handing an event
// to several consumers must give each its own Duplicate.
package event
