package codec

import (
	"github.com/vmihailenco/msgpack/v5"

	event "github.com/rbaliyan/switchevent"
)

// MsgPack implements Codec using MessagePack serialization.
// MessagePack is a binary format that's more compact than JSON
// while maintaining schema-less flexibility.
//
// Unlike the JSON and Plain formats, the encoding keeps everything about
// an event: type, subclass, priority, flags, duplicate headers, header
// order, array headers and whether a body is present.
type MsgPack struct{}

// Encode serializes an event to MessagePack bytes
func (c MsgPack) Encode(ev *event.Event) ([]byte, error) {
	data, err := msgpack.Marshal(toWire(ev))
	if err != nil {
		return nil, encodeError(err)
	}
	return data, nil
}

// Decode deserializes MessagePack bytes to an event
func (c MsgPack) Decode(data []byte) (*event.Event, error) {
	return c.DecodeWith(data)
}

// DecodeWith is Decode with options for the new event
func (c MsgPack) DecodeWith(data []byte, opts ...event.Option) (*event.Event, error) {
	var w wireEvent
	if err := msgpack.Unmarshal(data, &w); err != nil {
		return nil, decodeError(err)
	}
	ev, err := fromWire(w, opts...)
	if err != nil {
		return nil, decodeError(err)
	}
	return ev, nil
}

// ContentType returns the MIME type for MessagePack
func (c MsgPack) ContentType() string {
	return "application/msgpack"
}

// Name returns the codec identifier
func (c MsgPack) Name() string {
	return "msgpack"
}

// Compile-time checks
var (
	_ Codec         = MsgPack{}
	_ OptionDecoder = MsgPack{}
)
