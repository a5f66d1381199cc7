// Package codec provides event serialization/deserialization implementations
// for the event transports.
//
// Supported formats:
//   - Plain (native line format, "text/event-plain"): "Name: Value" lines
//     with Content-Length body framing, the format control clients speak
//   - JSON ("text/event-json"): a flat object, arrays for array headers
//   - MessagePack, CBOR, Protocol Buffers: binary forms that keep every
//     detail of an event (type, subclass, priority, duplicate headers, body)
//   - Zstd, LZ4: compression wrappers around any of the above
package codec

import (
	"errors"

	event "github.com/rbaliyan/switchevent"
)

// Codec errors
var (
	ErrEncodeFailure = errors.New("failed to encode event")
	ErrDecodeFailure = errors.New("failed to decode event")
)

// Codec handles event serialization/deserialization for external transports.
// Implementations must be safe for concurrent use.
type Codec interface {
	// Encode serializes an event to bytes.
	// Returns ErrEncodeFailure if serialization fails.
	Encode(ev *event.Event) ([]byte, error)

	// Decode deserializes bytes to a new event owned by the caller.
	// Returns an error matching both ErrDecodeFailure and event.ErrFormat
	// if the data is malformed.
	Decode(data []byte) (*event.Event, error)

	// ContentType returns the MIME type for this codec (e.g., "text/event-json").
	ContentType() string

	// Name returns a short identifier for this codec (e.g., "plain", "json").
	Name() string
}

// OptionDecoder is implemented by codecs that can apply event options,
// such as pools or the unique header flag, to the events they decode.
type OptionDecoder interface {
	DecodeWith(data []byte, opts ...event.Option) (*event.Event, error)
}

// DecodeWith decodes data with c, applying opts when c supports them.
func DecodeWith(c Codec, data []byte, opts ...event.Option) (*event.Event, error) {
	if d, ok := c.(OptionDecoder); ok {
		return d.DecodeWith(data, opts...)
	}
	return c.Decode(data)
}

// Default returns the default codec (Plain with escaping)
func Default() Codec {
	return Plain{Escape: true}
}

func decodeError(err error) error {
	return errors.Join(ErrDecodeFailure, event.ErrFormat, err)
}

func encodeError(err error) error {
	return errors.Join(ErrEncodeFailure, err)
}
