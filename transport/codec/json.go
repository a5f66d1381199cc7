package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	event "github.com/rbaliyan/switchevent"
)

// JSON implements Codec using a flat JSON object.
//
// Every header becomes a field in store order: a string for scalar headers,
// an array of strings for array headers. Duplicate header names produce
// repeated keys. A body adds "Content-Length" (decimal string) and "_body".
//
// The body is written as a JSON string, so bytes that are not valid UTF-8
// come back as U+FFFD. Use a binary codec for binary bodies.
//
// Decoding builds a CLONE event. "event-name" sets the type and is dropped;
// a string "_body" sets the body; "Content-Length" is framing and is dropped
// whatever its kind. Arrays push their string elements, strings are added
// at the bottom, anything else is ignored.
type JSON struct{}

// Encode serializes an event to JSON bytes
func (c JSON) Encode(ev *event.Event) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.encodeTo(&buf, ev); err != nil {
		return nil, encodeError(err)
	}
	return buf.Bytes(), nil
}

func (c JSON) encodeTo(buf *bytes.Buffer, ev *event.Event) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	first := true
	field := func(name string, value any) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := enc.Encode(name); err != nil {
			return err
		}
		trimNewline(buf)
		buf.WriteByte(':')
		if err := enc.Encode(value); err != nil {
			return err
		}
		trimNewline(buf)
		return nil
	}

	buf.WriteByte('{')
	var err error
	ev.Range(func(h *event.Header) bool {
		if h.IsArray() {
			err = field(h.Name(), h.Values())
		} else {
			err = field(h.Name(), h.Value())
		}
		return err == nil
	})
	if err != nil {
		return err
	}
	if ev.HasBody() {
		body := ev.Body()
		if err := field(event.HeaderContentLength, strconv.Itoa(len(body))); err != nil {
			return err
		}
		if err := field(event.BodyHeader, string(body)); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// json.Encoder terminates every value with a newline
func trimNewline(buf *bytes.Buffer) {
	if n := buf.Len(); n > 0 && buf.Bytes()[n-1] == '\n' {
		buf.Truncate(n - 1)
	}
}

// Decode deserializes a single JSON object to an event
func (c JSON) Decode(data []byte) (*event.Event, error) {
	return c.DecodeWith(data)
}

// DecodeWith is Decode with options for the new event
func (c JSON) DecodeWith(data []byte, opts ...event.Option) (*event.Event, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	ev, err := decodeObject(dec, opts...)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, decodeError(io.ErrUnexpectedEOF)
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, decodeError(errors.New("trailing data after object"))
	}
	return ev, nil
}

// ContentType returns the MIME type for JSON events
func (c JSON) ContentType() string {
	return "text/event-json"
}

// Name returns the codec identifier
func (c JSON) Name() string {
	return "json"
}

func decodeObject(dec *json.Decoder, opts ...event.Option) (*event.Event, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, decodeError(err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, decodeError(fmt.Errorf("expected object, got %v", tok))
	}

	ev, err := event.New(event.TypeClone, opts...)
	if err != nil {
		return nil, err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, decodeError(err)
		}
		name, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, decodeError(err)
		}
		if err := decodeField(ev, name, raw); err != nil {
			return nil, decodeError(err)
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, decodeError(err)
	}
	return ev, nil
}

func decodeField(ev *event.Event, name string, raw json.RawMessage) error {
	if name == "" {
		return nil
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	body := strings.EqualFold(name, event.BodyHeader)
	if (body && raw[0] != '"') || strings.EqualFold(name, event.HeaderContentLength) {
		return nil
	}

	switch raw[0] {
	case '"':
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return err
		}
		switch {
		case body:
			ev.SetBody([]byte(value))
			return nil
		case strings.EqualFold(name, event.HeaderEventName):
			if t, err := event.ParseType(value); err == nil {
				ev.SetType(t)
				return nil
			}
		}
		return ev.AddHeader(event.StackBottom, name, value)
	case '[':
		var items []any
		if err := json.Unmarshal(raw, &items); err != nil {
			return err
		}
		for _, item := range items {
			if s, ok := item.(string); ok {
				if err := ev.AddHeader(event.StackPush, name, s); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// JSONReader reads a stream of JSON event objects.
type JSONReader struct {
	dec  *json.Decoder
	opts []event.Option
}

// NewJSONReader returns a reader decoding successive objects from r.
// opts apply to every event created.
func NewJSONReader(r io.Reader, opts ...event.Option) *JSONReader {
	return &JSONReader{dec: json.NewDecoder(r), opts: opts}
}

// Read returns the next event, or io.EOF at the end of the stream.
func (r *JSONReader) Read() (*event.Event, error) {
	return decodeObject(r.dec, r.opts...)
}

// Compile-time checks
var (
	_ Codec         = JSON{}
	_ OptionDecoder = JSON{}
)
