package codec

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	event "github.com/rbaliyan/switchevent"
)

// Undefined stands in for an empty header value on the wire so a present
// but empty header is distinguishable from an absent one.
const Undefined = "_undef_"

// Plain implements Codec using the native line format:
//
//	Event-Name: CUSTOM\n
//	Event-Subclass: my%3A%3Asub\n
//	Content-Length: 3\n
//	\n
//	abc
//
// Headers are written in store order, one "Name: Value" line each. A
// non-empty body is announced by a Content-Length line and follows the
// blank line verbatim. Without a body, or with an empty one, the output
// ends with a single blank line; the two cases look the same on the wire.
//
// With Escape set, values are percent-encoded so no line break or control
// character reaches the wire, and decoding percent-decodes them.
type Plain struct {
	Escape bool
}

// Encode serializes an event to the native line format
func (c Plain) Encode(ev *event.Event) ([]byte, error) {
	return c.Append(nil, ev), nil
}

// Append appends the encoding of ev to buf.
func (c Plain) Append(buf []byte, ev *event.Event) []byte {
	ev.Range(func(h *event.Header) bool {
		v := h.Value()
		if c.Escape {
			v = URLEncode(v)
		}
		if v == "" {
			v = Undefined
		}
		buf = append(buf, h.Name()...)
		buf = append(buf, ": "...)
		buf = append(buf, v...)
		buf = append(buf, '\n')
		return true
	})

	if body := ev.Body(); len(body) > 0 {
		buf = append(buf, event.HeaderContentLength...)
		buf = append(buf, ": "...)
		buf = strconv.AppendInt(buf, int64(len(body)), 10)
		buf = append(buf, "\n\n"...)
		return append(buf, body...)
	}
	return append(buf, '\n')
}

// Decode deserializes the first event in data
func (c Plain) Decode(data []byte) (*event.Event, error) {
	return c.DecodeWith(data)
}

// DecodeWith is Decode with options for the new event
func (c Plain) DecodeWith(data []byte, opts ...event.Option) (*event.Event, error) {
	ev, err := NewPlainReader(bytes.NewReader(data), c.Escape, opts...).Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, decodeError(io.ErrUnexpectedEOF)
		}
		return nil, err
	}
	return ev, nil
}

// ContentType returns the MIME type for the native format
func (c Plain) ContentType() string {
	return "text/event-plain"
}

// Name returns the codec identifier
func (c Plain) Name() string {
	return "plain"
}

// PlainReader reads a stream of natively encoded events.
//
// Each line is split on the first ": ". A blank line ends the headers; if a
// Content-Length header was seen, exactly that many bytes follow as the
// body. Content-Length itself is not kept as a header. Event-Name sets the
// event type and is kept; an unknown name leaves the type at CLONE.
type PlainReader struct {
	r        *bufio.Reader
	unescape bool
	opts     []event.Option
}

// NewPlainReader returns a reader decoding events from r. With unescape set,
// header values are percent-decoded. opts apply to every event created.
func NewPlainReader(r io.Reader, unescape bool, opts ...event.Option) *PlainReader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &PlainReader{r: br, unescape: unescape, opts: opts}
}

// Read returns the next event. It returns io.EOF when the stream ends
// cleanly between events.
func (d *PlainReader) Read() (*event.Event, error) {
	ev, err := event.New(event.TypeClone, d.opts...)
	if err != nil {
		return nil, err
	}

	contentLength := -1
	lines := 0
	for {
		line, err := d.r.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && lines == 0 && line == "" {
				return nil, io.EOF
			}
			if errors.Is(err, io.EOF) {
				return nil, decodeError(io.ErrUnexpectedEOF)
			}
			return nil, err
		}
		lines++
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if line == "" {
			break
		}

		name, value, ok := strings.Cut(line, ": ")
		if !ok || name == "" {
			return nil, decodeError(fmt.Errorf("malformed header line %q", line))
		}

		if strings.EqualFold(name, event.HeaderContentLength) {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil || n < 0 {
				return nil, decodeError(fmt.Errorf("invalid Content-Length %q", value))
			}
			contentLength = n
			continue
		}

		if err := d.addHeader(ev, name, value); err != nil {
			return nil, decodeError(err)
		}
	}

	if contentLength >= 0 {
		body := make([]byte, contentLength)
		if _, err := io.ReadFull(d.r, body); err != nil {
			return nil, decodeError(err)
		}
		ev.SetBody(body)
	}
	return ev, nil
}

func (d *PlainReader) addHeader(ev *event.Event, name, value string) error {
	if value == Undefined {
		return ev.AddHeader(event.StackPush, name, "")
	}
	if d.unescape {
		decoded, err := url.PathUnescape(value)
		if err != nil {
			return fmt.Errorf("header %q: %w", name, err)
		}
		value = decoded
	}
	if strings.EqualFold(name, event.HeaderEventName) {
		if t, err := event.ParseType(value); err == nil {
			ev.SetType(t)
		}
	}
	return ev.AddHeader(event.StackBottom, name, value)
}

// PlainWriter writes natively encoded events to a stream.
type PlainWriter struct {
	w     io.Writer
	codec Plain
	buf   []byte
}

// NewPlainWriter returns a writer encoding events to w.
func NewPlainWriter(w io.Writer, escape bool) *PlainWriter {
	return &PlainWriter{w: w, codec: Plain{Escape: escape}}
}

// Write encodes ev and writes it in one call to the underlying writer.
func (w *PlainWriter) Write(ev *event.Event) error {
	w.buf = w.codec.Append(w.buf[:0], ev)
	if _, err := w.w.Write(w.buf); err != nil {
		return encodeError(err)
	}
	return nil
}

// Compile-time checks
var (
	_ Codec         = Plain{}
	_ OptionDecoder = Plain{}
)
