package codec

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	event "github.com/rbaliyan/switchevent"
)

// MaxFrameSize bounds a single framed event.
const MaxFrameSize = 64 << 20

// FrameWriter writes events encoded by a codec, each prefixed by its
// length as a uvarint. It suits the binary codecs, whose output has no
// terminator of its own.
type FrameWriter struct {
	w     io.Writer
	codec Codec
	buf   []byte
}

// NewFrameWriter returns a writer encoding events with c.
func NewFrameWriter(w io.Writer, c Codec) *FrameWriter {
	return &FrameWriter{w: w, codec: c}
}

// Write encodes ev and writes the frame in one call.
func (w *FrameWriter) Write(ev *event.Event) error {
	data, err := w.codec.Encode(ev)
	if err != nil {
		return err
	}
	w.buf = binary.AppendUvarint(w.buf[:0], uint64(len(data)))
	w.buf = append(w.buf, data...)
	if _, err := w.w.Write(w.buf); err != nil {
		return encodeError(err)
	}
	return nil
}

// FrameReader reads events written by a FrameWriter.
type FrameReader struct {
	r     *bufio.Reader
	codec Codec
	opts  []event.Option
}

// NewFrameReader returns a reader decoding frames with c. opts apply to
// every event created when c implements OptionDecoder.
func NewFrameReader(r io.Reader, c Codec, opts ...event.Option) *FrameReader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &FrameReader{r: br, codec: c, opts: opts}
}

// Read returns the next event, or io.EOF at a clean end of stream.
func (r *FrameReader) Read() (*event.Event, error) {
	size, err := binary.ReadUvarint(r.r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, decodeError(err)
	}
	if size > MaxFrameSize {
		return nil, decodeError(fmt.Errorf("frame of %d bytes exceeds %d", size, MaxFrameSize))
	}
	data := make([]byte, size)
	if _, err := io.ReadFull(r.r, data); err != nil {
		return nil, decodeError(fmt.Errorf("frame: %w", io.ErrUnexpectedEOF))
	}
	return DecodeWith(r.codec, data, r.opts...)
}
