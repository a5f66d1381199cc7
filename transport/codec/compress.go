package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	event "github.com/rbaliyan/switchevent"
)

// ErrNoInner is returned by compressing codecs built without an inner codec.
var ErrNoInner = errors.New("compressing codec has no inner codec")

// zstd.Encoder and zstd.Decoder are safe for concurrent use with
// EncodeAll and DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("codec: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("codec: zstd decoder initialization failed: " + err.Error())
	}
}

// Zstd wraps another codec and compresses its output with zstd.
//
//	c := codec.Zstd{Inner: codec.JSON{}}
//	data, err := c.Encode(ev) // zstd-compressed JSON
type Zstd struct {
	Inner Codec
}

// Encode encodes ev with the inner codec and compresses the result
func (c Zstd) Encode(ev *event.Event) ([]byte, error) {
	if c.Inner == nil {
		return nil, encodeError(ErrNoInner)
	}
	data, err := c.Inner.Encode(ev)
	if err != nil {
		return nil, err
	}
	return zstdEncoder.EncodeAll(data, nil), nil
}

// Decode decompresses data and decodes it with the inner codec
func (c Zstd) Decode(data []byte) (*event.Event, error) {
	return c.DecodeWith(data)
}

// DecodeWith is Decode with options passed to the inner codec
func (c Zstd) DecodeWith(data []byte, opts ...event.Option) (*event.Event, error) {
	if c.Inner == nil {
		return nil, decodeError(ErrNoInner)
	}
	raw, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return nil, decodeError(fmt.Errorf("zstd decompress: %w", err))
	}
	return DecodeWith(c.Inner, raw, opts...)
}

// ContentType returns the inner content type with a +zstd suffix
func (c Zstd) ContentType() string {
	return innerContentType(c.Inner) + "+zstd"
}

// Name returns the inner codec name with a +zstd suffix
func (c Zstd) Name() string {
	return innerName(c.Inner) + "+zstd"
}

// LZ4 block framing: one mode byte, the uncompressed size as a uvarint,
// then the payload. Incompressible input is stored raw.
const (
	lz4ModeRaw   byte = 0
	lz4ModeBlock byte = 1
)

// maxLZ4Size bounds the declared uncompressed size accepted on decode.
const maxLZ4Size = 64 << 20

// LZ4 wraps another codec and compresses its output with LZ4 block
// compression.
type LZ4 struct {
	Inner Codec
}

// Encode encodes ev with the inner codec and compresses the result
func (c LZ4) Encode(ev *event.Event) ([]byte, error) {
	if c.Inner == nil {
		return nil, encodeError(ErrNoInner)
	}
	data, err := c.Inner.Encode(ev)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 1, 1+binary.MaxVarintLen64+lz4.CompressBlockBound(len(data)))
	out = binary.AppendUvarint(out, uint64(len(data)))
	header := len(out)
	out = out[:cap(out)]

	written, err := lz4.CompressBlock(data, out[header:], nil)
	if err != nil {
		return nil, encodeError(fmt.Errorf("lz4 compress: %w", err))
	}
	if written == 0 || written >= len(data) {
		out[0] = lz4ModeRaw
		return append(out[:header], data...), nil
	}
	out[0] = lz4ModeBlock
	return out[:header+written], nil
}

// Decode decompresses data and decodes it with the inner codec
func (c LZ4) Decode(data []byte) (*event.Event, error) {
	return c.DecodeWith(data)
}

// DecodeWith is Decode with options passed to the inner codec
func (c LZ4) DecodeWith(data []byte, opts ...event.Option) (*event.Event, error) {
	if c.Inner == nil {
		return nil, decodeError(ErrNoInner)
	}
	if len(data) == 0 {
		return nil, decodeError(errors.New("lz4: empty input"))
	}
	size, n := binary.Uvarint(data[1:])
	if n <= 0 || size > maxLZ4Size {
		return nil, decodeError(errors.New("lz4: invalid size prefix"))
	}
	payload := data[1+n:]

	switch data[0] {
	case lz4ModeRaw:
		if uint64(len(payload)) != size {
			return nil, decodeError(fmt.Errorf("lz4: raw size %d does not match %d", len(payload), size))
		}
		return DecodeWith(c.Inner, payload, opts...)
	case lz4ModeBlock:
		raw := make([]byte, size)
		read, err := lz4.UncompressBlock(payload, raw)
		if err != nil {
			return nil, decodeError(fmt.Errorf("lz4 decompress: %w", err))
		}
		if uint64(read) != size {
			return nil, decodeError(fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, size))
		}
		return DecodeWith(c.Inner, raw, opts...)
	default:
		return nil, decodeError(fmt.Errorf("lz4: unknown mode %d", data[0]))
	}
}

// ContentType returns the inner content type with a +lz4 suffix
func (c LZ4) ContentType() string {
	return innerContentType(c.Inner) + "+lz4"
}

// Name returns the inner codec name with a +lz4 suffix
func (c LZ4) Name() string {
	return innerName(c.Inner) + "+lz4"
}

func innerContentType(c Codec) string {
	if c == nil {
		return "application/octet-stream"
	}
	return c.ContentType()
}

func innerName(c Codec) string {
	if c == nil {
		return "raw"
	}
	return c.Name()
}

// Compile-time checks
var (
	_ Codec         = Zstd{}
	_ Codec         = LZ4{}
	_ OptionDecoder = Zstd{}
	_ OptionDecoder = LZ4{}
)
