package codec

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	event "github.com/rbaliyan/switchevent"
)

// binaryCodecs keep every detail of an event.
var binaryCodecs = []Codec{
	MsgPack{},
	CBOR{},
	Proto{},
	Zstd{Inner: MsgPack{}},
	LZ4{Inner: CBOR{}},
}

func fidelityEvents(t *testing.T) map[string]*event.Event {
	t.Helper()

	full := newCustom(t, "my::sub")
	full.SetPriority(event.PriorityHigh)
	mustAdd(t, full, event.StackBottom, "Dup", "1")
	mustAdd(t, full, event.StackBottom, "Dup", "2")
	mustAdd(t, full, event.StackPush, "List", "a")
	mustAdd(t, full, event.StackPush, "List", "b")
	mustAdd(t, full, event.StackPush, "Single", "only")
	mustAdd(t, full, event.StackBottom, "Spaced", "a b\nc")
	full.SetBody([]byte{0, 1, 2, 0xff})

	emptyBody, _ := event.New(event.TypeHeartbeat, event.WithUniqueHeaders())
	emptyBody.SetBody(nil)

	clone, _ := event.New(event.TypeClone)
	mustAdd(t, clone, event.StackTop, "Only", "header")

	return map[string]*event.Event{
		"full":       full,
		"empty body": emptyBody,
		"clone":      clone,
	}
}

func TestBinaryCodecs(t *testing.T) {
	for _, c := range binaryCodecs {
		t.Run(c.Name(), func(t *testing.T) {
			for name, ev := range fidelityEvents(t) {
				t.Run(name, func(t *testing.T) {
					data, err := c.Encode(ev)
					if err != nil {
						t.Fatalf("Encode failed: %v", err)
					}
					got, err := c.Decode(data)
					if err != nil {
						t.Fatalf("Decode failed: %v", err)
					}
					if diff := cmp.Diff(ev.Record(), got.Record(), cmpopts.EquateEmpty()); diff != "" {
						t.Errorf("record mismatch (-want +got):\n%s", diff)
					}
					if got.HasBody() != ev.HasBody() {
						t.Errorf("expected HasBody %v, got %v", ev.HasBody(), got.HasBody())
					}
				})
			}
		})

		t.Run(c.Name()+" rejects garbage", func(t *testing.T) {
			_, err := c.Decode([]byte("\xc1 definitely not an event"))
			if !errors.Is(err, ErrDecodeFailure) || !errors.Is(err, event.ErrFormat) {
				t.Errorf("expected decode failure, got %v", err)
			}
		})
	}
}

func TestBinaryDeterministic(t *testing.T) {
	ev := fidelityEvents(t)["full"]
	for _, c := range []Codec{CBOR{}, Proto{}} {
		a, _ := c.Encode(ev)
		b, _ := c.Encode(ev)
		if !bytes.Equal(a, b) {
			t.Errorf("%s: encoding is not deterministic", c.Name())
		}
	}
}

func TestWireUnknownType(t *testing.T) {
	data, err := MsgPack{}.Encode(fidelityEvents(t)["clone"])
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	data = bytes.Replace(data, []byte("CLONE"), []byte("XXXXX"), 1)

	_, err = MsgPack{}.Decode(data)
	if !event.IsUnknownType(err) {
		t.Errorf("expected unknown type error, got %v", err)
	}
}

func TestCompression(t *testing.T) {
	t.Run("names and content types", func(t *testing.T) {
		z := Zstd{Inner: JSON{}}
		if z.Name() != "json+zstd" || z.ContentType() != "text/event-json+zstd" {
			t.Errorf("unexpected zstd identity %s %s", z.Name(), z.ContentType())
		}
		l := LZ4{Inner: MsgPack{}}
		if l.Name() != "msgpack+lz4" || l.ContentType() != "application/msgpack+lz4" {
			t.Errorf("unexpected lz4 identity %s %s", l.Name(), l.ContentType())
		}
	})

	t.Run("compressible body shrinks", func(t *testing.T) {
		ev, _ := event.New(event.TypeLog)
		ev.SetBody([]byte(strings.Repeat("the same log line\n", 500)))

		plain, _ := JSON{}.Encode(ev)
		for _, c := range []Codec{Zstd{Inner: JSON{}}, LZ4{Inner: JSON{}}} {
			data, err := c.Encode(ev)
			if err != nil {
				t.Fatalf("%s: Encode failed: %v", c.Name(), err)
			}
			if len(data) >= len(plain) {
				t.Errorf("%s: expected fewer than %d bytes, got %d", c.Name(), len(plain), len(data))
			}
			got, err := c.Decode(data)
			if err != nil {
				t.Fatalf("%s: Decode failed: %v", c.Name(), err)
			}
			if !bytes.Equal(got.Body(), ev.Body()) {
				t.Errorf("%s: body mismatch", c.Name())
			}
		}
	})

	t.Run("lz4 stores incompressible input raw", func(t *testing.T) {
		ev, _ := event.New(event.TypeClone)
		mustAdd(t, ev, event.StackBottom, "A", "1")
		data, err := LZ4{Inner: Plain{}}.Encode(ev)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if data[0] != lz4ModeRaw {
			t.Errorf("expected raw mode, got %d", data[0])
		}
		got, err := LZ4{Inner: Plain{}}.Decode(data)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if got.Get("A") != "1" {
			t.Errorf("expected A=1, got %q", got.Get("A"))
		}
	})

	t.Run("missing inner codec", func(t *testing.T) {
		ev, _ := event.New(event.TypeClone)
		if _, err := (Zstd{}).Encode(ev); !errors.Is(err, ErrNoInner) {
			t.Errorf("expected ErrNoInner, got %v", err)
		}
		if _, err := (LZ4{}).Decode([]byte{0}); !errors.Is(err, ErrNoInner) {
			t.Errorf("expected ErrNoInner, got %v", err)
		}
	})

	t.Run("corrupt input", func(t *testing.T) {
		for _, data := range [][]byte{nil, {9, 1, 0}, {lz4ModeRaw, 5, 'a'}, {lz4ModeBlock, 0xff}} {
			if _, err := (LZ4{Inner: JSON{}}).Decode(data); !errors.Is(err, event.ErrFormat) {
				t.Errorf("lz4 %v: expected ErrFormat, got %v", data, err)
			}
		}
		if _, err := (Zstd{Inner: JSON{}}).Decode([]byte("not zstd")); !errors.Is(err, event.ErrFormat) {
			t.Errorf("zstd: expected ErrFormat, got %v", err)
		}
	})
}

type fakeCodec struct{ JSON }

func (fakeCodec) ContentType() string { return "application/x-fake" }
func (fakeCodec) Name() string        { return "fake" }

func TestRegistry(t *testing.T) {
	t.Run("builtin codecs", func(t *testing.T) {
		names := Names()
		for _, want := range []string{"cbor", "json", "msgpack", "plain", "proto"} {
			if !slices.Contains(names, want) {
				t.Errorf("expected %s in %v", want, names)
			}
		}
		if !slices.IsSorted(names) {
			t.Errorf("expected sorted names, got %v", names)
		}
	})

	t.Run("Get by content type", func(t *testing.T) {
		c, ok := Get("text/event-json")
		if !ok || c.Name() != "json" {
			t.Errorf("expected json codec, got %v %v", c, ok)
		}
		if _, ok := Get("application/unknown"); ok {
			t.Error("expected miss for unknown content type")
		}
	})

	t.Run("MustGet falls back to the default", func(t *testing.T) {
		if c := MustGet("application/unknown"); c.Name() != Default().Name() {
			t.Errorf("expected default codec, got %s", c.Name())
		}
	})

	t.Run("Lookup with compression suffix", func(t *testing.T) {
		c, err := Lookup("msgpack+zstd")
		if err != nil {
			t.Fatalf("Lookup failed: %v", err)
		}
		if _, ok := c.(Zstd); !ok || c.Name() != "msgpack+zstd" {
			t.Errorf("unexpected codec %#v", c)
		}
		c, err = Lookup("json+lz4")
		if err != nil || c.Name() != "json+lz4" {
			t.Errorf("unexpected codec %v, %v", c, err)
		}
		if _, err := Lookup("nope+zstd"); err == nil {
			t.Error("expected error for unknown inner codec")
		}
	})

	t.Run("Register adds a codec", func(t *testing.T) {
		Register(fakeCodec{})
		if c, err := Lookup("fake"); err != nil || c.ContentType() != "application/x-fake" {
			t.Errorf("expected fake codec, got %v, %v", c, err)
		}
		if c, ok := Get("application/x-fake"); !ok || c.Name() != "fake" {
			t.Errorf("expected fake codec by content type, got %v, %v", c, ok)
		}
	})
}

func TestFrames(t *testing.T) {
	events := fidelityEvents(t)
	order := []string{"full", "empty body", "clone"}

	var buf bytes.Buffer
	w := NewFrameWriter(&buf, CBOR{})
	for _, name := range order {
		if err := w.Write(events[name]); err != nil {
			t.Fatalf("Write %s failed: %v", name, err)
		}
	}

	r := NewFrameReader(bytes.NewReader(buf.Bytes()), CBOR{})
	for _, name := range order {
		got, err := r.Read()
		if err != nil {
			t.Fatalf("Read %s failed: %v", name, err)
		}
		if diff := cmp.Diff(events[name].Record(), got.Record(), cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
		}
	}
	if _, err := r.Read(); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF, got %v", err)
	}

	t.Run("options apply to decoded events", func(t *testing.T) {
		for _, c := range append(binaryCodecs, Plain{}, JSON{}) {
			var framed bytes.Buffer
			if err := NewFrameWriter(&framed, c).Write(events["clone"]); err != nil {
				t.Fatalf("%s: Write failed: %v", c.Name(), err)
			}
			got, err := NewFrameReader(&framed, c, event.WithUniqueHeaders()).Read()
			if err != nil {
				t.Fatalf("%s: Read failed: %v", c.Name(), err)
			}
			if !got.Flags().Has(event.FlagUniqueHeaders) {
				t.Errorf("%s: expected unique header flag", c.Name())
			}
			mustAdd(t, got, event.StackBottom, "Only", "replaced")
			if n := len(viewHeaders(got)); n != 1 || got.Get("Only") != "replaced" {
				t.Errorf("%s: expected a single replaced header, got %v", c.Name(), viewHeaders(got))
			}
		}
	})

	t.Run("truncated frame", func(t *testing.T) {
		data := buf.Bytes()[:buf.Len()-1]
		r := NewFrameReader(bytes.NewReader(data), CBOR{})
		var err error
		for err == nil {
			_, err = r.Read()
		}
		if !errors.Is(err, event.ErrFormat) {
			t.Errorf("expected ErrFormat, got %v", err)
		}
	})
}
