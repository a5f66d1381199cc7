package codec

import (
	"github.com/fxamacker/cbor/v2"

	event "github.com/rbaliyan/switchevent"
)

// cborEnc uses Core Deterministic Encoding (RFC 8949 §4.2): the same event
// always produces identical bytes.
var cborEnc cbor.EncMode

// cborDec rejects duplicate map keys and ignores unknown fields.
var cborDec cbor.DecMode

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
	cborDec, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// CBOR implements Codec using deterministic CBOR serialization.
// It carries the same full-fidelity structure as MsgPack.
type CBOR struct{}

// Encode serializes an event to CBOR bytes
func (c CBOR) Encode(ev *event.Event) ([]byte, error) {
	data, err := cborEnc.Marshal(toWire(ev))
	if err != nil {
		return nil, encodeError(err)
	}
	return data, nil
}

// Decode deserializes CBOR bytes to an event
func (c CBOR) Decode(data []byte) (*event.Event, error) {
	return c.DecodeWith(data)
}

// DecodeWith is Decode with options for the new event
func (c CBOR) DecodeWith(data []byte, opts ...event.Option) (*event.Event, error) {
	var w wireEvent
	if err := cborDec.Unmarshal(data, &w); err != nil {
		return nil, decodeError(err)
	}
	ev, err := fromWire(w, opts...)
	if err != nil {
		return nil, decodeError(err)
	}
	return ev, nil
}

// ContentType returns the MIME type for CBOR
func (c CBOR) ContentType() string {
	return "application/cbor"
}

// Name returns the codec identifier
func (c CBOR) Name() string {
	return "cbor"
}

// Compile-time checks
var (
	_ Codec         = CBOR{}
	_ OptionDecoder = CBOR{}
)
