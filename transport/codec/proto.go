package codec

import (
	"encoding/base64"
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	event "github.com/rbaliyan/switchevent"
)

// Proto implements Codec using Protocol Buffers serialization of a
// google.protobuf.Struct, so any protobuf runtime can read it without
// generated types:
//
//	{
//	  "type": "CUSTOM", "subclass": "my::sub", "priority": "HIGH", "flags": 1,
//	  "headers": [{"name": "A", "value": "1"}, {"name": "L", "values": ["x", "y"]}],
//	  "body": "<base64>"
//	}
//
// "body" is present only when the event has one, possibly empty.
type Proto struct{}

// Encode serializes an event to Protocol Buffer bytes
func (c Proto) Encode(ev *event.Event) ([]byte, error) {
	r := ev.Record()
	headers := make([]any, 0, len(r.Headers))
	for _, h := range r.Headers {
		field := map[string]any{"name": h.Name}
		if h.Array {
			values := make([]any, len(h.Values))
			for i, v := range h.Values {
				values[i] = v
			}
			field["values"] = values
		} else {
			field["value"] = h.Value
		}
		headers = append(headers, field)
	}

	fields := map[string]any{
		"type":     r.Type.String(),
		"priority": r.Priority.String(),
		"flags":    float64(r.Flags),
		"headers":  headers,
	}
	if r.Subclass != "" {
		fields["subclass"] = r.Subclass
	}
	if r.HasBody {
		fields["body"] = base64.StdEncoding.EncodeToString(r.Body)
	}

	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, encodeError(err)
	}
	data, err := proto.MarshalOptions{Deterministic: true}.Marshal(s)
	if err != nil {
		return nil, encodeError(err)
	}
	return data, nil
}

// Decode deserializes Protocol Buffer bytes to an event
func (c Proto) Decode(data []byte) (*event.Event, error) {
	return c.DecodeWith(data)
}

// DecodeWith is Decode with options for the new event
func (c Proto) DecodeWith(data []byte, opts ...event.Option) (*event.Event, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return nil, decodeError(err)
	}
	ev, err := fromStruct(&s, opts...)
	if err != nil {
		return nil, decodeError(err)
	}
	return ev, nil
}

func fromStruct(s *structpb.Struct, opts ...event.Option) (*event.Event, error) {
	fields := s.GetFields()

	t, err := event.ParseType(fields["type"].GetStringValue())
	if err != nil {
		return nil, err
	}
	r := event.Record{
		Type:     t,
		Subclass: fields["subclass"].GetStringValue(),
		Priority: event.PriorityNormal,
		Flags:    event.Flags(fields["flags"].GetNumberValue()),
	}
	if p := fields["priority"].GetStringValue(); p != "" {
		if r.Priority, err = event.ParsePriority(p); err != nil {
			return nil, err
		}
	}

	for i, v := range fields["headers"].GetListValue().GetValues() {
		hf := v.GetStructValue().GetFields()
		if hf == nil {
			return nil, fmt.Errorf("header %d is not an object", i)
		}
		h := event.HeaderRecord{Name: hf["name"].GetStringValue()}
		if list := hf["values"].GetListValue(); list != nil {
			h.Array = true
			h.Values = make([]string, 0, len(list.GetValues()))
			for _, item := range list.GetValues() {
				h.Values = append(h.Values, item.GetStringValue())
			}
		} else {
			h.Value = hf["value"].GetStringValue()
		}
		r.Headers = append(r.Headers, h)
	}

	if body, ok := fields["body"]; ok {
		if _, isString := body.GetKind().(*structpb.Value_StringValue); !isString {
			return nil, errors.New("body is not a string")
		}
		r.Body, err = base64.StdEncoding.DecodeString(body.GetStringValue())
		if err != nil {
			return nil, fmt.Errorf("body: %w", err)
		}
		r.HasBody = true
	}
	return event.FromRecord(r, opts...)
}

// ContentType returns the MIME type for Protocol Buffers
func (c Proto) ContentType() string {
	return "application/x-protobuf"
}

// Name returns the codec identifier
func (c Proto) Name() string {
	return "proto"
}

// Compile-time checks
var (
	_ Codec         = Proto{}
	_ OptionDecoder = Proto{}
)
