package main

import (
	"bytes"
	"strings"
	"testing"

	event "github.com/rbaliyan/switchevent"
	"github.com/rbaliyan/switchevent/transport/codec"
)

const plainInput = "Event-Name: CUSTOM\nEvent-Subclass: my%3A%3Asub\nCaller: Jane%20Doe\n\n" +
	"Event-Name: HEARTBEAT\nContent-Length: 5\n\nhello"

func TestRunPlainToJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"--from", "plain", "--to", "json"}, strings.NewReader(plainInput), &stdout, &stderr)
	if err != nil {
		t.Fatalf("run failed: %v (stderr %s)", err, stderr.String())
	}

	want := `{"Event-Name":"CUSTOM","Event-Subclass":"my::sub","Caller":"Jane Doe"}` + "\n" +
		`{"Event-Name":"HEARTBEAT","Content-Length":"5","_body":"hello"}` + "\n"
	if stdout.String() != want {
		t.Errorf("expected\n%s\ngot\n%s", want, stdout.String())
	}
}

func TestRunFramedRoundTrip(t *testing.T) {
	var framed, stderr bytes.Buffer
	if err := run([]string{"-f", "plain", "-t", "msgpack+zstd", "--stamp"}, strings.NewReader(plainInput), &framed, &stderr); err != nil {
		t.Fatalf("encode run failed: %v", err)
	}

	r := codec.NewFrameReader(bytes.NewReader(framed.Bytes()), codec.Zstd{Inner: codec.MsgPack{}})
	first, err := r.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if first.Type() != event.TypeCustom || first.Get("Caller") != "Jane Doe" {
		t.Errorf("unexpected first event %s Caller=%q", first.Type(), first.Get("Caller"))
	}
	if first.Get(event.HeaderCoreUUID) == "" || first.Get(event.HeaderSequence) == "" {
		t.Error("expected delivery headers on stamped event")
	}

	var plain bytes.Buffer
	if err := run([]string{"-f", "msgpack+zstd", "-t", "plain"}, bytes.NewReader(framed.Bytes()), &plain, &stderr); err != nil {
		t.Fatalf("decode run failed: %v", err)
	}
	if !strings.HasSuffix(plain.String(), "Content-Length: 5\n\nhello") {
		t.Errorf("unexpected plain output %q", plain.String())
	}
}

func TestRunFramedOptions(t *testing.T) {
	var framed, stderr bytes.Buffer
	if err := run([]string{"-f", "plain", "-t", "cbor"}, strings.NewReader(plainInput), &framed, &stderr); err != nil {
		t.Fatalf("encode run failed: %v", err)
	}

	var out bytes.Buffer
	err := run([]string{"-f", "cbor", "-t", "cbor", "--unique-headers"}, bytes.NewReader(framed.Bytes()), &out, &stderr)
	if err != nil {
		t.Fatalf("convert run failed: %v", err)
	}

	r := codec.NewFrameReader(&out, codec.CBOR{})
	for i := 0; i < 2; i++ {
		ev, err := r.Read()
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if !ev.Flags().Has(event.FlagUniqueHeaders) {
			t.Errorf("expected unique header flag on %s", ev.Type())
		}
	}
}

func TestRunPooled(t *testing.T) {
	t.Setenv("SWITCHEVENT_POOL_ENABLED", "true")
	t.Setenv("SWITCHEVENT_POOL_HEADERS", "8")
	t.Setenv("SWITCHEVENT_POOL_EVENTS", "2")

	input := strings.Repeat("Event-Name: HEARTBEAT\nA: 1\n\n", 10)
	var stdout, stderr bytes.Buffer
	if err := run([]string{"--to", "plain", "--escape=false"}, strings.NewReader(input), &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if stdout.String() != input {
		t.Errorf("expected passthrough, got %q", stdout.String())
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		input string
	}{
		{"unknown output codec", []string{"--to", "yaml"}, ""},
		{"unknown input codec", []string{"--from", "xml"}, ""},
		{"malformed input", []string{"--to", "json"}, "no separator here\n\n"},
		{"bad flag", []string{"--bogus"}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if err := run(tc.args, strings.NewReader(tc.input), &stdout, &stderr); err == nil {
				t.Error("expected error")
			}
		})
	}

	t.Run("help is not an error", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		if err := run([]string{"--help"}, strings.NewReader(""), &stdout, &stderr); err != nil {
			t.Errorf("unexpected error %v", err)
		}
	})
}
