package event

import (
	"errors"
	"strings"
	"testing"
)

func TestTypeNames(t *testing.T) {
	seen := make(map[string]Type)
	for _, typ := range Types() {
		name := typ.String()
		if name == "" {
			t.Errorf("type %d has no name", int(typ))
		}
		if prev, ok := seen[name]; ok {
			t.Errorf("name %q used by %d and %d", name, int(prev), int(typ))
		}
		seen[name] = typ
	}
	if got := Types()[len(Types())-1]; got != TypeAll {
		t.Errorf("expected ALL to be last, got %s", got)
	}
	if TypeCustom.String() != "CUSTOM" || TypeClone.String() != "CLONE" || TypeAll.String() != "ALL" {
		t.Error("unexpected names for sentinel types")
	}
	if got := Type(-1).String(); !strings.HasPrefix(got, "UNKNOWN") {
		t.Errorf("expected UNKNOWN for out of range type, got %s", got)
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		name string
		want Type
	}{
		{"CUSTOM", TypeCustom},
		{"custom", TypeCustom},
		{"SWITCH_EVENT_CUSTOM", TypeCustom},
		{"abcdefghijklmCUSTOM", TypeCustom},
		{"switch_event_channel_answer", TypeChannelAnswer},
		{"ALL", TypeAll},
		{"SWITCH_EVENT_ALL", TypeAll},
		{"BACKGROUND_JOB", TypeBackgroundJob},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseType(tt.name)
			if err != nil {
				t.Fatalf("ParseType(%q) failed: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("ParseType(%q) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}

	t.Run("every registry name resolves to itself", func(t *testing.T) {
		for _, typ := range Types() {
			got, err := ParseType(typ.String())
			if err != nil || got != typ {
				t.Errorf("ParseType(%q) = %s, %v", typ.String(), got, err)
			}
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := ParseType("unknown-garbage")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if !IsUnknownType(err) {
			t.Error("expected IsUnknownType to hold")
		}
	})

	t.Run("short prefixed name does not strip", func(t *testing.T) {
		// exactly 13 characters: nothing left after the prefix
		if _, err := ParseType("SWITCH_EVENT_"); err == nil {
			t.Error("expected error")
		}
	})
}

func TestPriority(t *testing.T) {
	for _, p := range []Priority{PriorityNormal, PriorityLow, PriorityHigh} {
		got, err := ParsePriority(strings.ToLower(p.String()))
		if err != nil || got != p {
			t.Errorf("ParsePriority(%q) = %s, %v", p.String(), got, err)
		}
	}
	if _, err := ParsePriority("urgent"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}
