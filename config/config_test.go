package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "switchevent.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("no file gives defaults", func(t *testing.T) {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if diff := cmp.Diff(Default(), cfg); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeFile(t, `
codec: json
escape: false
unique_headers: true
pool:
  enabled: true
  events: 16
log:
  level: debug
  format: json
`)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		want := Config{
			Codec:         "json",
			Escape:        false,
			UniqueHeaders: true,
			Pool:          Pool{Enabled: true, Headers: 4096, Events: 16},
			Log:           Log{Level: "debug", Format: "json"},
		}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeFile(t, "codec: json\nlog:\n  level: warn\n")
		t.Setenv("SWITCHEVENT_CODEC", "msgpack+zstd")
		t.Setenv("SWITCHEVENT_POOL_ENABLED", "true")
		t.Setenv("SWITCHEVENT_POOL_HEADERS", "32")
		t.Setenv("SWITCHEVENT_LOG_FORMAT", "json")

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Codec != "msgpack+zstd" {
			t.Errorf("expected env codec, got %q", cfg.Codec)
		}
		if !cfg.Pool.Enabled || cfg.Pool.Headers != 32 || cfg.Pool.Events != 256 {
			t.Errorf("unexpected pool %+v", cfg.Pool)
		}
		if cfg.Log.Level != "warn" || cfg.Log.Format != "json" {
			t.Errorf("unexpected log %+v", cfg.Log)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected fs.ErrNotExist, got %v", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		if _, err := Load(writeFile(t, "codec: [unterminated")); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("SWITCHEVENT_POOL_EVENTS", "many")
		if _, err := Load(""); err == nil {
			t.Error("expected env parse error")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty codec", func(c *Config) { c.Codec = "" }},
		{"zero pool capacity", func(c *Config) { c.Pool = Pool{Enabled: true, Headers: 0, Events: 1} }},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}

	t.Run("disabled pool ignores capacities", func(t *testing.T) {
		cfg := Default()
		cfg.Pool = Pool{}
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error %v", err)
		}
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	Log{Level: "warn", Format: "json"}.Logger(&buf).Info("hidden")
	Log{Level: "warn", Format: "json"}.Logger(&buf).Warn("shown", "k", "v")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be filtered: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"k":"v"`) {
		t.Errorf("expected JSON warn record, got %s", out)
	}
}
