package codec

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

var (
	mu     sync.RWMutex
	byType = map[string]Codec{}
	byName = map[string]Codec{}
	logger = slog.Default()
)

func init() {
	for _, c := range []Codec{Plain{Escape: true}, JSON{}, MsgPack{}, CBOR{}, Proto{}} {
		register(c)
	}
}

// SetLogger sets the logger used by the registry. Default is slog.Default().
func SetLogger(l *slog.Logger) {
	if l == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// Register adds a codec to the global registry.
// Codecs are looked up by their ContentType() and Name(); a later
// registration replaces an earlier one.
func Register(c Codec) {
	mu.Lock()
	defer mu.Unlock()
	register(c)
	logger.Debug("registered codec", "name", c.Name(), "content_type", c.ContentType())
}

func register(c Codec) {
	byType[c.ContentType()] = c
	byName[c.Name()] = c
}

// Get retrieves a codec by content type from the global registry.
// Returns the codec and true if found, or nil and false if not found.
func Get(contentType string) (Codec, bool) {
	mu.RLock()
	defer mu.RUnlock()
	c, ok := byType[contentType]
	return c, ok
}

// Lookup retrieves a codec by its short name ("plain", "json", ...).
// A "+zstd" or "+lz4" suffix wraps the named codec in compression,
// e.g. "msgpack+zstd".
func Lookup(name string) (Codec, error) {
	if inner, ok := strings.CutSuffix(name, "+zstd"); ok {
		c, err := Lookup(inner)
		if err != nil {
			return nil, err
		}
		return Zstd{Inner: c}, nil
	}
	if inner, ok := strings.CutSuffix(name, "+lz4"); ok {
		c, err := Lookup(inner)
		if err != nil {
			return nil, err
		}
		return LZ4{Inner: c}, nil
	}

	mu.RLock()
	defer mu.RUnlock()
	if c, ok := byName[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown codec %q (have %v)", name, names())
}

// MustGet retrieves a codec by content type, returning the default codec
// if the requested content type is not found.
func MustGet(contentType string) Codec {
	if c, ok := Get(contentType); ok {
		return c
	}
	return Default()
}

// Names returns the registered codec names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	return names()
}

func names() []string {
	out := make([]string, 0, len(byName))
	for n := range byName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
