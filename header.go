package event

import (
	"strings"
)

const (
	// ArrayPrefix marks a scalar rendering of an array-valued header.
	ArrayPrefix = "ARRAY::"

	// ArraySeparator joins array elements in the scalar rendering.
	ArraySeparator = "|:"

	// MaxHeaderIndex is the largest index accepted by "name[N]" additions.
	MaxHeaderIndex = 4000
)

// Header is a named Event attribute holding either a single string or an
// ordered list of strings. When array is non-nil it is authoritative and
// the scalar form is rendered on demand.
type Header struct {
	name  string
	value string
	array []string
	hash  uint32
}

// hashName is the case-insensitive times-33 hash cached on every header.
// A zero hash is treated as "not computed" by lookups.
func hashName(name string) uint32 {
	var h uint32
	for i := 0; i < len(name); i++ {
		h = h*33 + uint32(lower(name[i]))
	}
	return h
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// equalFold is an ASCII-only case-insensitive comparison, consistent with hashName.
func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if lower(a[i]) != lower(b[i]) {
			return false
		}
	}
	return true
}

// matches reports whether the header is named name. The cached hash only
// short-circuits mismatches; the string comparison decides.
func (h *Header) matches(name string, hash uint32) bool {
	if h.hash != 0 && hash != 0 && h.hash != hash {
		return false
	}
	return equalFold(h.name, name)
}

// Name returns the header name as it was first added.
func (h *Header) Name() string { return h.name }

// Hash returns the cached case-insensitive hash of the name.
func (h *Header) Hash() uint32 { return h.hash }

// IsArray reports whether the header is array-valued.
func (h *Header) IsArray() bool { return h.array != nil }

// Len returns the number of array elements, or 0 for a scalar header.
func (h *Header) Len() int { return len(h.array) }

// Value returns the scalar form of the header. Array headers render as
// "ARRAY::a|:b", or the bare element when there is only one.
func (h *Header) Value() string {
	if h.array == nil {
		return h.value
	}
	return renderArray(h.array)
}

// Values returns a copy of the array elements, or nil for a scalar header.
func (h *Header) Values() []string {
	if h.array == nil {
		return nil
	}
	return append([]string(nil), h.array...)
}

// Index returns the i-th array element.
func (h *Header) Index(i int) (string, bool) {
	if i < 0 || i >= len(h.array) {
		return "", false
	}
	return h.array[i], true
}

func renderArray(array []string) string {
	switch len(array) {
	case 0:
		return ""
	case 1:
		return array[0]
	}
	return ArrayPrefix + strings.Join(array, ArraySeparator)
}

// toArray moves a scalar value into slot 0 so the header becomes array-valued.
func (h *Header) toArray() {
	if h.array != nil {
		return
	}
	h.array = []string{h.value}
	h.value = ""
}

func (h *Header) push(v string) {
	h.toArray()
	h.array = append(h.array, v)
}

func (h *Header) unshift(v string) {
	h.toArray()
	h.array = append(h.array, "")
	copy(h.array[1:], h.array)
	h.array[0] = v
}

// set grows the array to i+1 elements, padding with empty strings, and
// overwrites slot i.
func (h *Header) set(i int, v string) {
	if h.array == nil {
		if h.value != "" {
			h.toArray()
		} else {
			h.array = []string{}
		}
	}
	for len(h.array) <= i {
		h.array = append(h.array, "")
	}
	h.array[i] = v
}

func (h *Header) clone() *Header {
	c := &Header{name: h.name, value: h.value, hash: h.hash}
	if h.array != nil {
		c.array = append([]string(nil), h.array...)
	}
	return c
}

func (h *Header) reset() {
	*h = Header{}
}

// splitIndex parses "name[N]" into its base name and index. ok is false when
// name has no bracket. The index follows atoi rules: leading digits with an
// optional sign, anything else reads as 0.
func splitIndex(name string) (base string, index int, ok bool) {
	i := strings.IndexByte(name, '[')
	if i < 0 {
		return name, 0, false
	}
	return name[:i], atoi(name[i+1:]), true
}

func atoi(s string) int {
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n := 0
	for i := 0; i < len(s) && '0' <= s[i] && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n > MaxHeaderIndex*10 {
			break
		}
	}
	if neg {
		return -n
	}
	return n
}
