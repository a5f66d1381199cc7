package codec

import "strings"

// urlUnsafe lists the printable bytes URLEncode escapes. Clients of the
// native format decode with the same table, so it must not change.
const urlUnsafe = "\r\n \"#%&+:;<=>?@[\\]^`{|}"

const upperHex = "0123456789ABCDEF"

func needsEscape(c byte) bool {
	return c < ' ' || c > '~' || strings.IndexByte(urlUnsafe, c) >= 0
}

// URLEncode percent-encodes control bytes, bytes above 0x7E and the
// characters in urlUnsafe using uppercase hex. Everything else is copied.
func URLEncode(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if needsEscape(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if needsEscape(c) {
			b.WriteByte('%')
			b.WriteByte(upperHex[c>>4])
			b.WriteByte(upperHex[c&15])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
