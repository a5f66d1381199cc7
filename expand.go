package event

import (
	"strings"
)

// Expand substitutes ${name} references in s with header values of e.
// References may be indexed (${name[1]}) and nested (${${key}}); unknown
// headers expand to the empty string. "\$" yields a literal dollar sign and
// "$${...}" is copied through untouched for the caller's own variables.
func (e *Event) Expand(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s) && s[i+1] == '$':
			b.WriteByte('$')
			i++
		case c == '$' && strings.HasPrefix(s[i+1:], "${"):
			end := closingBrace(s, i+2)
			if end < 0 {
				b.WriteString(s[i:])
				return b.String()
			}
			b.WriteString(s[i : end+1])
			i = end
		case c == '$' && i+1 < len(s) && s[i+1] == '{':
			end := closingBrace(s, i+1)
			if end < 0 {
				b.WriteString(s[i:])
				return b.String()
			}
			name := e.Expand(s[i+2 : end])
			b.WriteString(e.Get(name))
			i = end
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// closingBrace returns the index of the brace closing the one at open.
func closingBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
