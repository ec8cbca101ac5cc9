package utils

import "strings"

var Has = struct{}{}

type Set map[string]struct{}

func (s Set) Add(key string) {
	s[key] = Has
}

func (s Set) Has(key string) bool {
	_, in := s[key]
	return in
}

func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// AsciiLower lower cases the ASCII letters of s, as required
// for case insensitive CSS keywords.
func AsciiLower(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// AsciiEqualFold compares a and b, ignoring the case of ASCII letters.
func AsciiEqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return AsciiLower(a) == AsciiLower(b)
}
