package grammar

import (
	"bytes"

	"github.com/ghettovoice/httpuri/internal/constraints"
)

// Unescape unescapes s by converting each 3-byte encoded substring of the form "% HEXDIG HEXDIG" into the hex-decoded byte.
func Unescape[T constraints.Byteseq](s T) T {
	if len(s) == 0 {
		return s
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if IsPctEncoded(s, i) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		} else {
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

// Escape escapes s by replacing each char matched by shouldEscape callback to the hex form "% HEXDIG HEXDIG".
// Valid "% HEXDIG HEXDIG" triplets are copied as is, so Escape(Escape(s)) == Escape(s).
func Escape[T constraints.Byteseq](s T, shouldEscape func(c byte) bool) T {
	if len(s) == 0 {
		return s
	}

	if shouldEscape == nil {
		shouldEscape = func(c byte) bool { return !IsUnreservedChar(c) }
	}

	// fast path, nothing to escape
	clean := true
	for i := 0; i < len(s); i++ {
		if IsPctEncoded(s, i) {
			i += 2
			continue
		}
		if s[i] == '%' || shouldEscape(s[i]) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b bytes.Buffer
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		switch {
		case IsPctEncoded(s, i):
			b.WriteByte(s[i])
			b.WriteByte(s[i+1])
			b.WriteByte(s[i+2])
			i += 2
		case s[i] == '%' || shouldEscape(s[i]):
			b.WriteByte('%')
			b.WriteByte(upperhex[s[i]>>4])
			b.WriteByte(upperhex[s[i]&15])
		default:
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

// EscapePercent encodes every '%' of s that does not start a "% HEXDIG HEXDIG" triplet as "%25".
// Nothing else is changed.
func EscapePercent[T constraints.Byteseq](s T) T {
	return Escape(s, func(byte) bool { return false })
}

// IsPctEncoded reports whether s holds a "% HEXDIG HEXDIG" triplet at position i.
func IsPctEncoded[T constraints.Byteseq](s T, i int) bool {
	return i+2 < len(s) && s[i] == '%' && ishex(s[i+1]) && ishex(s[i+2])
}

const upperhex = "0123456789ABCDEF"

func ishex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
