package grammar

import "bytes"

// Unescape unescapes s by converting each 3-byte encoded substring of the form "% HEXDIG HEXDIG" into the hex-decoded byte.
func Unescape[T ~string | ~[]byte](s T) T {
	if len(s) == 0 {
		return s
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		} else {
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

// Escape escapes s by replacing each byte matched by shouldEscape callback with the hex form "% HEXDIG HEXDIG".
// Hex digits are lower-cased. A nil callback escapes all bytes reported by [IsNSSCharReserved].
//
// Unlike URI escaping, already escaped triples are not preserved: the "%" byte is escaped as any other.
func Escape[T ~string | ~[]byte](s T, shouldEscape func(c byte) bool) T {
	if len(s) == 0 {
		return s
	}

	if shouldEscape == nil {
		shouldEscape = IsNSSCharReserved
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if shouldEscape(s[i]) {
			b.WriteByte('%')
			b.WriteByte(lowerhex[s[i]>>4])
			b.WriteByte(lowerhex[s[i]&15])
		} else {
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

// NormalizeEscapes lower-cases both hex digits of every "% HEXDIG HEXDIG" triple in s
// and leaves all other bytes untouched.
func NormalizeEscapes[T ~string | ~[]byte](s T) T {
	if len(s) == 0 {
		return s
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]) {
			b.WriteByte('%')
			b.WriteByte(lowerhex[unhex(s[i+1])])
			b.WriteByte(lowerhex[unhex(s[i+2])])
			i += 2
		} else {
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

const lowerhex = "0123456789abcdef"

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

// IsAlphanumChar checks alphanum rule.
func IsAlphanumChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

var nssReservedChars = [256]bool{
	'%':  true,
	'/':  true,
	'?':  true,
	'#':  true,
	'<':  true,
	'>':  true,
	'"':  true,
	'&':  true,
	'\\': true,
	'[':  true,
	']':  true,
	'^':  true,
	'`':  true,
	'{':  true,
	'|':  true,
	'}':  true,
	'~':  true,
}

// IsNSSCharReserved reports whether c must be escaped when raw text is turned into an NSS:
// control chars and space, DEL and non-ASCII bytes, and the delimiter set % / ? # < > " & \ [ ] ^ ` { | } ~.
func IsNSSCharReserved(c byte) bool {
	return c <= 0x20 || c >= 0x7f || nssReservedChars[c]
}
