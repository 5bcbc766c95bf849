package urn

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/urn/internal/errorutil"
	"github.com/ghettovoice/urn/internal/grammar"
	"github.com/ghettovoice/urn/internal/util"
)

// NSS is a namespace specific string.
//
// It keeps both forms of the string: the canonical percent-escaped form used for rendering and
// comparison, and the decoded form. Hex digits of percent-encoded triples are always lower-cased
// in the escaped form.
type NSS struct {
	raw   string
	esc   string
	unesc string
}

// ParseNSS builds an NSS from s.
//
// In [Escaped] mode s must match the NSS grammar, the canonical form is derived from s by
// lower-casing the hex digits of percent-encoded triples.
// In [Unescaped] mode s is taken as decoded text: every reserved byte is percent-encoded
// and a NUL byte is rejected.
func ParseNSS[T ~string | ~[]byte](s T, mode Mode) (NSS, error) {
	raw := string(s)
	switch mode {
	case Escaped:
		if _, err := grammar.ParseNSS(raw); err != nil {
			if !errors.Is(err, grammar.ErrEmptyInput) {
				err = errorutil.NewWrapperError(ErrRequiresEscaping, err)
			}
			return NSS{}, errtrace.Wrap(errorutil.NewPrefixedError(ErrInvalidFormat, err, "NSS %q", raw))
		}
		esc := grammar.NormalizeEscapes(raw)
		return NSS{raw: raw, esc: esc, unesc: grammar.Unescape(esc)}, nil
	case Unescaped:
		if raw == "" {
			return NSS{}, errtrace.Wrap(errorutil.NewPrefixedError(ErrInvalidFormat, grammar.ErrEmptyInput, "NSS %q", raw))
		}
		if i := strings.IndexByte(raw, 0); i >= 0 {
			return NSS{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidFormat, "NSS %q: NUL byte at position %d", raw, i))
		}
		return NSS{raw: raw, esc: grammar.Escape(raw, nil), unesc: raw}, nil
	default:
		return NSS{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidFormat, "NSS %q: unknown mode %d", raw, uint8(mode)))
	}
}

// String returns the canonical escaped form.
func (n NSS) String() string { return n.esc }

// Escaped returns the canonical escaped form.
func (n NSS) Escaped() string { return n.esc }

// Unescaped returns the decoded form.
func (n NSS) Unescaped() string { return n.unesc }

// Raw returns the text the NSS was built from.
func (n NSS) Raw() string { return n.raw }

// Canonical returns the lower-cased escaped form, suitable as a map key.
func (n NSS) Canonical() string { return util.LCase(n.esc) }

// IsZero reports whether n is the zero value.
func (n NSS) IsZero() bool { return n.esc == "" }

// IsValid reports whether the escaped form of n is syntactically valid.
func (n NSS) IsValid() bool { return grammar.IsNSS(n.esc) }

// Equal compares escaped forms of two NSS case-insensitively.
func (n NSS) Equal(val any) bool {
	var other NSS
	switch v := val.(type) {
	case NSS:
		other = v
	case *NSS:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return util.EqFold(n.esc, other.esc)
}

// Format implements fmt.Formatter.
// The '+' flag with verb 's' prints the unescaped form.
func (n NSS) Format(f fmt.State, verb rune) {
	switch verb {
	case 's', 'v':
		if f.Flag('+') {
			fmt.Fprint(f, n.unesc)
			return
		}
		fmt.Fprint(f, n.esc)
	case 'q':
		fmt.Fprint(f, strconv.Quote(n.esc))
	default:
		fmt.Fprintf(f, fmt.FormatString(f, verb), n.esc)
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (n NSS) MarshalText() ([]byte, error) {
	return []byte(n.esc), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
// The text is expected in the escaped form.
func (n *NSS) UnmarshalText(text []byte) error {
	n1, err := ParseNSS(text, Escaped)
	if err != nil {
		*n = NSS{}
		return errtrace.Wrap(err)
	}
	*n = n1
	return nil
}
