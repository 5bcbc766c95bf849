package urn

import (
	"fmt"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/urn/internal/errorutil"
	"github.com/ghettovoice/urn/internal/grammar"
	"github.com/ghettovoice/urn/internal/util"
)

// NID is a namespace identifier.
//
// The original letter case is kept for rendering, comparison is case-insensitive.
// The zero value is not a valid NID; use [ParseNID] to build one.
type NID struct {
	val string
}

// ParseNID validates s and returns it as a namespace identifier.
func ParseNID[T ~string | ~[]byte](s T) (NID, error) {
	if _, err := grammar.ParseNID(s); err != nil {
		return NID{}, errtrace.Wrap(errorutil.NewPrefixedError(ErrInvalidFormat, err, "NID %q", string(s)))
	}
	return NID{string(s)}, nil
}

// String returns the NID in its original case.
func (n NID) String() string { return n.val }

// Canonical returns the lower-cased NID, suitable as a map key.
func (n NID) Canonical() string { return util.LCase(n.val) }

// IsZero reports whether n is the zero value.
func (n NID) IsZero() bool { return n.val == "" }

// IsValid reports whether n is a syntactically valid NID.
func (n NID) IsValid() bool { return grammar.IsNID(n.val) }

// Equal compares the NID with another NID case-insensitively.
func (n NID) Equal(val any) bool {
	var other NID
	switch v := val.(type) {
	case NID:
		other = v
	case *NID:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return util.EqFold(n.val, other.val)
}

// Format implements fmt.Formatter.
func (n NID) Format(f fmt.State, verb rune) {
	switch verb {
	case 's', 'v':
		fmt.Fprint(f, n.val)
	case 'q':
		fmt.Fprint(f, strconv.Quote(n.val))
	default:
		fmt.Fprintf(f, fmt.FormatString(f, verb), n.val)
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (n NID) MarshalText() ([]byte, error) {
	return []byte(n.val), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (n *NID) UnmarshalText(text []byte) error {
	n1, err := ParseNID(text)
	if err != nil {
		*n = NID{}
		return errtrace.Wrap(err)
	}
	*n = n1
	return nil
}
