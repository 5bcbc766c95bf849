package urn

import (
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/urn/internal/errorutil"
	"github.com/ghettovoice/urn/internal/util"
)

// Mode tells how NSS input text is interpreted.
type Mode uint8

const (
	// Escaped treats the input as already percent-encoded text that must match the NSS grammar.
	Escaped Mode = iota
	// Unescaped treats the input as raw text, reserved characters are percent-encoded.
	Unescaped
)

func (m Mode) String() string {
	switch m {
	case Escaped:
		return "escaped"
	case Unescaped:
		return "unescaped"
	default:
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// IsValid reports whether m is a known mode.
func (m Mode) IsValid() bool { return m == Escaped || m == Unescaped }

// MarshalText implements [encoding.TextMarshaler].
func (m Mode) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidFormat, "unknown mode %d", uint8(m)))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (m *Mode) UnmarshalText(text []byte) error {
	switch s := string(text); {
	case util.EqFold(s, "escaped"):
		*m = Escaped
	case util.EqFold(s, "unescaped"):
		*m = Unescaped
	default:
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidFormat, "unknown mode %q", s))
	}
	return nil
}
