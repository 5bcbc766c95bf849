package grammar

import (
	"strings"

	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/urn/internal/errorutil"
)

const (
	ErrEmptyInput     Error = "empty input"
	ErrMalformedInput Error = "malformed input"
	ErrReservedInput  Error = "reserved input"
)

func newMalformedInputErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedInput, args...) //errtrace:skip
}

// ParseNID parses the namespace identifier from s and returns the matched ABNF node.
func ParseNID[T ~string | ~[]byte](s T) (*abnf.Node, error) {
	if len(s) == 0 {
		return nil, errtrace.Wrap(ErrEmptyInput)
	}
	if strings.EqualFold(string(s), Scheme) {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrReservedInput, "%q is reserved", string(s)))
	}
	if il := len(s); il < MinNIDLen || il > MaxNIDLen {
		return nil, errtrace.Wrap(newMalformedInputErr("length %d is out of range [%d, %d]", il, MinNIDLen, MaxNIDLen))
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := NID([]byte(s), ns); err != nil {
		return nil, errtrace.Wrap(newMalformedInputErr(err))
	}

	n := ns.Best()
	if nl, il := n.Len(), len(s); nl < il {
		return nil, errtrace.Wrap(newMalformedInputErr("node length %d < input length %d", nl, il))
	}
	return n, nil
}

// ParseNSS parses the percent-escaped namespace specific string from s and returns the matched ABNF node.
func ParseNSS[T ~string | ~[]byte](s T) (*abnf.Node, error) {
	if len(s) == 0 {
		return nil, errtrace.Wrap(ErrEmptyInput)
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := NSS([]byte(s), ns); err != nil {
		return nil, errtrace.Wrap(newMalformedInputErr(err))
	}

	n := ns.Best()
	if nl, il := n.Len(), len(s); nl < il {
		return nil, errtrace.Wrap(newMalformedInputErr("unexpected %q at position %d", s[nl], nl))
	}
	return n, nil
}
