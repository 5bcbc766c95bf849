package urn

//go:generate go tool errtrace -w .

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/urn/internal/errorutil"
	"github.com/ghettovoice/urn/internal/grammar"
	"github.com/ghettovoice/urn/internal/ioutil"
	"github.com/ghettovoice/urn/internal/util"
)

// Scheme is the URN scheme literal.
const Scheme = grammar.Scheme

// URN is a parsed Uniform Resource Name.
//
// A URN is immutable, use [Builder] to derive a modified copy.
type URN struct {
	nid  NID
	nss  NSS
	res  Params
	qry  Params
	frag string
	rqf  string
}

// Parse parses a URN from the given input src (string or []byte).
// The NSS is expected to be percent-escaped, see [ParseWithMode].
func Parse[T ~string | ~[]byte](src T) (*URN, error) {
	return errtrace.Wrap2(ParseWithMode(src, Escaped))
}

// ParseWithMode parses a URN from the given input src (string or []byte)
// interpreting the NSS according to mode.
func ParseWithMode[T ~string | ~[]byte](src T, mode Mode) (*URN, error) {
	s := string(src)
	if s == "" {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidFormat, grammar.ErrEmptyInput))
	}

	scheme, tail, ok := strings.Cut(s, ":")
	if !ok || scheme != Scheme {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidFormat, "scheme %q, want %q", scheme, Scheme))
	}
	nid, tail, ok := strings.Cut(tail, ":")
	if !ok {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidFormat, "missing NSS in %q", s))
	}

	ss, err := splitSections(tail)
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidFormat, err))
	}
	return errtrace.Wrap2(build(nid, ss, tail[len(ss.nss()):], mode))
}

// MustParse is like [Parse] but panics on error.
func MustParse[T ~string | ~[]byte](src T) *URN {
	u, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return u
}

// New builds a URN from its parts.
//
// The rqf is the raw RQF suffix, it must be empty or start with "?+", "?=" or "#".
// In [Escaped] mode the nss must not contain RQF delimiters, in [Unescaped] mode they are escaped.
//
// The parts are validated one by one rather than joined and parsed, so New("isbn", "123?+a", "", Escaped)
// fails while Parse("urn:isbn:123?+a") succeeds with "a" taken as the resolution.
func New(nid, nss, rqf string, mode Mode) (*URN, error) {
	ss, err := splitSections(rqf)
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidFormat, err))
	}
	if ss.nss() != "" {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidFormat,
			"RQF %q must start with %q, %q or %q", rqf, resolutionDelim, queryDelim, fragmentDelim))
	}
	ss[sectionNSS] = nss
	return errtrace.Wrap2(build(nid, ss, rqf, mode))
}

func build(nidText string, ss sections, rqf string, mode Mode) (*URN, error) {
	nid, err := ParseNID(nidText)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	nss, err := parseNSS(ss.nss(), mode)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	res, err := parseParams(ss.resolution())
	if err != nil {
		return nil, errtrace.Wrap(formatErr(err, "resolution %q", ss.resolution()))
	}
	qry, err := parseParams(ss.query())
	if err != nil {
		return nil, errtrace.Wrap(formatErr(err, "query %q", ss.query()))
	}
	return &URN{
		nid:  nid,
		nss:  nss,
		res:  res,
		qry:  qry,
		frag: ss.fragment(),
		rqf:  rqf,
	}, nil
}

// parseNSS is [ParseNSS] that also rejects escaped text which would be split as RQF.
func parseNSS(s string, mode Mode) (NSS, error) {
	if mode == Escaped && hasDelim(s) {
		return NSS{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidFormat, "NSS %q contains RQF delimiter", s))
	}
	return errtrace.Wrap2(ParseNSS(s, mode))
}

func formatErr(err error, format string, args ...any) error {
	if errors.Is(err, ErrInvalidFormat) {
		return err //errtrace:skip
	}
	return errorutil.NewPrefixedError(ErrInvalidFormat, err, format, args...) //errtrace:skip
}

// TryParse is like [ParseWithMode] but reports failure with the boolean flag instead of an error.
func TryParse(s string, mode Mode) (*URN, bool) {
	u, err := ParseWithMode(s, mode)
	if err != nil {
		return nil, false
	}
	return u, true
}

// IsWellFormed reports whether s is a valid URN in the given mode.
func IsWellFormed(s string, mode Mode) bool {
	_, ok := TryParse(s, mode)
	return ok
}

// NID returns the namespace identifier.
func (u *URN) NID() NID {
	if u == nil {
		return NID{}
	}
	return u.nid
}

// NSS returns the namespace specific string.
func (u *URN) NSS() NSS {
	if u == nil {
		return NSS{}
	}
	return u.nss
}

// Resolution returns a copy of the r-component parameters.
func (u *URN) Resolution() Params {
	if u == nil {
		return nil
	}
	return u.res.Clone()
}

// Query returns a copy of the q-component parameters.
func (u *URN) Query() Params {
	if u == nil {
		return nil
	}
	return u.qry.Clone()
}

// Fragment returns the f-component.
func (u *URN) Fragment() string {
	if u == nil {
		return ""
	}
	return u.frag
}

// RQF returns the RQF suffix the URN was built from, as is.
func (u *URN) RQF() string {
	if u == nil {
		return ""
	}
	return u.rqf
}

// Segments returns the scheme, NID, escaped NSS, rendered resolution, rendered query and fragment.
// Delimiters are not included.
func (u *URN) Segments() [6]string {
	if u == nil {
		return [6]string{}
	}
	return [6]string{Scheme, u.nid.String(), u.nss.Escaped(), u.res.String(), u.qry.String(), u.frag}
}

// OriginalString returns the URN assembled from the original NID, NSS and RQF texts.
func (u *URN) OriginalString() string {
	if u == nil {
		return ""
	}
	return Scheme + ":" + u.nid.String() + ":" + u.nss.Raw() + u.rqf
}

// Components renders only the selected components.
// The output order is always scheme, NID, NSS, resolution, query, fragment.
func (u *URN) Components(which Components, mode Mode) string {
	if which == 0 {
		return ""
	}
	return u.Render(&RenderOptions{Components: which, Mode: mode})
}

// RenderOptions controls the URN rendering.
type RenderOptions struct {
	// Components selects components to render, zero means all.
	Components Components `json:"components,omitempty"`
	// Mode selects the NSS form.
	Mode Mode `json:"mode,omitempty"`
}

// RenderTo writes the URN to the provided writer.
// Resolution and query are rendered only when not empty, fragment only when not blank.
func (u *URN) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if u == nil {
		return 0, nil
	}

	which, mode := ComponentAll, Escaped
	if opts != nil {
		if opts.Components != 0 {
			which = opts.Components
		}
		mode = opts.Mode
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	var head bool
	for _, c := range [...]struct {
		comp Components
		val  string
	}{
		{ComponentScheme, Scheme},
		{ComponentNID, u.nid.String()},
		{ComponentNSS, u.nssForm(mode)},
	} {
		if !which.Has(c.comp) {
			continue
		}
		cw.WriteStringIf(head, ":").WriteString(c.val)
		head = true
	}
	if which.Has(ComponentResolution) && len(u.res) > 0 {
		cw.WriteString(resolutionDelim).Call(u.res.RenderTo)
	}
	if which.Has(ComponentQuery) && len(u.qry) > 0 {
		cw.WriteString(queryDelim).Call(u.qry.RenderTo)
	}
	cw.WriteStringIf(which.Has(ComponentFragment) && !util.IsBlank(u.frag), fragmentDelim, u.frag)
	return errtrace.Wrap2(cw.Result())
}

func (u *URN) nssForm(mode Mode) string {
	if mode == Unescaped {
		return u.nss.Unescaped()
	}
	return u.nss.Escaped()
}

// renderRQF returns the canonical RQF suffix.
func (u *URN) renderRQF() string {
	return u.Components(ComponentResolution|ComponentQuery|ComponentFragment, Escaped)
}

// Render returns the string representation of the URN.
func (u *URN) Render(opts *RenderOptions) string {
	if u == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the canonical string representation of the URN.
func (u *URN) String() string {
	if u == nil {
		return ""
	}
	return u.Render(nil)
}

// Format implements fmt.Formatter for custom formatting of the URN.
func (u *URN) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			u.RenderTo(f, nil) //nolint:errcheck
			return
		}
		fmt.Fprint(f, u.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	default:
		type hideMethods URN
		type URN hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*URN)(u))
		return
	}
}

// Equal compares this URN with another for equivalence according to RFC 8141 Section 3.
// Only NID and NSS take part in the comparison, RQF components are ignored.
func (u *URN) Equal(val any) bool {
	var other *URN
	switch v := val.(type) {
	case URN:
		other = &v
	case *URN:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}

	return u.nid.Equal(other.nid) && u.nss.Equal(other.nss)
}

// Key returns a string that is equal for equivalent URNs, suitable as a map key.
func (u *URN) Key() string {
	if u == nil {
		return ""
	}
	return Scheme + ":" + u.nid.Canonical() + ":" + u.nss.Canonical()
}

// Clone returns a deep copy of the URN.
func (u *URN) Clone() *URN {
	if u == nil {
		return nil
	}
	u2 := *u
	u2.res = u.res.Clone()
	u2.qry = u.qry.Clone()
	return &u2
}

// IsValid checks whether the URN is syntactically valid.
func (u *URN) IsValid() bool {
	return u != nil && u.nid.IsValid() && u.nss.IsValid()
}

// MarshalText implements [encoding.TextMarshaler].
func (u *URN) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *URN) UnmarshalText(text []byte) error {
	u1, err := Parse(text)
	if err != nil {
		*u = URN{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}
