package urn

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/urn/internal/errorutil"
	"github.com/ghettovoice/urn/internal/util"
)

// Builder derives URNs by replacing their parts.
//
// Every setter validates the new part with the same rules [Parse] applies
// and leaves the builder unchanged on error.
// A Builder is not safe for concurrent use.
type Builder struct {
	u URN
}

// NewBuilder returns a builder initialized with a copy of u.
// With a nil u the builder starts empty and produces an invalid URN until NID and NSS are set.
func NewBuilder(u *URN) *Builder {
	b := new(Builder)
	if u != nil {
		b.u = *u.Clone()
	}
	return b
}

// SetNID replaces the namespace identifier.
func (b *Builder) SetNID(nid string) error {
	n, err := ParseNID(nid)
	if err != nil {
		return errtrace.Wrap(err)
	}
	b.u.nid = n
	return nil
}

// SetNSS replaces the namespace specific string.
func (b *Builder) SetNSS(nss string, mode Mode) error {
	n, err := parseNSS(nss, mode)
	if err != nil {
		return errtrace.Wrap(err)
	}
	b.u.nss = n
	return nil
}

// SetFragment replaces the f-component. An empty fragment removes it.
func (b *Builder) SetFragment(frag string) {
	b.u.frag = frag
	b.syncRQF()
}

// AddResolution appends a resolution parameter.
// It fails with [ErrDuplicateKey] if the key is already present.
func (b *Builder) AddResolution(key, value string) error {
	pair := key
	if !util.IsBlank(value) {
		pair += "=" + value
	}
	if strings.Contains(pair, queryDelim) {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidFormat,
			"resolution parameter %q renders %q", pair, queryDelim))
	}
	ps, err := b.u.res.Add(key, value)
	if err != nil {
		return errtrace.Wrap(err)
	}
	b.u.res = ps
	b.syncRQF()
	return nil
}

// AddQuery appends a query parameter.
// It fails with [ErrDuplicateKey] if the key is already present.
func (b *Builder) AddQuery(key, value string) error {
	ps, err := b.u.qry.Add(key, value)
	if err != nil {
		return errtrace.Wrap(err)
	}
	b.u.qry = ps
	b.syncRQF()
	return nil
}

// RemoveResolution removes a resolution parameter, absent keys are ignored.
func (b *Builder) RemoveResolution(key string) {
	b.u.res = b.u.res.Del(key)
	b.syncRQF()
}

// RemoveQuery removes a query parameter, absent keys are ignored.
func (b *Builder) RemoveQuery(key string) {
	b.u.qry = b.u.qry.Del(key)
	b.syncRQF()
}

func (b *Builder) syncRQF() { b.u.rqf = b.u.renderRQF() }

// URN returns the built URN.
func (b *Builder) URN() *URN { return b.u.Clone() }

// String returns the canonical string of the built URN.
func (b *Builder) String() string { return b.u.String() }
