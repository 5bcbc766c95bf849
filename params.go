package urn

import (
	"io"
	"iter"
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/urn/internal/errorutil"
	"github.com/ghettovoice/urn/internal/ioutil"
	"github.com/ghettovoice/urn/internal/util"
)

// Param is a single key-value pair of the resolution or query component.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of resolution or query parameters with unique keys.
// Keys are case-sensitive. The order of the list is the rendering order.
//
// Add and Del may reuse the underlying array, use [Params.Clone] to detach the list.
type Params []Param

func (ps Params) index(key string) int {
	return slices.IndexFunc(ps, func(p Param) bool { return p.Key == key })
}

// Get returns the value associated with the key.
func (ps Params) Get(key string) (string, bool) {
	if i := ps.index(key); i >= 0 {
		return ps[i].Value, true
	}
	return "", false
}

// Has checks whether the key is in the list.
func (ps Params) Has(key string) bool { return ps.index(key) >= 0 }

// Keys returns keys in insertion order.
func (ps Params) Keys() []string {
	keys := make([]string, len(ps))
	for i, p := range ps {
		keys[i] = p.Key
	}
	return keys
}

// All returns an iterator over key-value pairs in insertion order.
func (ps Params) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, p := range ps {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Add appends the key-value pair to the end of the list.
// It fails with [ErrDuplicateKey] if the key is already in the list
// and with [ErrInvalidFormat] if the pair cannot be rendered unambiguously.
func (ps Params) Add(key, value string) (Params, error) {
	switch {
	case key == "":
		return ps, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidFormat, "empty parameter key"))
	case strings.ContainsAny(key, "&=#"):
		return ps, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidFormat, "parameter key %q contains a delimiter", key))
	case strings.ContainsAny(value, "&#"):
		return ps, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidFormat, "parameter %q value %q contains a delimiter", key, value))
	case ps.Has(key):
		return ps, errtrace.Wrap(errorutil.NewWrapperError(ErrDuplicateKey, "%q", key))
	}
	return append(ps, Param{key, value}), nil
}

// Del removes the key from the list. It is a no-op if the key is absent.
func (ps Params) Del(key string) Params {
	if i := ps.index(key); i >= 0 {
		return slices.Delete(ps, i, i+1)
	}
	return ps
}

// Clone returns a copy of the list.
func (ps Params) Clone() Params {
	if ps == nil {
		return nil
	}
	return slices.Clone(ps)
}

// Equal reports whether both lists hold the same pairs in the same order.
func (ps Params) Equal(val any) bool {
	var other Params
	switch v := val.(type) {
	case Params:
		other = v
	case []Param:
		other = v
	default:
		return false
	}
	return slices.Equal(ps, other)
}

// RenderTo writes pairs joined by "&", each as "key" or "key=value" when the value is not blank.
func (ps Params) RenderTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for i, p := range ps {
		cw.WriteStringIf(i > 0, "&").
			WriteString(p.Key).
			WriteStringIf(!util.IsBlank(p.Value), "=", p.Value)
	}
	return errtrace.Wrap2(cw.Result())
}

// String returns the rendered list.
func (ps Params) String() string {
	if len(ps) == 0 {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	ps.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// parseParams splits "&"-separated "key[=value]" pairs, empty segments are skipped.
func parseParams(s string) (Params, error) {
	if s == "" {
		return nil, nil
	}

	var (
		ps  Params
		err error
	)
	for seg := range strings.SplitSeq(s, "&") {
		if seg == "" {
			continue
		}
		k, v, _ := strings.Cut(seg, "=")
		if ps, err = ps.Add(k, v); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	return ps, nil
}
