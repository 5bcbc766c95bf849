package urn

import (
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/urn/internal/errorutil"
	"github.com/ghettovoice/urn/internal/util"
)

// Components is a set of URN components selected for rendering, see [URN.Components].
type Components uint8

const (
	ComponentNID Components = 1 << iota
	ComponentNSS
	ComponentQuery
	ComponentResolution
	ComponentFragment
	ComponentScheme

	ComponentAll = ComponentScheme | ComponentNID | ComponentNSS |
		ComponentResolution | ComponentQuery | ComponentFragment
)

type componentName struct {
	comp Components
	name string
}

// componentNames lists components in rendering order.
var componentNames = [...]componentName{
	{ComponentScheme, "scheme"},
	{ComponentNID, "nid"},
	{ComponentNSS, "nss"},
	{ComponentResolution, "resolution"},
	{ComponentQuery, "query"},
	{ComponentFragment, "fragment"},
}

// Has reports whether all components of o are in c.
func (c Components) Has(o Components) bool { return o != 0 && c&o == o }

// String returns component names joined by "|" in rendering order.
func (c Components) String() string {
	if c == 0 {
		return "none"
	}
	names := make([]string, 0, len(componentNames))
	for _, cn := range componentNames {
		if c.Has(cn.comp) {
			names = append(names, cn.name)
		}
	}
	return strings.Join(names, "|")
}

// UnmarshalText parses component names separated by "|" or ",", for example "nid|nss".
// The name "all" selects every component.
func (c *Components) UnmarshalText(text []byte) error {
	var comps Components
	for name := range strings.FieldsFuncSeq(string(text), func(r rune) bool { return r == '|' || r == ',' }) {
		name = strings.TrimSpace(name)
		if util.EqFold(name, "all") {
			comps |= ComponentAll
			continue
		}
		i := slices.IndexFunc(componentNames[:], func(cn componentName) bool { return util.EqFold(cn.name, name) })
		if i < 0 {
			return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidFormat, "unknown component %q", name))
		}
		comps |= componentNames[i].comp
	}
	*c = comps
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (c Components) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
