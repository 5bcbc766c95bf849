package urn

import (
	"strings"

	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"
)

// Delimiters of the r-component, q-component and f-component.
const (
	resolutionDelim = "?+"
	queryDelim      = "?="
	fragmentDelim   = "#"
)

type section uint8

const (
	sectionNSS section = iota
	sectionResolution
	sectionQuery
	sectionFragment
)

// newSectionMachine returns a state machine that walks URN sections in RFC 8141 order.
// A delimiter that can not move the machine forward is ignored and stays
// a part of the current section text.
func newSectionMachine() *stateless.StateMachine {
	sm := stateless.NewStateMachine(sectionNSS)
	sm.Configure(sectionNSS).
		Permit(resolutionDelim, sectionResolution).
		Permit(queryDelim, sectionQuery).
		Permit(fragmentDelim, sectionFragment)
	sm.Configure(sectionResolution).
		Ignore(resolutionDelim).
		Permit(queryDelim, sectionQuery).
		Permit(fragmentDelim, sectionFragment)
	sm.Configure(sectionQuery).
		Ignore(resolutionDelim).
		Ignore(queryDelim).
		Permit(fragmentDelim, sectionFragment)
	sm.Configure(sectionFragment).
		Ignore(resolutionDelim).
		Ignore(queryDelim).
		Ignore(fragmentDelim)
	return sm
}

// sections holds the text of the NSS and the RQF components split from the URN tail.
type sections [4]string

func (ss sections) nss() string        { return ss[sectionNSS] }
func (ss sections) resolution() string { return ss[sectionResolution] }
func (ss sections) query() string      { return ss[sectionQuery] }
func (ss sections) fragment() string   { return ss[sectionFragment] }

// splitSections splits s (the URN text after "urn:NID:") into NSS, resolution, query and fragment texts.
// The NSS ends at the first "?+", "?=" or "#", the resolution ends at the next "?=" or "#",
// the query ends at the next "#", the fragment spans to the end of s.
func splitSections(s string) (sections, error) {
	var (
		ss    sections
		sm    = newSectionMachine()
		cur   = sectionNSS
		start int
	)
	for i := 0; i < len(s); {
		delim := delimAt(s, i)
		if delim == "" {
			i++
			continue
		}
		if err := sm.Fire(delim); err != nil {
			return sections{}, errtrace.Wrap(err)
		}
		next, _ := sm.MustState().(section)
		if next == cur {
			i += len(delim)
			continue
		}
		ss[cur] = s[start:i]
		cur = next
		start = i + len(delim)
		i = start
	}
	ss[cur] = s[start:]
	return ss, nil
}

func delimAt(s string, i int) string {
	switch {
	case s[i] == '#':
		return fragmentDelim
	case strings.HasPrefix(s[i:], resolutionDelim):
		return resolutionDelim
	case strings.HasPrefix(s[i:], queryDelim):
		return queryDelim
	default:
		return ""
	}
}

// hasDelim reports whether s contains any RQF delimiter.
func hasDelim(s string) bool {
	return strings.Contains(s, resolutionDelim) ||
		strings.Contains(s, queryDelim) ||
		strings.Contains(s, fragmentDelim)
}
