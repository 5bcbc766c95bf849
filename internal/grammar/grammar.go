// Package grammar implements the RFC 8141 URN syntax rules and percent-encoding helpers.
package grammar

//go:generate go tool errtrace -w .

import (
	"strings"

	"github.com/ghettovoice/abnf"
)

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

// Scheme is the URN scheme literal.
const Scheme = "urn"

// NID length bounds.
const (
	MinNIDLen = 2
	MaxNIDLen = 32
)

// IsNID reports whether s is a syntactically valid namespace identifier.
// The reserved identifier "urn" is rejected in any letter case.
func IsNID[T ~string | ~[]byte](s T) bool {
	if len(s) < MinNIDLen || len(s) > MaxNIDLen || strings.EqualFold(string(s), Scheme) {
		return false
	}
	return matchAll(NID, []byte(s))
}

// IsNSS reports whether s is a syntactically valid percent-escaped namespace specific string.
func IsNSS[T ~string | ~[]byte](s T) bool {
	if len(s) == 0 {
		return false
	}
	return matchAll(NSS, []byte(s))
}

func matchAll(rule func([]byte, *abnf.Nodes) error, s []byte) bool {
	ns := abnf.NewNodes()
	defer ns.Free()

	if err := rule(s, ns); err != nil {
		return false
	}
	return ns.Best().Len() == len(s)
}
