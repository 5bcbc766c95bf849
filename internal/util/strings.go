// Package util provides common string helpers.
package util

import (
	"strings"
	"sync"
)

func TrimSP[T ~string](s T) T { return T(strings.TrimSpace(string(s))) }

func EqFold[T1, T2 ~string](s1 T1, s2 T2) bool {
	return strings.EqualFold(string(s1), string(s2))
}

// IsBlank reports whether s is empty or consists of white space only.
func IsBlank[T ~string](s T) bool { return TrimSP(s) == "" }

var strBldrPool = &sync.Pool{
	New: func() any {
		sb := new(strings.Builder)
		sb.Grow(128)
		return sb
	},
}

func GetStringBuilder() *strings.Builder {
	return strBldrPool.Get().(*strings.Builder) //nolint:forcetypeassert
}

func FreeStringBuilder(sb *strings.Builder) {
	sb.Reset()
	strBldrPool.Put(sb)
}

func LCase[T ~string](s T) T { return T(strings.ToLower(string(s))) }
