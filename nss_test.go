package urn_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ghettovoice/urn"
	"github.com/ghettovoice/urn/internal/grammar"
)

func TestParseNSS_Escaped(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		input     string
		wantEsc   string
		wantUnesc string
		wantErr   []error
	}{
		{"digits", "0451450523", "0451450523", "0451450523", nil},
		{"escaped ampersand", "123%26", "123%26", "123&", nil},
		{"upper hex lowered", "A%2FB%3a", "A%2fB%3a", "A/B:", nil},
		{"other chars untouched", "ABC:d@e!f", "ABC:d@e!f", "ABC:d@e!f", nil},
		{"slash and question", "a/b?c", "a/b?c", "a/b?c", nil},
		{"utf-8 triples", "%C3%A9", "%c3%a9", "é", nil},
		{"empty", "", "", "", []error{urn.ErrInvalidFormat, grammar.ErrEmptyInput}},
		{"hash", "#", "", "", []error{urn.ErrInvalidFormat, urn.ErrRequiresEscaping}},
		{"space", "a b", "", "", []error{urn.ErrInvalidFormat, urn.ErrRequiresEscaping, grammar.ErrMalformedInput}},
		{"broken triple", "a%2", "", "", []error{urn.ErrInvalidFormat, urn.ErrRequiresEscaping}},
		{"leading slash", "/a", "", "", []error{urn.ErrInvalidFormat, urn.ErrRequiresEscaping}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			nss, err := urn.ParseNSS(c.input, urn.Escaped)
			if c.wantErr != nil {
				for _, want := range c.wantErr {
					if !errors.Is(err, want) {
						t.Errorf("urn.ParseNSS(%q, Escaped) error = %v, want %v", c.input, err, want)
					}
				}
				if !nss.IsZero() {
					t.Errorf("urn.ParseNSS(%q, Escaped) = %q, want zero NSS", c.input, nss)
				}
				return
			}
			if err != nil {
				t.Fatalf("urn.ParseNSS(%q, Escaped) error = %v, want nil", c.input, err)
			}
			if got := nss.String(); got != c.wantEsc {
				t.Errorf("nss.String() = %q, want %q", got, c.wantEsc)
			}
			if got := nss.Unescaped(); got != c.wantUnesc {
				t.Errorf("nss.Unescaped() = %q, want %q", got, c.wantUnesc)
			}
			if got := nss.Raw(); got != c.input {
				t.Errorf("nss.Raw() = %q, want %q", got, c.input)
			}
		})
	}
}

func TestParseNSS_Unescaped(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		input   string
		wantEsc string
		wantErr bool
	}{
		{"plain", "0451450523", "0451450523", false},
		{"percent", "123%26", "123%2526", false},
		{"delimiters", "a/b?c#d", "a%2fb%3fc%23d", false},
		{"space", "a b", "a%20b", false},
		{"ampersand and tilde", "a&b~", "a%26b%7e", false},
		{"allowed punctuation", "a:b@c!$'()*+,;=-._", "a:b@c!$'()*+,;=-._", false},
		{"non-ascii", "é", "%c3%a9", false},
		{"control", "a\tb", "a%09b", false},
		{"empty", "", "", true},
		{"nul", "a\x00b", "", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			nss, err := urn.ParseNSS(c.input, urn.Unescaped)
			if c.wantErr {
				if !errors.Is(err, urn.ErrInvalidFormat) {
					t.Errorf("urn.ParseNSS(%q, Unescaped) error = %v, want %v", c.input, err, urn.ErrInvalidFormat)
				}
				return
			}
			if err != nil {
				t.Fatalf("urn.ParseNSS(%q, Unescaped) error = %v, want nil", c.input, err)
			}
			if got := nss.Unescaped(); got != c.input {
				t.Errorf("nss.Unescaped() = %q, want %q", got, c.input)
			}
			if got := nss.String(); got != c.wantEsc {
				t.Errorf("nss.String() = %q, want %q", got, c.wantEsc)
			}
			if got := grammar.Unescape(nss.String()); got != c.input {
				t.Errorf("grammar.Unescape(nss.String()) = %q, want %q", got, c.input)
			}
			if !nss.IsValid() {
				t.Errorf("nss.IsValid() = false, want true")
			}
		})
	}
}

func TestParseNSS_UnknownMode(t *testing.T) {
	t.Parallel()

	if _, err := urn.ParseNSS("abc", urn.Mode(7)); !errors.Is(err, urn.ErrInvalidFormat) {
		t.Errorf("urn.ParseNSS(\"abc\", Mode(7)) error = %v, want %v", err, urn.ErrInvalidFormat)
	}
}

func TestNSS_Equal(t *testing.T) {
	t.Parallel()

	a, _ := urn.ParseNSS("abc%2F", urn.Escaped)
	b, _ := urn.ParseNSS("ABC%2f", urn.Escaped)
	c, _ := urn.ParseNSS("abc/", urn.Unescaped)
	d, _ := urn.ParseNSS("abc", urn.Escaped)

	if !a.Equal(b) {
		t.Errorf("%q.Equal(%q) = false, want true", a, b)
	}
	if !a.Equal(&c) {
		t.Errorf("%q.Equal(%q) = false, want true", a, c)
	}
	if a.Equal(d) {
		t.Errorf("%q.Equal(%q) = true, want false", a, d)
	}
	if a.Equal("abc%2f") {
		t.Error("NSS must not be equal to a string")
	}
}

func TestNSS_Format(t *testing.T) {
	t.Parallel()

	nss, _ := urn.ParseNSS("a%2Fb", urn.Escaped)
	if got, want := fmt.Sprintf("%s|%+s|%q", nss, nss, nss), `a%2fb|a/b|"a%2fb"`; got != want {
		t.Errorf("fmt.Sprintf() = %q, want %q", got, want)
	}
}
