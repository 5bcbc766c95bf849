// Package urn provides parsing, validation, normalization and rendering of
// Uniform Resource Names according to RFC 8141.
//
// # Overview
//
// A URN has the form:
//
//	urn:<NID>:<NSS>[?+<resolution>][?=<query>][#<fragment>]
//
// The package splits it into typed components:
//
//   - [NID]: the namespace identifier, 2 to 32 letters, digits or hyphens, starting and ending
//     with a letter or digit. The identifier "urn" is reserved. Comparison ignores the case.
//   - [NSS]: the namespace specific string. It keeps the canonical percent-escaped form
//     (hex digits lower-cased) and the decoded form.
//   - [Params]: ordered resolution and query parameters with unique keys.
//   - the fragment, kept as is.
//
// # Parsing
//
// Two modes control how the NSS text is interpreted:
//
//	// Escaped: the NSS must already be percent-encoded.
//	u, err := urn.Parse("urn:isbn:123%26")
//	// u.NSS().Unescaped() == "123&", u.NSS().String() == "123%26"
//
//	// Unescaped: the NSS is raw text, reserved characters are encoded.
//	u, err = urn.ParseWithMode("urn:isbn:123%26", urn.Unescaped)
//	// u.NSS().Unescaped() == "123%26", u.NSS().String() == "123%2526"
//
// [New] builds a URN from parts, [TryParse] and [IsWellFormed] are validation-only helpers
// that never return errors.
//
// All construction failures wrap [ErrInvalidFormat]. Escaped NSS failures additionally wrap
// [ErrRequiresEscaping], repeated resolution or query keys wrap [ErrDuplicateKey].
//
// # Rendering
//
// [URN.String] renders the canonical form: scheme, NID, escaped NSS, then the non-empty
// resolution, query and fragment. [URN.Components] renders a subset of components,
// [URN.OriginalString] reassembles the texts the URN was parsed from.
//
// # Equality
//
// [URN.Equal] implements RFC 8141 URN-equivalence: NID and NSS are compared case-insensitively,
// resolution, query and fragment are ignored. [URN.Key] returns a map key with the same semantics.
//
// # Building
//
// URN values are immutable. [Builder] holds a working copy, validates every replaced part
// and returns new URNs:
//
//	b := urn.NewBuilder(urn.MustParse("urn:isbn:123?+resolution=x?=query=x"))
//	b.SetFragment("Fragment")
//	_ = b.AddQuery("key", "value")
//	b.String() // "urn:isbn:123?+resolution=x?=query=x&key=value#Fragment"
//
// # Thread Safety
//
// URN, NID and NSS values are safe for concurrent use. A Builder is not.
package urn
