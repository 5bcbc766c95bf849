package grammar

import "github.com/ghettovoice/abnf"

// RFC 8141 rules.
//
//	NID         = (alphanum) 0*30(ldh) (alphanum)
//	ldh         = alphanum / "-"
//	NSS         = pchar *(pchar / "/" / "?")
//	pchar       = unreserved / pct-encoded / sub-delims / ":" / "@"
//	unreserved  = ALPHA / DIGIT / "-" / "." / "_" / "~"
//	pct-encoded = "%" HEXDIG HEXDIG
//	sub-delims  = "!" / "$" / "&" / "'" / "(" / ")" / "*" / "+" / "," / ";" / "="
var (
	alpha = abnf.Alt(
		"ALPHA",
		abnf.Range("%x41-5A", []byte{0x41}, []byte{0x5A}),
		abnf.Range("%x61-7A", []byte{0x61}, []byte{0x7A}),
	)
	digit  = abnf.Range("DIGIT", []byte{0x30}, []byte{0x39})
	hexdig = abnf.Alt(
		"HEXDIG",
		digit,
		abnf.Range("%x41-46", []byte{0x41}, []byte{0x46}),
		abnf.Range("%x61-66", []byte{0x61}, []byte{0x66}),
	)

	alphanum = abnf.Alt("alphanum", alpha, digit)
	ldh      = abnf.Alt("ldh", alphanum, literal("-"))
	nid      = abnf.Concat(
		"NID",
		alphanum,
		abnf.Repeat("0*30ldh", 0, 30, ldh),
		alphanum,
	)

	unreserved = abnf.Alt(
		"unreserved",
		alphanum,
		literal("-"),
		literal("."),
		literal("_"),
		literal("~"),
	)
	pctEncoded = abnf.Concat("pct-encoded", literal("%"), hexdig, hexdig)
	subDelims  = abnf.Alt(
		"sub-delims",
		literal("!"),
		literal("$"),
		literal("&"),
		literal("'"),
		literal("("),
		literal(")"),
		literal("*"),
		literal("+"),
		literal(","),
		literal(";"),
		literal("="),
	)
	pchar = abnf.Alt("pchar", unreserved, pctEncoded, subDelims, literal(":"), literal("@"))
	nss   = abnf.Concat(
		"NSS",
		pchar,
		abnf.Repeat0Inf(
			"*(pchar / \"/\" / \"?\")",
			abnf.Alt("pchar / \"/\" / \"?\"", pchar, literal("/"), literal("?")),
		),
	)
)

func literal(s string) abnf.Operator {
	return abnf.Literal(`"`+s+`"`, []byte(s))
}

// NID matches the namespace identifier rule.
func NID(s []byte, ns *abnf.Nodes) error {
	return nid(s, 0, ns) //errtrace:skip
}

// NSS matches the namespace specific string rule.
func NSS(s []byte, ns *abnf.Nodes) error {
	return nss(s, 0, ns) //errtrace:skip
}
