package query

import "strings"

// TLDChecker reports whether a single label is a known top-level domain.
// Detection uses it to distinguish "com" (TLD lookup) from an entity
// handle or hostname fragment.
type TLDChecker func(label string) bool

// Detect infers the query kind from a free-form query string.
//
// Precedence: AS-number forms ("AS15169", "as15169", bare digits), then
// IP-ish strings (addresses, shorthand, CIDR), then dotless known TLDs.
// Everything else is treated as a domain name.
func Detect(raw string, isTLD TLDChecker) Kind {
	if isASNumber(raw) {
		return KindAutnum
	}
	if IsIPLike(raw) {
		return KindIP
	}
	if !strings.Contains(raw, ".") && isTLD != nil && isTLD(raw) {
		return KindTLD
	}
	return KindDomain
}

func isASNumber(s string) bool {
	// Bare digits are ambiguous with shorthand IPv4 ("1" parses as
	// 0.0.0.1) but they are treated as AS numbers, prefix or not.
	rest := StripASPrefix(s)
	if rest == "" {
		return false
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return false
		}
	}
	return true
}
