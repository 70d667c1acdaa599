package bootstrap

import (
	"fmt"
	"net/netip"
	"net/url"
	"strconv"
	"strings"

	"github.com/jroosing/gordap/internal/query"
)

// MatchDomain returns the candidate servers for a domain name: the
// registry is flattened into a suffix index (later duplicate suffixes
// overwrite earlier ones) and the longest matching suffix wins. An
// empty result means no service covers the name; that is not an error.
func MatchDomain(reg *Registry, domain string) []*url.URL {
	idx := NewSuffixIndex[[]string]()
	for _, svc := range reg.services() {
		for _, suffix := range svc.patterns {
			idx.Add(suffix, svc.urls)
		}
	}
	urls, ok := idx.Lookup(domain)
	if !ok {
		return nil
	}
	return parseURLs(urls)
}

// MatchIP returns the candidate servers for an IP or CIDR query.
// Patterns are tested in document order and the first CIDR containing
// the query's match address wins, regardless of prefix specificity.
// Address families never mix: an IPv4 query cannot match an IPv6
// pattern or vice versa.
func MatchIP(reg *Registry, ipQuery string) ([]*url.URL, error) {
	normalized, ok := query.NormalizeIP(ipQuery)
	if !ok {
		return nil, fmt.Errorf("%w: invalid IP address %q", ErrInvalidQuery, ipQuery)
	}
	addr, err := query.MatchAddr(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}

	for _, svc := range reg.services() {
		for _, pattern := range svc.patterns {
			prefix, err := netip.ParsePrefix(pattern)
			if err != nil {
				continue
			}
			if prefix.Addr().Is4() != addr.Is4() {
				continue
			}
			if prefix.Contains(addr) {
				return parseURLs(svc.urls), nil
			}
		}
	}
	return nil, nil
}

// MatchASN returns the candidate servers for an AS-number query.
// Patterns are singletons ("15169") or inclusive ranges ("1000-2000"),
// tested in document order; the first containing pattern wins.
func MatchASN(reg *Registry, asnQuery string) ([]*url.URL, error) {
	digits := query.StripASPrefix(asnQuery)
	asn, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid AS number %q", ErrInvalidQuery, asnQuery)
	}

	for _, svc := range reg.services() {
		for _, pattern := range svc.patterns {
			if asnInRange(uint32(asn), pattern) {
				return parseURLs(svc.urls), nil
			}
		}
	}
	return nil, nil
}

// asnInRange tests a singleton or inclusive "start-end" pattern. Both
// range ends are inclusive.
func asnInRange(asn uint32, pattern string) bool {
	if lo, hi, ok := strings.Cut(pattern, "-"); ok {
		start, err1 := strconv.ParseUint(lo, 10, 32)
		end, err2 := strconv.ParseUint(hi, 10, 32)
		if err1 != nil || err2 != nil {
			return false
		}
		return uint64(asn) >= start && uint64(asn) <= end
	}
	single, err := strconv.ParseUint(pattern, 10, 32)
	if err != nil {
		return false
	}
	return uint64(asn) == single
}
