package query

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"
)

// NormalizeIP canonicalizes an IP query string. It accepts full IPv4 and
// IPv6 addresses, CIDR notation, and classic inet_aton IPv4 shorthand
// ("1.1" -> "1.0.0.1", "10.0.1" -> "10.0.0.1"). Returns false when the
// string is not an address at all.
func NormalizeIP(s string) (string, bool) {
	if addr, prefixLen, ok := splitCIDR(s); ok {
		norm, ok := normalizeAddr(addr)
		if !ok {
			return "", false
		}
		return norm + "/" + prefixLen, true
	}
	return normalizeAddr(s)
}

// IsIPLike reports whether s looks like an IP query (address, shorthand,
// or CIDR). Used by query type detection before any normalization.
func IsIPLike(s string) bool {
	_, ok := NormalizeIP(s)
	return ok
}

// IsCIDR reports whether s carries an explicit prefix length.
func IsCIDR(s string) bool {
	_, _, ok := splitCIDR(s)
	return ok
}

// MatchAddr returns the address the server matcher should test against:
// the address itself for host queries, the network address for CIDR
// queries (hosts inside the block are irrelevant for registry matching).
func MatchAddr(s string) (netip.Addr, error) {
	if addrStr, prefixStr, ok := splitCIDR(s); ok {
		addr, err := netip.ParseAddr(addrStr)
		if err != nil {
			return netip.Addr{}, fmt.Errorf("query: invalid IP address %q: %w", s, err)
		}
		bits, err := strconv.Atoi(prefixStr)
		if err != nil {
			return netip.Addr{}, fmt.Errorf("query: invalid prefix length in %q", s)
		}
		p, err := addr.Prefix(bits)
		if err != nil {
			return netip.Addr{}, fmt.Errorf("query: invalid CIDR %q: %w", s, err)
		}
		return p.Addr(), nil
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("query: invalid IP address %q: %w", s, err)
	}
	return addr, nil
}

// V6NetworkQuery rewrites an IPv6 host address as a network/prefix pair
// at the given prefix length, for servers that reject host-level IPv6
// queries. Returns false if s is not a plain IPv6 address.
func V6NetworkQuery(s string, bits int) (string, bool) {
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is6() || addr.Is4In6() {
		return "", false
	}
	p, err := addr.Prefix(bits)
	if err != nil {
		return "", false
	}
	return p.Addr().String() + "/" + strconv.Itoa(bits), true
}

func splitCIDR(s string) (addr, prefixLen string, ok bool) {
	i := strings.IndexByte(s, '/')
	if i < 0 {
		return "", "", false
	}
	addr, prefixLen = s[:i], s[i+1:]
	if addr == "" || prefixLen == "" {
		return "", "", false
	}
	if n, err := strconv.Atoi(prefixLen); err != nil || n < 0 || n > 128 {
		return "", "", false
	}
	return addr, prefixLen, true
}

func normalizeAddr(s string) (string, bool) {
	if strings.Contains(s, ":") {
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return "", false
		}
		return addr.String(), true
	}
	v, ok := parseV4Shorthand(s)
	if !ok {
		return "", false
	}
	return netip.AddrFrom4([4]byte{
		byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v),
	}).String(), true
}

// parseV4Shorthand implements inet_aton semantics: 1 to 4 dot-separated
// decimal parts, the last part filling all remaining octets.
func parseV4Shorthand(s string) (uint32, bool) {
	parts := strings.Split(s, ".")
	if len(parts) < 1 || len(parts) > 4 {
		return 0, false
	}
	vals := make([]uint64, len(parts))
	for i, p := range parts {
		if p == "" {
			return 0, false
		}
		v, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return 0, false
		}
		vals[i] = v
	}

	// Leading parts are single octets; the final part spans the rest.
	var out uint32
	for i := 0; i < len(vals)-1; i++ {
		if vals[i] > 0xFF {
			return 0, false
		}
		out |= uint32(vals[i]) << (8 * (3 - i))
	}
	last := vals[len(vals)-1]
	spanBits := 8 * (4 - len(vals) + 1)
	if spanBits < 32 && last >= 1<<spanBits {
		return 0, false
	}
	return out | uint32(last), true
}
