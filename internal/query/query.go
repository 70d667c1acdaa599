// Package query defines the read-only query value handed to the
// resolution pipeline: what kind of lookup it is, the raw query string,
// and an optional explicit server that bypasses bootstrap discovery.
//
// Everything in this package is pure; no network or filesystem access.
package query

import (
	"fmt"
	"net/url"
)

// Kind enumerates the supported lookup kinds.
type Kind int

const (
	// KindDomain looks up a registered domain name.
	KindDomain Kind = iota
	// KindTLD looks up a top-level domain at the IANA registry.
	KindTLD
	// KindIP looks up an IP address or CIDR block.
	KindIP
	// KindAutnum looks up an autonomous system number.
	KindAutnum
	// KindEntity looks up an entity by handle.
	KindEntity
	// KindNameserver looks up a nameserver by name.
	KindNameserver
	// KindHelp fetches the server's help document.
	KindHelp
	// KindDomainSearch searches domains by name pattern.
	KindDomainSearch
	// KindDomainSearchByNS searches domains by nameserver name.
	KindDomainSearchByNS
	// KindDomainSearchByNSIP searches domains by nameserver address.
	KindDomainSearchByNSIP
	// KindNameserverSearch searches nameservers by name pattern.
	KindNameserverSearch
	// KindNameserverSearchByIP searches nameservers by address.
	KindNameserverSearchByIP
	// KindEntitySearch searches entities by full name.
	KindEntitySearch
	// KindEntitySearchByHandle searches entities by handle pattern.
	KindEntitySearchByHandle
)

var kindNames = map[Kind]string{
	KindDomain:               "domain",
	KindTLD:                  "tld",
	KindIP:                   "ip",
	KindAutnum:               "autnum",
	KindEntity:               "entity",
	KindNameserver:           "nameserver",
	KindHelp:                 "help",
	KindDomainSearch:         "domain-search",
	KindDomainSearchByNS:     "domain-search-by-nameserver",
	KindDomainSearchByNSIP:   "domain-search-by-nameserver-ip",
	KindNameserverSearch:     "nameserver-search",
	KindNameserverSearchByIP: "nameserver-search-by-ip",
	KindEntitySearch:         "entity-search",
	KindEntitySearchByHandle: "entity-search-by-handle",
}

// String returns the stable user-facing name of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a user-facing kind name back to its Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("query: unknown query type %q", s)
}

// Query is a single lookup. It is immutable after construction; With*
// helpers return copies.
type Query struct {
	Kind   Kind
	Raw    string
	Server *url.URL // explicit server; bypasses bootstrap when set
}

// New builds a query of the given kind.
func New(kind Kind, raw string) Query {
	return Query{Kind: kind, Raw: raw}
}

// WithServer returns a copy pinned to an explicit server URL.
func (q Query) WithServer(server *url.URL) Query {
	q.Server = server
	return q
}
