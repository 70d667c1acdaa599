// Package bootstrap discovers which servers are authoritative for a
// query by way of the IANA bootstrap registries.
//
// Four registry documents exist, one per query family (DNS, ASN, IPv4,
// IPv6). Each maps pattern sets (domain suffixes, CIDR blocks, AS-number
// ranges) to candidate server URLs. Matching semantics differ per
// family:
//
//   - DNS: the registry is flattened into a suffix index and the most
//     specific (longest) matching suffix wins.
//   - IPv4/IPv6: patterns are tested in document order; the first CIDR
//     containing the address wins, with no cross-family fallback.
//   - ASN: singleton and inclusive "start-end" range patterns, first
//     containing pattern in document order wins.
//
// Locally configured overrides take absolute precedence over bootstrap
// data for domain queries. An empty candidate list is a valid non-error
// outcome; the executor reports it uniformly as "no working servers".
package bootstrap

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

// Sentinel errors for the failure modes resolution can hit before any
// query is sent.
var (
	// ErrInvalidQuery marks malformed IP or AS-number syntax, caught
	// before any network access.
	ErrInvalidQuery = errors.New("bootstrap: invalid query")

	// ErrRegistryFetch marks a bootstrap registry that could not be
	// fetched or parsed.
	ErrRegistryFetch = errors.New("bootstrap: registry fetch failed")

	// ErrNeedExplicitServer marks query kinds that bootstrap cannot
	// resolve; the caller must supply a server.
	ErrNeedExplicitServer = errors.New("bootstrap: query type requires an explicit server")
)

// Registry is a parsed bootstrap registry document (RFC 9224).
type Registry struct {
	Version     string `json:"version"`
	Publication string `json:"publication,omitempty"`
	Description string `json:"description,omitempty"`

	// Services is an ordered list of [pattern-list, url-list] pairs.
	// Document order is significant for IP and ASN matching.
	Services [][][]string `json:"services"`
}

// ParseRegistry decodes a registry document.
func ParseRegistry(data []byte) (*Registry, error) {
	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRegistryFetch, err)
	}
	return &reg, nil
}

// service is one well-formed [patterns, urls] pair.
type service struct {
	patterns []string
	urls     []string
}

// services yields the well-formed entries in document order, skipping
// anything that is not a two-element pair.
func (r *Registry) services() []service {
	out := make([]service, 0, len(r.Services))
	for _, entry := range r.Services {
		if len(entry) < 2 {
			continue
		}
		out = append(out, service{patterns: entry[0], urls: entry[1]})
	}
	return out
}

// parseURLs converts a url-list to parsed URLs, dropping entries that do
// not parse. Order is preserved; the first URL is the preferred server.
func parseURLs(raw []string) []*url.URL {
	out := make([]*url.URL, 0, len(raw))
	for _, s := range raw {
		u, err := url.Parse(s)
		if err != nil || u.Host == "" {
			continue
		}
		out = append(out, u)
	}
	return out
}
