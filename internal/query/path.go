package query

import (
	"fmt"
	"net/url"
	"strings"
)

// ResolveURL builds the full request URL for this query against a server
// base URL.
//
// Path templates per kind: domain/<name>, ip/<addr-or-cidr>,
// autnum/<number>, entity/<handle>, nameserver/<name>, help, and the
// filtered collection endpoints (domains?name=... and friends). Free-form
// values are percent-encoded; IP literals and AS numbers are structured
// tokens and pass through verbatim.
func (q Query) ResolveURL(base *url.URL) (*url.URL, error) {
	var rel string
	switch q.Kind {
	case KindDomain, KindTLD:
		rel = "domain/" + url.PathEscape(q.Raw)
	case KindIP:
		rel = "ip/" + q.Raw
	case KindAutnum:
		rel = "autnum/" + StripASPrefix(q.Raw)
	case KindEntity:
		rel = "entity/" + url.PathEscape(q.Raw)
	case KindNameserver:
		rel = "nameserver/" + url.PathEscape(q.Raw)
	case KindHelp:
		rel = "help"
	case KindDomainSearch:
		rel = "domains?name=" + url.QueryEscape(q.Raw)
	case KindDomainSearchByNS:
		rel = "domains?nsLdhName=" + url.QueryEscape(q.Raw)
	case KindDomainSearchByNSIP:
		rel = "domains?nsIp=" + q.Raw
	case KindNameserverSearch:
		rel = "nameservers?name=" + url.QueryEscape(q.Raw)
	case KindNameserverSearchByIP:
		rel = "nameservers?ip=" + q.Raw
	case KindEntitySearch:
		rel = "entities?fn=" + url.QueryEscape(q.Raw)
	case KindEntitySearchByHandle:
		rel = "entities?handle=" + url.QueryEscape(q.Raw)
	default:
		return nil, fmt.Errorf("query: no URL template for %s", q.Kind)
	}

	ref, err := url.Parse(rel)
	if err != nil {
		return nil, fmt.Errorf("query: building request path: %w", err)
	}

	// Relative resolution drops the last path segment of a base that
	// lacks a trailing slash, so pin one on.
	b := *base
	if !strings.HasSuffix(b.Path, "/") {
		b.Path += "/"
	}
	return b.ResolveReference(ref), nil
}

// StripASPrefix removes a leading case-insensitive "AS" from an
// autonomous system number string.
func StripASPrefix(s string) string {
	if len(s) >= 2 && (s[0] == 'A' || s[0] == 'a') && (s[1] == 'S' || s[1] == 's') {
		return s[2:]
	}
	return s
}
