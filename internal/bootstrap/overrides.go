package bootstrap

import "net/url"

// Overrides short-circuits bootstrap discovery for domain queries with
// locally configured suffix -> server mappings. Overrides use the same
// longest-suffix rule as the DNS registry matcher, so local entries and
// bootstrap data behave identically; they are consulted only for
// domain-family queries.
type Overrides struct {
	idx *SuffixIndex[*url.URL]
}

// NewOverrides builds the override index from a flat suffix -> URL map.
// Entries whose URL does not parse are dropped.
func NewOverrides(mapping map[string]string) *Overrides {
	idx := NewSuffixIndex[*url.URL]()
	for suffix, raw := range mapping {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			continue
		}
		idx.Add(suffix, u)
	}
	return &Overrides{idx: idx}
}

// Lookup returns the override server for the longest matching suffix of
// domain, or false when no override applies.
func (o *Overrides) Lookup(domain string) (*url.URL, bool) {
	if o == nil || o.idx == nil {
		return nil, false
	}
	return o.idx.Lookup(domain)
}

// Len reports the number of configured overrides.
func (o *Overrides) Len() int {
	if o == nil || o.idx == nil {
		return 0
	}
	return o.idx.Len()
}
