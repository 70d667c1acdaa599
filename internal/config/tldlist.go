package config

import "strings"

// TLDList is the set of known top-level domains, sourced from the IANA
// published list. Lookups are case-insensitive.
type TLDList struct {
	tlds map[string]struct{}
}

// ParseTLDList parses the IANA tlds-alpha-by-domain.txt format: one TLD
// per line, '#' comment lines ignored.
func ParseTLDList(content string) *TLDList {
	tlds := map[string]struct{}{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tlds[strings.ToLower(line)] = struct{}{}
	}
	return &TLDList{tlds: tlds}
}

// Contains reports whether label is a known TLD.
func (l *TLDList) Contains(label string) bool {
	_, ok := l.tlds[strings.ToLower(label)]
	return ok
}

// Len reports the number of known TLDs.
func (l *TLDList) Len() int {
	return len(l.tlds)
}
