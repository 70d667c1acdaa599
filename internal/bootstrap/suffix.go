package bootstrap

import (
	"slices"
	"strings"
)

// SuffixIndex matches domain names against registered suffixes,
// returning the value of the longest (most specific) matching suffix.
//
// Suffixes are stored with labels in reverse order, so "com.af" sits
// under af -> com and matching "shop.com.af" walks af, com, shop,
// remembering the deepest node that ends a registered suffix.
//
// Adding the same suffix twice overwrites the earlier value, which is
// exactly the flatten-then-lookup behavior the DNS bootstrap registry
// requires for duplicate entries.
//
// The index is not synchronized: build it fully, then share it for
// concurrent lookups.
type SuffixIndex[V any] struct {
	root *suffixNode[V]
	size int
}

type suffixNode[V any] struct {
	children map[string]*suffixNode[V]
	value    V
	isEnd    bool
}

// NewSuffixIndex creates an empty index.
func NewSuffixIndex[V any]() *SuffixIndex[V] {
	return &SuffixIndex[V]{root: newSuffixNode[V]()}
}

func newSuffixNode[V any]() *suffixNode[V] {
	return &suffixNode[V]{children: make(map[string]*suffixNode[V], 4)}
}

// Add registers a suffix ("com", "com.af", "city.example.org").
func (t *SuffixIndex[V]) Add(suffix string, value V) {
	labels := reversedLabels(normalizeDomain(suffix))
	if len(labels) == 0 {
		return
	}
	node := t.root
	for _, label := range labels {
		child := node.children[label]
		if child == nil {
			child = newSuffixNode[V]()
			node.children[label] = child
		}
		node = child
	}
	if !node.isEnd {
		t.size++
	}
	node.isEnd = true
	node.value = value
}

// Lookup returns the value registered for the longest suffix of domain,
// or false when no registered suffix matches.
func (t *SuffixIndex[V]) Lookup(domain string) (V, bool) {
	var (
		best  V
		found bool
	)
	node := t.root
	for _, label := range reversedLabels(normalizeDomain(domain)) {
		node = node.children[label]
		if node == nil {
			break
		}
		if node.isEnd {
			best = node.value
			found = true
		}
	}
	return best, found
}

// Len reports the number of registered suffixes.
func (t *SuffixIndex[V]) Len() int {
	return t.size
}

// normalizeDomain lowercases and strips the trailing root dot.
func normalizeDomain(domain string) string {
	return strings.ToLower(strings.TrimSuffix(strings.TrimSpace(domain), "."))
}

// reversedLabels splits a domain into labels, rightmost first.
func reversedLabels(domain string) []string {
	if domain == "" {
		return nil
	}
	labels := strings.Split(domain, ".")
	for _, l := range labels {
		if l == "" {
			return nil
		}
	}
	slices.Reverse(labels)
	return labels
}
