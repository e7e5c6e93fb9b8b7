// Package crawl — candidate list with deduplication.
// Maintains a seen set so each absolute URL is considered at most once,
// whether or not it ends up as a candidate.
package crawl

import "github.com/gaurav-prasanna/stylepipe/core"

// Candidates is an insertion-ordered list of discovered links, unique by URL.
type Candidates struct {
	items []core.DiscoveredLink
	seen  map[string]bool
}

// NewCandidates creates an empty list.
func NewCandidates() *Candidates {
	return &Candidates{
		seen: make(map[string]bool),
	}
}

// Seen reports whether url was already offered.
func (c *Candidates) Seen(url string) bool {
	return c.seen[url]
}

// Mark records url as seen without adding a candidate.
func (c *Candidates) Mark(url string) {
	c.seen[url] = true
}

// Add appends link and marks its URL seen. Callers check Seen first;
// a URL marked by Mark can still be added once it passes filtering.
func (c *Candidates) Add(link core.DiscoveredLink) {
	c.seen[link.URL] = true
	c.items = append(c.items, link)
}

// All returns the candidates in insertion order.
func (c *Candidates) All() []core.DiscoveredLink {
	return c.items
}
