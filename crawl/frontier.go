package crawl

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/docscrape"
)

// Compile-time interface verification.
var _ docscrape.URLFrontier = (*Frontier)(nil)

// Frontier configuration defaults.
const (
	// DefaultExpectedURLs sizes the Bloom filter.
	DefaultExpectedURLs = 10000
	// DefaultFalsePositiveRate is the filter's acceptable false positive rate.
	DefaultFalsePositiveRate = 0.01
)

// Frontier is the crawl queue over an explicit FrontierState. A Bloom
// filter in front of the visited map answers most "never seen" lookups;
// the map stays authoritative, so filter false positives cost a map lookup
// and never a lost URL.
//
// A Frontier has a single mutator and is not safe for concurrent use.
type Frontier struct {
	state *docscrape.FrontierState
	seen  *bloom.BloomFilter
}

// NewFrontier wraps state, sizing the filter for n expected URLs at the
// given false positive rate. URLs already visited in state are loaded into
// the filter, so a crawl can resume from a saved state.
func NewFrontier(state *docscrape.FrontierState, n uint, fpRate float64) *Frontier {
	if n < uint(len(state.Visited)) {
		n = uint(len(state.Visited))
	}
	f := &Frontier{
		state: state,
		seen:  bloom.NewWithEstimates(n, fpRate),
	}
	for url := range state.Visited {
		f.seen.AddString(url)
	}
	return f
}

// Push queues a normalized URL at the given depth.
// Returns false if the URL has already been queued or visited.
func (f *Frontier) Push(url string, depth int) bool {
	if f.seen.TestString(url) && f.state.Seen(url) {
		return false
	}
	f.seen.AddString(url)
	return f.state.Push(url, depth)
}

// Pop returns the oldest pending entry.
func (f *Frontier) Pop() (docscrape.FrontierEntry, bool) {
	return f.state.Pop()
}

// Len returns the number of pending entries.
func (f *Frontier) Len() int {
	return f.state.Len()
}

// Seen returns true if the URL has been queued or visited.
func (f *Frontier) Seen(url string) bool {
	if !f.seen.TestString(url) {
		return false
	}
	return f.state.Seen(url)
}

// MarkVisited records a URL without queueing it, such as the final URL of
// a redirect.
func (f *Frontier) MarkVisited(url string) {
	f.seen.AddString(url)
	f.state.MarkVisited(url)
}

// State returns the wrapped state.
func (f *Frontier) State() *docscrape.FrontierState {
	return f.state
}
