package docscrape

import "context"

// FrontierEntry is a URL waiting to be crawled, with its link distance
// from the entry page.
type FrontierEntry struct {
	URL   string
	Depth int
}

// FrontierState is the complete state of one crawl: every URL ever queued
// and the URLs still waiting. It only grows; Visited is never pruned. The
// state is owned by its caller and handed to each crawl step explicitly.
type FrontierState struct {
	Visited map[string]bool
	Pending []FrontierEntry
}

// NewFrontierState returns an empty state.
func NewFrontierState() *FrontierState {
	return &FrontierState{Visited: make(map[string]bool)}
}

// Push queues a normalized URL. It returns false if the URL was already
// queued or processed.
func (s *FrontierState) Push(url string, depth int) bool {
	if s.Visited[url] {
		return false
	}
	s.Visited[url] = true
	s.Pending = append(s.Pending, FrontierEntry{URL: url, Depth: depth})
	return true
}

// Pop removes and returns the oldest pending entry.
func (s *FrontierState) Pop() (FrontierEntry, bool) {
	if len(s.Pending) == 0 {
		return FrontierEntry{}, false
	}
	e := s.Pending[0]
	s.Pending = s.Pending[1:]
	return e, true
}

// MarkVisited records a URL as processed without queueing it, e.g. the
// final URL of a redirect.
func (s *FrontierState) MarkVisited(url string) {
	s.Visited[url] = true
}

// Seen reports whether the URL was queued or processed.
func (s *FrontierState) Seen(url string) bool {
	return s.Visited[url]
}

// Len returns the number of pending entries.
func (s *FrontierState) Len() int {
	return len(s.Pending)
}

// URLFrontier manages a crawl queue with deduplication.
type URLFrontier interface {
	// Push adds a normalized URL at the given depth.
	// Returns false if the URL has already been seen.
	Push(url string, depth int) bool

	// Pop returns the next URL in discovery order.
	// Returns false if the frontier is empty.
	Pop() (FrontierEntry, bool)

	// Len returns the number of URLs in the queue.
	Len() int

	// Seen returns true if the URL has been processed or queued.
	Seen(url string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
