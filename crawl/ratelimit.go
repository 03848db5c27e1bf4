package crawl

import (
	"context"
	"net"
	"strings"
	"sync"

	"github.com/fwojciec/docscrape"
	"golang.org/x/time/rate"
)

var _ docscrape.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter keeps one token bucket per host so a crawl never exceeds
// the configured request rate against any single server.
type DomainLimiter struct {
	limit rate.Limit
	burst int

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// LimiterOption configures a DomainLimiter.
type LimiterOption func(*DomainLimiter)

// WithBurst lets up to n requests to a host through back to back.
func WithBurst(n int) LimiterOption {
	return func(d *DomainLimiter) {
		if n > 0 {
			d.burst = n
		}
	}
}

// NewDomainLimiter returns a limiter allowing rps requests per second to
// each host. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64, opts ...LimiterOption) *DomainLimiter {
	d := &DomainLimiter{
		limit:   rate.Inf,
		burst:   1,
		buckets: make(map[string]*rate.Limiter),
	}
	if rps > 0 {
		d.limit = rate.Limit(rps)
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Wait blocks until host may be requested again or ctx is done.
// Hosts are matched case-insensitively and without their port.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	return d.bucket(bucketKey(host)).Wait(ctx)
}

func (d *DomainLimiter) bucket(key string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.buckets[key]
	if !ok {
		b = rate.NewLimiter(d.limit, d.burst)
		d.buckets[key] = b
	}
	return b
}

func bucketKey(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(host)
}
