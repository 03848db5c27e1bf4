package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/docscrape"
)

// Ensure LoggingRegistry implements docscrape.ProfileRegistry.
var _ docscrape.ProfileRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a ProfileRegistry with logging for platform detection.
type LoggingRegistry struct {
	next   docscrape.ProfileRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next docscrape.ProfileRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Get delegates to the wrapped registry.
func (r *LoggingRegistry) Get(name string) *docscrape.Profile {
	return r.next.Get(name)
}

// Detect delegates to the wrapped registry and logs the chosen profile.
func (r *LoggingRegistry) Detect(pageURL, html string) *docscrape.Profile {
	begin := time.Now()
	p := r.next.Detect(pageURL, html)
	name := "(none)"
	if p != nil {
		name = p.Name
	}
	r.logger.Info("platform detection",
		"url", pageURL,
		"profile", name,
		"duration", time.Since(begin),
	)
	return p
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(p *docscrape.Profile) {
	r.next.Register(p)
}

// List delegates to the wrapped registry.
func (r *LoggingRegistry) List() []string {
	return r.next.List()
}
