package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docscrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Registry  docscrape.ProfileRegistry
	Extractor docscrape.ArticleExtractor
	Links     docscrape.LinkDiscoverer
	Sitemaps  docscrape.SitemapService
	Renderer  docscrape.HTMLRenderer

	// Set only when a database is open.
	Sources  docscrape.SourceService
	Articles docscrape.ArticleService

	// Fetcher constructors, called once per scrape.
	NewHTTPFetcher    func(timeout time.Duration) docscrape.Fetcher
	NewBrowserFetcher func(p *docscrape.Profile, opts BrowserOptions) (docscrape.Fetcher, error)

	// RetryDelays overrides the crawler's backoff; nil keeps the default.
	RetryDelays []time.Duration
}

// BrowserOptions configures the headless browser fetcher.
type BrowserOptions struct {
	Timeout     time.Duration
	UserDataDir string
	Stealth     bool
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB       string `name:"db" env:"DOCSCRAPE_DB" help:"SQLite database path"`
	Profiles string `name:"profiles" env:"DOCSCRAPE_PROFILES" type:"path" help:"YAML file with extra or overriding platform profiles"`
	Verbose  bool   `short:"v" help:"Log every fetch and extraction to stderr"`

	Scrape    ScrapeCmd    `cmd:"" help:"Crawl a documentation site and export it as one document"`
	Platforms PlatformsCmd `cmd:"" help:"List known platform profiles"`
	List      ListCmd      `cmd:"" help:"List stored sources"`
	Export    ExportCmd    `cmd:"" help:"Export a stored source without refetching"`
	Delete    DeleteCmd    `cmd:"" help:"Delete a stored source and its articles"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL         string        `arg:"" help:"Entry URL of the documentation site"`
	Platform    string        `short:"p" help:"Platform profile (detected from the entry page when empty)"`
	Name        string        `short:"n" help:"Export name (defaults to the site host)"`
	Output      string        `short:"o" default:"." type:"path" help:"Output directory"`
	Format      string        `enum:"markdown,html" default:"markdown" help:"Export format (markdown, html)"`
	Files       bool          `help:"Also write one Markdown file per article"`
	MaxPages    int           `default:"1000" help:"Maximum pages to fetch"`
	MaxDepth    int           `default:"-1" help:"Maximum link depth (-1 keeps the profile's)"`
	Browser     bool          `help:"Fetch pages with a headless browser"`
	Probe       bool          `help:"Compare plain and browser fetches of the entry page to pick a fetcher"`
	UserDataDir string        `type:"path" help:"Browser profile directory with an existing login session"`
	Stealth     bool          `help:"Mask headless browser fingerprints"`
	Timeout     time.Duration `short:"t" default:"30s" help:"Fetch timeout per page"`
	RPS         float64       `name:"rps" default:"1" help:"Requests per second per host"`
	Sitemap     bool          `help:"Seed the crawl with in-scope sitemap URLs"`
	Filter      []string      `short:"F" help:"Only follow URLs matching regex (repeatable)"`
	Exclude     []string      `short:"X" help:"Never follow URLs matching regex (repeatable)"`
	Save        bool          `help:"Store articles in the database"`
}

// PlatformsCmd is the "platforms" subcommand.
type PlatformsCmd struct{}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Name   string `arg:"" help:"Source name"`
	Output string `short:"o" default:"." type:"path" help:"Output directory"`
	Format string `enum:"markdown,html" default:"markdown" help:"Export format (markdown, html)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Source name"`
	Force bool   `help:"Confirm deletion"`
}
