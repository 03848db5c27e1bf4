// Package rod fetches JavaScript-rendered pages with a headless Chrome.
package rod

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fwojciec/docscrape"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// DefaultFetchTimeout bounds one page load including the wait selector and
// render delay.
const DefaultFetchTimeout = 30 * time.Second

// DefaultWaitTimeout bounds the wait for the wait selector. Pages that never
// show it, such as section indexes, are read as rendered once it expires.
const DefaultWaitTimeout = 10 * time.Second

// serializeJS returns the rendered document, inlining open shadow roots as
// declarative shadow DOM templates so their content survives serialization.
const serializeJS = `() => {
	const roots = [];
	const walk = (node) => {
		for (const el of node.querySelectorAll('*')) {
			if (el.shadowRoot) {
				roots.push(el.shadowRoot);
				walk(el.shadowRoot);
			}
		}
	};
	walk(document);
	const root = document.documentElement;
	if (roots.length === 0 || typeof root.getHTML !== 'function') {
		return root.outerHTML;
	}
	return '<html>' + root.getHTML({serializableShadowRoots: true, shadowRoots: roots}) + '</html>';
}`

// Ensure Fetcher implements docscrape.Fetcher at compile time.
var _ docscrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	closed  atomic.Bool

	timeout      time.Duration
	waitSelector string
	waitTimeout  time.Duration
	renderDelay  time.Duration
	logger       *slog.Logger
	stealth      bool
	managerOpts  []ManagerOption
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds each Fetch call.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithWaitSelector makes Fetch wait until an element matching selector
// is present before reading the page.
func WithWaitSelector(selector string) Option {
	return func(f *Fetcher) {
		f.waitSelector = selector
	}
}

// WithWaitTimeout bounds the wait for the wait selector.
func WithWaitTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.waitTimeout = d
	}
}

// WithLogger sets the logger that reports pages read without the wait
// selector.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// WithRenderDelay adds a settle delay after load and the wait selector.
func WithRenderDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.renderDelay = d
	}
}

// WithStealth opens tabs with automation fingerprints masked, for help
// centres that block headless browsers.
func WithStealth(enabled bool) Option {
	return func(f *Fetcher) {
		f.stealth = enabled
	}
}

// WithManagerOptions passes options to the underlying BrowserManager.
func WithManagerOptions(opts ...ManagerOption) Option {
	return func(f *Fetcher) {
		f.managerOpts = append(f.managerOpts, opts...)
	}
}

// ForProfile returns the options a profile asks for.
func ForProfile(p *docscrape.Profile) []Option {
	return []Option{
		WithWaitSelector(p.WaitSelector),
		WithRenderDelay(p.RenderDelay),
	}
}

// NewFetcher launches a browser. Close must be called when the Fetcher is
// no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		waitTimeout: DefaultWaitTimeout,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(f.managerOpts...)
	if err != nil {
		return nil, err
	}
	f.manager = manager
	return f, nil
}

// Fetch navigates to the URL and returns the rendered page. The returned
// URL is the one the browser ended up on.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*docscrape.Page, error) {
	if f.closed.Load() {
		return nil, docscrape.Errorf(docscrape.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.openPage()
	if err != nil {
		return nil, docscrape.Errorf(docscrape.EFETCH, "opening tab: %v", err)
	}
	defer page.Close()
	defer f.manager.PageDone()

	page = page.Context(ctx)
	html, final, err := f.render(ctx, page, url)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, docscrape.Errorf(docscrape.EFETCH, "rendering %s: %v", url, err)
	}
	return &docscrape.Page{URL: final, HTML: html}, nil
}

func (f *Fetcher) openPage() (*rod.Page, error) {
	if f.stealth {
		return stealth.Page(f.manager.Browser())
	}
	return f.manager.Browser().Page(proto.TargetCreateTarget{})
}

func (f *Fetcher) render(ctx context.Context, page *rod.Page, url string) (html, final string, err error) {
	if err := page.Navigate(url); err != nil {
		return "", "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", "", err
	}
	if f.waitSelector != "" {
		wp := page.Timeout(f.waitTimeout)
		_, err := wp.Element(f.waitSelector)
		wp.CancelTimeout()
		if err != nil {
			if ctx.Err() != nil {
				return "", "", ctx.Err()
			}
			f.logger.Warn("wait selector not found", "url", url, "selector", f.waitSelector, "error", err)
		}
	}
	if f.renderDelay > 0 {
		t := time.NewTimer(f.renderDelay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return "", "", ctx.Err()
		}
	}

	obj, err := page.Eval(serializeJS)
	if err != nil {
		return "", "", err
	}
	info, err := page.Info()
	if err != nil {
		return "", "", err
	}
	return obj.Value.Str(), info.URL, nil
}

// LauncherPID returns the process ID of the browser.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// Close releases browser resources. It is safe to call more than once.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}
