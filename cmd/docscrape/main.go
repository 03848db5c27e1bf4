package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docscrape"
	"github.com/fwojciec/docscrape/goldmark"
	"github.com/fwojciec/docscrape/goquery"
	"github.com/fwojciec/docscrape/htmltomarkdown"
	dshttp "github.com/fwojciec/docscrape/http"
	"github.com/fwojciec/docscrape/readability"
	"github.com/fwojciec/docscrape/rod"
	dsslog "github.com/fwojciec/docscrape/slog"
	"github.com/fwojciec/docscrape/sqlite"
	"github.com/fwojciec/docscrape/trafilatura"
	"github.com/fwojciec/docscrape/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, errorText(err))
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when --db is not given. Set before calling Run().
	DBPath string

	// SQLite database, opened only by commands that need it.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docscrape"),
		kong.Description("Scrape documentation sites into normalized Markdown"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docscrape --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)

	profiles := docscrape.DefaultProfiles()
	if cli.Profiles != "" {
		profiles, err = yaml.LoadProfilesFile(cli.Profiles, profiles)
		if err != nil {
			return err
		}
	}
	m.wire(deps, profiles)

	if needsDB(kongCtx.Command(), cli) {
		path := m.DBPath
		if cli.DB != "" {
			path = cli.DB
		}
		m.DB = sqlite.NewDB(path)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set DOCSCRAPE_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", path, err)
		}
		defer m.Close()

		deps.Sources = sqlite.NewSourceService(m.DB)
		deps.Articles = sqlite.NewArticleService(m.DB)
	}

	return kongCtx.Run(deps)
}

// wire builds the extraction pipeline and fetcher constructors.
func (m *Main) wire(deps *Dependencies, profiles []*docscrape.Profile) {
	logger := deps.Logger

	registry := goquery.NewRegistry(goquery.NewDetector(), profiles...)
	deps.Registry = dsslog.NewLoggingRegistry(registry, logger)

	engine := goquery.NewEngine(
		goquery.WithConverter(htmltomarkdown.NewConverter()),
		goquery.WithLocator(goquery.LocatorChain{
			trafilatura.NewLocator(),
			readability.NewLocator(),
		}),
	)
	deps.Extractor = dsslog.NewLoggingExtractor(engine, logger)
	deps.Links = engine

	deps.Sitemaps = dsslog.NewLoggingSitemapService(dshttp.NewSitemapService(nil), logger)
	deps.Renderer = goldmark.NewRenderer()

	deps.NewHTTPFetcher = func(timeout time.Duration) docscrape.Fetcher {
		return dsslog.NewLoggingFetcher(dshttp.NewFetcher(dshttp.WithTimeout(timeout)), logger)
	}
	deps.NewBrowserFetcher = func(p *docscrape.Profile, o BrowserOptions) (docscrape.Fetcher, error) {
		opts := append(rod.ForProfile(p), rod.WithFetchTimeout(o.Timeout), rod.WithStealth(o.Stealth), rod.WithLogger(logger))
		if o.UserDataDir != "" {
			opts = append(opts, rod.WithManagerOptions(rod.WithUserDataDir(o.UserDataDir)))
		}
		f, err := rod.NewFetcher(opts...)
		if err != nil {
			return nil, err
		}
		return dsslog.NewLoggingFetcher(f, logger), nil
	}
}

// needsDB reports whether the selected command reads or writes the database.
func needsDB(command string, cli *CLI) bool {
	name, _, _ := strings.Cut(command, " ")
	switch name {
	case "list", "export", "delete":
		return true
	case "scrape":
		return cli.Scrape.Save
	}
	return false
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "docscrape.db"
	}
	dir := filepath.Join(home, ".docscrape")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "docscrape.db")
}

// errorText returns the user-facing message of an application error and
// the full text of anything else.
func errorText(err error) string {
	if docscrape.ErrorCode(err) == docscrape.EINTERNAL {
		return err.Error()
	}
	return docscrape.ErrorMessage(err)
}
