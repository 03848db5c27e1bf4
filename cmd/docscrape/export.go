package main

import (
	"fmt"

	"github.com/fwojciec/docscrape"
	"github.com/fwojciec/docscrape/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	source, err := findSource(deps, c.Name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	articles, err := deps.Articles.FindArticles(deps.Ctx, docscrape.ArticleFilter{SourceID: &source.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	var opts []fs.ExporterOption
	if c.Format == "html" {
		opts = append(opts, fs.WithHTMLRenderer(deps.Renderer))
	}
	exporter := fs.NewExporter(c.Output, opts...)
	if err := exporter.Export(deps.Ctx, source.Name, articles); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %s (%d articles)\n", exporter.Path(source.Name), len(articles))
	return nil
}

// findSource looks a source up by name.
func findSource(deps *Dependencies, name string) (*docscrape.Source, error) {
	sources, err := deps.Sources.FindSources(deps.Ctx, docscrape.SourceFilter{Name: &name})
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, docscrape.Errorf(docscrape.ENOTFOUND, "source %q not found. Use 'docscrape list' to see stored sources.", name)
	}
	return sources[0], nil
}
