package main

import (
	"fmt"

	"github.com/fwojciec/docscrape"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	sources, err := deps.Sources.FindSources(deps.Ctx, docscrape.SourceFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	if len(sources) == 0 {
		fmt.Fprintln(deps.Stdout, "No sources found. Use 'docscrape scrape --save' to store one.")
		return nil
	}

	for _, s := range sources {
		articles, err := deps.Articles.FindArticles(deps.Ctx, docscrape.ArticleFilter{SourceID: &s.ID})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d articles\n", s.Name, s.Platform, s.EntryURL, len(articles))
	}

	return nil
}
