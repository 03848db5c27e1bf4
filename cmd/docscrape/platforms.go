package main

import (
	"fmt"
	"text/tabwriter"
)

// Run executes the platforms command.
func (c *PlatformsCmd) Run(deps *Dependencies) error {
	w := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	for _, name := range deps.Registry.List() {
		p := deps.Registry.Get(name)
		if p == nil {
			continue
		}
		fetch := "http"
		if p.Browser {
			fetch = "browser"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, fetch, p.Description)
	}
	return w.Flush()
}
