package main

import (
	"fmt"

	"github.com/fwojciec/pressdoc"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	articles, err := readArticles(c.Input)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pressdoc.ErrorMessage(err))
		return err
	}

	var summaries []pressdoc.DocumentSummary
	for _, a := range articles {
		if a.Failed() {
			continue
		}
		summaries = append(summaries, a.Summary())
	}

	if err := deps.Exporter.Export(c.Xlsx, summaries); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pressdoc.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Exported %d articles to %s\n", len(summaries), c.Xlsx)
	return nil
}
