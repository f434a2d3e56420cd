package main

import (
	"fmt"

	"github.com/fwojciec/pressdoc"
	"github.com/fwojciec/pressdoc/fs"
)

// Run executes the markdown command.
func (c *MarkdownCmd) Run(deps *Dependencies) error {
	articles, err := readArticles(c.Input)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pressdoc.ErrorMessage(err))
		return err
	}

	writer := fs.NewWriter(c.Dir, deps.Formatter)
	var written, skipped int
	for _, a := range articles {
		if a.Failed() {
			skipped++
			continue
		}
		path, err := writer.WriteArticle(a)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", a.URL, pressdoc.ErrorMessage(err))
			skipped++
			continue
		}
		written++
		fmt.Fprintln(deps.Stdout, path)
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d articles to %s (%d skipped)\n", written, c.Dir, skipped)
	return nil
}
