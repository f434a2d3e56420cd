package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/pressdoc"
)

// Run executes the preview command.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	title, content := "", html
	if !c.Raw {
		result, err := deps.Extractor.Extract(html)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error extracting content: %s\n", pressdoc.ErrorMessage(err))
			return err
		}
		if strings.TrimSpace(result.ContentHTML) == "" {
			fmt.Fprintln(deps.Stderr, "No main content found. Use --raw to convert the whole page.")
			return pressdoc.Errorf(pressdoc.ENOTFOUND, "no main content in %s", c.URL)
		}
		title, content = result.Title, result.ContentHTML
	}

	md, err := deps.Converter.Convert(content)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error converting: %s\n", pressdoc.ErrorMessage(err))
		return err
	}

	if title != "" {
		fmt.Fprintf(deps.Stdout, "# %s\n\n", title)
	}
	fmt.Fprintln(deps.Stdout, strings.TrimSpace(md))
	return nil
}
