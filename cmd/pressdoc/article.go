package main

import (
	"fmt"

	"github.com/fwojciec/pressdoc"
)

// Run executes the article command.
func (c *ArticleCmd) Run(deps *Dependencies) error {
	var html, pageURL string
	if isURL(c.Source) {
		fetched, err := deps.Fetcher.Fetch(deps.Ctx, c.Source)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		html, pageURL = fetched, c.Source
	} else {
		read, err := readSource(deps, c.Source)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		html, pageURL = read, c.URL
	}

	article, err := deps.Articles.Parse(html, pageURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pressdoc.ErrorMessage(err))
		return err
	}

	switch c.Format {
	case "markdown":
		text, err := deps.Formatter.FormatArticle(article)
		if err != nil {
			return err
		}
		fmt.Fprint(deps.Stdout, text)
	case "text":
		fmt.Fprintln(deps.Stdout, pressdoc.FormatArticleText(article))
	default:
		return writeJSON(deps.Stdout, article)
	}
	return nil
}
