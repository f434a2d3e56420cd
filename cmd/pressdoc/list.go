package main

import (
	"fmt"

	"github.com/fwojciec/pressdoc"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	articles, err := deps.Store.FindArticles(deps.Ctx, pressdoc.ArticleFilter{
		Offset: c.Offset,
		Limit:  c.Limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pressdoc.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles found. Use 'pressdoc load' to import a crawl.")
		return nil
	}

	w := table.NewWriter()
	w.SetOutputMirror(deps.Stdout)
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"ID", "Date", "Title", "Tables", "URL"})
	for _, a := range articles {
		w.AppendRow(table.Row{a.ID, a.Date, a.Title, len(a.Tables), a.URL})
	}
	w.Render()
	return nil
}
