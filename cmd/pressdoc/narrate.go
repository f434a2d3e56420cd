package main

import (
	"fmt"

	"github.com/fwojciec/pressdoc"
)

// TableNarration is the narration of one article table.
type TableNarration struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	// Table is the 1-based number used in the article's {tableN} placeholder.
	Table     int      `json:"table"`
	Sentences []string `json:"sentences"`
}

// Run executes the narrate command.
func (c *NarrateCmd) Run(deps *Dependencies) error {
	articles, err := readArticles(c.Input)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pressdoc.ErrorMessage(err))
		return err
	}

	narrations := []TableNarration{}
	for _, a := range articles {
		for i, t := range a.Tables {
			sentences, err := deps.Narrator.Narrate(deps.Ctx, t.Parsed())
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s %s: %s\n", a.URL, pressdoc.TablePlaceholder(i+1), pressdoc.ErrorMessage(err))
				return err
			}
			narrations = append(narrations, TableNarration{
				URL:       a.URL,
				Title:     a.Title,
				Table:     i + 1,
				Sentences: sentences,
			})
		}
	}

	if c.Format == "json" {
		return writeJSON(deps.Stdout, narrations)
	}
	if len(narrations) == 0 {
		fmt.Fprintln(deps.Stdout, "No tables found.")
		return nil
	}
	for _, n := range narrations {
		fmt.Fprintf(deps.Stdout, "## %s %s\n", n.Title, pressdoc.TablePlaceholder(n.Table))
		for _, s := range n.Sentences {
			fmt.Fprintf(deps.Stdout, "- %s\n", s)
		}
		fmt.Fprintln(deps.Stdout)
	}
	return nil
}
