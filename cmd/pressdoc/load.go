package main

import (
	"fmt"

	"github.com/fwojciec/pressdoc"
)

// Run executes the load command. Articles already stored under the same URL
// are left untouched.
func (c *LoadCmd) Run(deps *Dependencies) error {
	articles, err := readArticles(c.Input)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pressdoc.ErrorMessage(err))
		return err
	}

	var loaded, existing, failed int
	for _, a := range articles {
		if a.Failed() {
			failed++
			continue
		}
		err := deps.Store.CreateArticle(deps.Ctx, a)
		switch {
		case pressdoc.ErrorCode(err) == pressdoc.ECONFLICT:
			existing++
		case err != nil:
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", a.URL, pressdoc.ErrorMessage(err))
			return err
		default:
			loaded++
		}
	}

	fmt.Fprintf(deps.Stdout, "Loaded %d articles (%d already stored, %d failed crawls skipped)\n",
		loaded, existing, failed)
	return nil
}
