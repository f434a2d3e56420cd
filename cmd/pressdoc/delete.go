package main

import (
	"fmt"

	"github.com/fwojciec/pressdoc"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Store.DeleteArticle(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pressdoc.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted article %s\n", c.ID)
	return nil
}
