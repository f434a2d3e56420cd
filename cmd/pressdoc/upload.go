package main

import (
	"fmt"

	"github.com/fwojciec/pressdoc"
)

// Run executes the upload command. Every file is attempted; the first
// failure is returned after the rest are uploaded.
func (c *UploadCmd) Run(deps *Dependencies) error {
	var firstErr error
	for _, path := range c.Files {
		name, err := deps.Objects.Upload(deps.Ctx, path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", path, pressdoc.ErrorMessage(err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s -> %s\n", path, name)
	}
	return firstErr
}
