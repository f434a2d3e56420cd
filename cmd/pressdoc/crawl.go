package main

import (
	"fmt"

	"github.com/fwojciec/pressdoc"
	"github.com/fwojciec/pressdoc/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	cfg := deps.Config.Crawler
	opts := crawl.Options{
		Board:     cfg.Board,
		StartPage: cfg.StartPage,
		MaxPages:  cfg.MaxPages,
		Sitemap:   c.Sitemap,
	}
	if c.StartPage > 0 {
		opts.StartPage = c.StartPage
	}
	if c.MaxPages > 0 {
		opts.MaxPages = c.MaxPages
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressPage:
			fmt.Fprintf(deps.Stdout, "Page %d: %d new articles\n", event.Page, event.Total)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", crawl.TruncateURL(event.URL, 80), event.Error)
		case crawl.ProgressCompleted, crawl.ProgressFinished:
			// Summary printed after crawl completes
		}
	}

	result, err := deps.Crawler.Crawl(deps.Ctx, opts, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %s\n", pressdoc.ErrorMessage(err))
		return err
	}

	if result.Backup != "" {
		fmt.Fprintf(deps.Stdout, "Backed up previous output to %s\n", result.Backup)
	}
	if result.StopErr != nil {
		fmt.Fprintf(deps.Stderr, "stopped paging: %v\n", result.StopErr)
	}
	fmt.Fprintf(deps.Stdout, "Saved %d articles (%d failed, %d skipped) from %d pages; %d in output\n",
		result.Saved, result.Failed, result.Skipped, result.Pages, result.Total)
	return nil
}
