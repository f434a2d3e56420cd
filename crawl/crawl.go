// Package crawl provides press-board crawling orchestration. It pages
// through a board's list, fetches and parses each new article and writes the
// collected articles to an output store.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/pressdoc"
	"github.com/fwojciec/pressdoc/bloom"
	"golang.org/x/sync/errgroup"
)

// Seen-article filter sizing. The rate is kept low because a false positive
// silently skips an article.
const (
	seenExpectedArticles = 100000
	seenFalsePositive    = 1e-7
)

// DefaultConcurrency is the number of articles fetched at once.
const DefaultConcurrency = 4

// Crawler orchestrates the crawling of a press board.
type Crawler struct {
	Fetcher  pressdoc.Fetcher
	Listings pressdoc.ListingParser
	Articles pressdoc.ArticleParser
	Output   pressdoc.OutputStore

	// Sitemaps discovers articles when Options.Sitemap is set.
	Sitemaps pressdoc.SitemapService

	// RateLimiter throttles requests per host. Optional.
	RateLimiter pressdoc.DomainLimiter

	Concurrency int
	RetryDelays []time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Options select what to crawl.
type Options struct {
	Board pressdoc.Board

	// StartPage is the first list page (1-based). Starting past the first
	// page resumes: stored articles are kept and their IDs skipped.
	// Starting at the first page backs up stored output and starts over.
	StartPage int

	// MaxPages is the last list page to visit; 0 visits pages until one
	// has no articles.
	MaxPages int

	// Sitemap discovers articles from the site's sitemaps instead of
	// paging through the list.
	Sitemap bool
}

// Result holds the outcome of a crawl operation.
type Result struct {
	Pages   int
	Saved   int
	Failed  int
	Skipped int
	// Total is the number of articles written, resumed ones included.
	Total int
	// Backup is the path of the previous output, if one was backed up.
	Backup string
	// StopErr records why paging stopped early, if it did.
	StopErr error
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Page      int
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressPage ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Crawl visits the board and writes every collected article to the output
// store. Articles that fail to fetch or parse are kept with their listing
// title, URL and error. A failing or empty list page ends paging; the
// articles collected so far are still written.
func (c *Crawler) Crawl(ctx context.Context, opts Options, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}
	if opts.StartPage < 1 {
		opts.StartPage = 1
	}

	seen := bloom.NewFilter(seenExpectedArticles, seenFalsePositive)
	result := &Result{}

	articles, err := c.prepare(opts, seen, result)
	if err != nil {
		return nil, err
	}

	if opts.Sitemap {
		if c.Sitemaps == nil {
			return nil, pressdoc.Errorf(pressdoc.EINVALID, "sitemap discovery is not configured")
		}
		urls, err := c.Sitemaps.DiscoverURLs(ctx, opts.Board.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("sitemap discovery: %w", err)
		}
		result.Pages = 1
		articles = append(articles, c.collect(ctx, 1, opts.Board.ArticleLinks(urls), seen, result, progress)...)
	} else {
		for page := opts.StartPage; opts.MaxPages == 0 || page <= opts.MaxPages; page++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			items, err := c.listPage(ctx, opts.Board, page)
			if err != nil {
				result.StopErr = err
				progress(ProgressEvent{Type: ProgressFailed, Page: page, URL: opts.Board.PageURL(page), Error: err})
				break
			}
			if len(items) == 0 {
				break
			}
			result.Pages++
			articles = append(articles, c.collect(ctx, page, items, seen, result, progress)...)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := pressdoc.NewOutput(c.now(), articles)
	if err := c.Output.Write(out); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}
	result.Total = out.TotalCount

	progress(ProgressEvent{Type: ProgressFinished, Completed: result.Saved + result.Failed, Total: result.Total})
	return result, nil
}

// prepare backs up or resumes stored output depending on the start page.
func (c *Crawler) prepare(opts Options, seen pressdoc.SeenSet, result *Result) ([]*pressdoc.Article, error) {
	if opts.StartPage == 1 || opts.Sitemap {
		backup, err := c.Output.Backup(c.now())
		if err != nil {
			return nil, fmt.Errorf("backing up output: %w", err)
		}
		result.Backup = backup
		return nil, nil
	}

	stored, err := c.Output.Load()
	if pressdoc.ErrorCode(err) == pressdoc.ENOTFOUND {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("loading output: %w", err)
	}
	for _, a := range stored.Articles {
		if id := opts.Board.ArticleID(a.URL); id != "" {
			seen.Add(id)
		}
	}
	return stored.Articles, nil
}

func (c *Crawler) listPage(ctx context.Context, board pressdoc.Board, page int) ([]pressdoc.ListingItem, error) {
	html, err := c.fetch(ctx, board.PageURL(page))
	if err != nil {
		return nil, fmt.Errorf("list page %d: %w", page, err)
	}
	items, err := c.Listings.ParseListing(html, board)
	if err != nil {
		return nil, fmt.Errorf("list page %d: %w", page, err)
	}
	return items, nil
}

// collect fetches the unseen items of one page concurrently and returns
// their articles in listing order.
func (c *Crawler) collect(ctx context.Context, page int, items []pressdoc.ListingItem, seen pressdoc.SeenSet, result *Result, progress ProgressFunc) []*pressdoc.Article {
	var fresh []pressdoc.ListingItem
	for _, item := range items {
		if !seen.Add(item.ID) {
			result.Skipped++
			continue
		}
		fresh = append(fresh, item)
	}
	progress(ProgressEvent{Type: ProgressPage, Page: page, Total: len(fresh)})

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	articles := make([]*pressdoc.Article, len(fresh))
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, item := range fresh {
		g.Go(func() error {
			article, err := c.article(gctx, item)
			if err != nil {
				article = &pressdoc.Article{Title: item.Title, URL: item.URL, Error: err.Error()}
			}
			articles[i] = article

			event := ProgressEvent{
				Type:      ProgressCompleted,
				Page:      page,
				Completed: int(completed.Add(1)),
				Total:     len(fresh),
				URL:       item.URL,
			}
			if err != nil {
				event.Type = ProgressFailed
				event.Error = err
			}
			progress(event)
			return nil
		})
	}
	_ = g.Wait()

	for _, a := range articles {
		if a.Failed() {
			result.Failed++
		} else {
			result.Saved++
		}
	}
	return articles
}

func (c *Crawler) article(ctx context.Context, item pressdoc.ListingItem) (*pressdoc.Article, error) {
	html, err := c.fetch(ctx, item.URL)
	if err != nil {
		return nil, err
	}
	article, err := c.Articles.Parse(html, item.URL)
	if err != nil {
		return nil, err
	}
	if article.Title == "" {
		article.Title = item.Title
	}
	article.ContentHash = ArticleHash(article)
	return article, nil
}

// fetch waits for the host's rate limit and fetches with retry.
func (c *Crawler) fetch(ctx context.Context, rawURL string) (string, error) {
	var html string
	err := Retry(ctx, c.retryDelays(), func(ctx context.Context) error {
		if c.RateLimiter != nil {
			u, err := url.Parse(rawURL)
			if err != nil {
				return Permanent(err)
			}
			if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
				return Permanent(err)
			}
		}
		var err error
		html, err = c.Fetcher.Fetch(ctx, rawURL)
		return err
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "", err
	}
	return html, err
}

func (c *Crawler) retryDelays() []time.Duration {
	if c.RetryDelays == nil {
		return DefaultRetryDelays()
	}
	return c.RetryDelays
}

func (c *Crawler) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
