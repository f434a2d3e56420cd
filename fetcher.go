package pressdoc

import (
	"context"
	"io"
)

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch returns the page HTML decoded to UTF-8.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// Downloader copies a binary resource, such as an attachment, to w.
type Downloader interface {
	Download(ctx context.Context, url string, w io.Writer) (int64, error)
}
