package mock

import (
	"context"

	"github.com/fwojciec/pressdoc"
)

var _ pressdoc.ListingParser = (*ListingParser)(nil)

// ListingParser is a mock implementation of pressdoc.ListingParser.
type ListingParser struct {
	ParseListingFn func(html string, board pressdoc.Board) ([]pressdoc.ListingItem, error)
}

func (p *ListingParser) ParseListing(html string, board pressdoc.Board) ([]pressdoc.ListingItem, error) {
	return p.ParseListingFn(html, board)
}

var _ pressdoc.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of pressdoc.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL)
}
