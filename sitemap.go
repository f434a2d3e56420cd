package pressdoc

import "context"

// SitemapService discovers URLs from website sitemaps.
type SitemapService interface {
	// DiscoverURLs finds all URLs from a site's sitemap. It first checks
	// robots.txt for sitemap directives, then falls back to /sitemap.xml.
	// Sitemap indexes are resolved recursively.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}

// ArticleLinks keeps the URLs that are article view links of the board and
// turns them into listing items. Duplicate IDs are dropped.
func (b Board) ArticleLinks(urls []string) []ListingItem {
	seen := make(map[string]bool)
	var items []ListingItem
	for _, u := range urls {
		id := b.ArticleID(u)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		items = append(items, ListingItem{ID: id, URL: u})
	}
	return items
}
