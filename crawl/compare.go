package crawl

import "github.com/fwojciec/pressdoc"

// NeedsBrowser compares the list page fetched over plain HTTP with the same
// page rendered by a browser. It reports true when the rendered page lists
// more articles, which means the list is filled in by JavaScript. A parse
// error on the plain page also reports true.
func NeedsBrowser(httpHTML, browserHTML string, board pressdoc.Board, listings pressdoc.ListingParser) bool {
	httpItems, err := listings.ParseListing(httpHTML, board)
	if err != nil {
		return true
	}
	browserItems, err := listings.ParseListing(browserHTML, board)
	if err != nil {
		return false
	}
	return len(browserItems) > len(httpItems)
}
