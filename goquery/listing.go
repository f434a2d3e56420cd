package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pressdoc"
)

var _ pressdoc.ListingParser = (*ListingParser)(nil)

// ListingParser extracts article links from board list pages.
type ListingParser struct{}

// NewListingParser creates a new ListingParser.
func NewListingParser() *ListingParser {
	return &ListingParser{}
}

// ParseListing returns the board's article links on the page. Links are
// resolved against the board's base URL. An article linked more than once
// keeps its first position and its last title.
func (p *ListingParser) ParseListing(markup string, board pressdoc.Board) ([]pressdoc.ListingItem, error) {
	base, err := url.Parse(board.BaseURL)
	if err != nil {
		return nil, pressdoc.Errorf(pressdoc.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := parseHTML(markup)
	if err != nil {
		return nil, pressdoc.Errorf(pressdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	index := make(map[string]int)
	var items []pressdoc.ListingItem
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !strings.Contains(href, board.Path) || !strings.HasSuffix(href, "/artclView.do") {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		item := pressdoc.ListingItem{
			Title: textOf(a, ""),
			URL:   base.ResolveReference(ref).String(),
		}
		item.ID = board.ArticleID(href)
		if item.ID == "" {
			item.ID = item.URL
		}

		if i, ok := index[item.ID]; ok {
			items[i] = item
			return
		}
		index[item.ID] = len(items)
		items = append(items, item)
	})
	return items, nil
}
