//go:build integration

package http_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/pressdoc"
	"github.com/fwojciec/pressdoc/goquery"
	pressdochttp "github.com/fwojciec/pressdoc/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Integration_AirportBoard(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	board := pressdoc.Board{
		BaseURL: "https://www.airport.kr",
		ListURL: "https://www.airport.kr/co_ko/664/subview.do",
		Path:    "/bbs/co_ko/84/",
	}

	html, err := pressdochttp.NewFetcher().Fetch(ctx, board.PageURL(2))
	require.NoError(t, err)

	items, err := goquery.NewListingParser().ParseListing(html, board)
	require.NoError(t, err)

	assert.NotEmpty(t, items, "expected press releases on the second list page")
	for _, item := range items[:min(5, len(items))] {
		t.Logf("  - %s %s", item.ID, item.Title)
	}
}
