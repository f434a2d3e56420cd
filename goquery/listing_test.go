package goquery_test

import (
	"testing"

	"github.com/fwojciec/pressdoc"
	"github.com/fwojciec/pressdoc/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingParser_ParseListing(t *testing.T) {
	t.Parallel()

	board := pressdoc.Board{BaseURL: "https://www.airport.kr", Path: "/bbs/co_ko/84/"}

	t.Run("extracts article links of the board", func(t *testing.T) {
		t.Parallel()

		html := `<ul>
	<li><a href="/bbs/co_ko/84/100/artclView.do">첫 글</a></li>
	<li><a href="/bbs/co_ko/84/101/artclView.do"> 둘째 글 </a></li>
	<li><a href="/bbs/co_ko/84/100/artclView.do">첫 글 (수정)</a></li>
	<li><a href="/bbs/co_ko/85/5/artclView.do">다른 게시판</a></li>
	<li><a href="/bbs/co_ko/84/artclList.do">목록</a></li>
</ul>`

		items, err := goquery.NewListingParser().ParseListing(html, board)

		require.NoError(t, err)
		assert.Equal(t, []pressdoc.ListingItem{
			{ID: "100", Title: "첫 글 (수정)", URL: "https://www.airport.kr/bbs/co_ko/84/100/artclView.do"},
			{ID: "101", Title: "둘째 글", URL: "https://www.airport.kr/bbs/co_ko/84/101/artclView.do"},
		}, items)
	})

	t.Run("returns nothing for a page without links", func(t *testing.T) {
		t.Parallel()

		items, err := goquery.NewListingParser().ParseListing("<p>게시물이 없습니다</p>", board)

		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("rejects invalid base URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewListingParser().ParseListing("", pressdoc.Board{BaseURL: "://bad"})

		assert.Equal(t, pressdoc.EINVALID, pressdoc.ErrorCode(err))
	})
}
