package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/pressdoc"
	"github.com/fwojciec/pressdoc/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const styledBody = `<p style="text-align:center"><span style="color:#0000ff">인천공항 신규 취항</span></p>
<p align="center">하계 시즌 운항 확대</p>
<p>인천공항은 2023.12.31 기준 노선을 확대했다. 여객이 증가했다!</p>`

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	t.Run("splits header, sub-header and content", func(t *testing.T) {
		t.Parallel()

		got := goquery.NewClassifier().Classify(styledBody)

		assert.Equal(t, []string{"인천공항 신규 취항"}, got.Header)
		assert.Equal(t, []string{"하계 시즌 운항 확대"}, got.SubHeader)
		assert.Equal(t, []string{"인천공항은 2023.12.31 기준 노선을 확대했다", "여객이 증가했다"}, got.Content)
	})

	t.Run("strict policy marks colored text only", func(t *testing.T) {
		t.Parallel()

		c := goquery.NewClassifier(goquery.WithHeaderPolicy(pressdoc.PolicyStrict))

		got := c.Classify(styledBody)

		assert.Equal(t, []string{"인천공항 신규 취항"}, got.Header)
		assert.Nil(t, got.SubHeader)
		assert.Equal(t, []string{"하계 시즌 운항 확대인천공항은 2023.12.31 기준 노선을 확대했다", "여객이 증가했다"}, got.Content)
	})

	t.Run("background color is not a text color", func(t *testing.T) {
		t.Parallel()

		got := goquery.NewClassifier().Classify(`<p style="text-align: center; background-color: #eee">소제목</p><p>본문.</p>`)

		assert.Nil(t, got.Header)
		assert.Equal(t, []string{"소제목"}, got.SubHeader)
		assert.Equal(t, []string{"본문"}, got.Content)
	})

	t.Run("reads alignment case-insensitively", func(t *testing.T) {
		t.Parallel()

		got := goquery.NewClassifier().Classify(`<div ALIGN="Center"><span style="COLOR: red">제목</span></div><p>본문.</p>`)

		assert.Equal(t, []string{"제목"}, got.Header)
		assert.Nil(t, got.SubHeader)
	})

	t.Run("node dedup keeps identical text in separate elements", func(t *testing.T) {
		t.Parallel()

		html := `<p style="text-align:center">공지</p><div><p style="text-align:center">공지</p></div><p>본문.</p>`

		got := goquery.NewClassifier().Classify(html)

		assert.Equal(t, []string{"공지 공지"}, got.SubHeader)
		assert.Equal(t, []string{"본문"}, got.Content)
	})

	t.Run("text dedup collapses identical text", func(t *testing.T) {
		t.Parallel()

		html := `<p style="text-align:center">공지</p><div><p style="text-align:center">공지</p></div><p>본문.</p>`
		c := goquery.NewClassifier(goquery.WithDedupMode(pressdoc.DedupByText))

		got := c.Classify(html)

		assert.Equal(t, []string{"공지"}, got.SubHeader)
		assert.Equal(t, []string{"본문"}, got.Content)
	})

	t.Run("does not reclassify nested elements", func(t *testing.T) {
		t.Parallel()

		html := `<div style="text-align:center"><span style="color:red">큰 제목</span><span style="color:red">작은 제목</span></div><p>본문.</p>`

		got := goquery.NewClassifier().Classify(html)

		assert.Equal(t, []string{"큰 제목작은 제목"}, got.Header)
	})

	t.Run("interleaves table placeholders", func(t *testing.T) {
		t.Parallel()

		html := `<p>첫 문장. 둘째 문장.</p><table><tr><td>a</td></tr></table><p>셋째 문장.</p>`

		got := goquery.NewClassifier().Classify(html)

		assert.Equal(t, []string{"첫 문장", "{table1}", "둘째 문장", "a셋째 문장"}, got.Content)
	})

	t.Run("appends surplus table placeholders", func(t *testing.T) {
		t.Parallel()

		html := `<p>문장 하나.</p><table><tr><td></td></tr></table><table><tr><td></td></tr></table>`

		got := goquery.NewClassifier().Classify(html)

		assert.Equal(t, []string{"문장 하나", "{table1}", "{table2}"}, got.Content)
	})

	t.Run("emits one placeholder per table", func(t *testing.T) {
		t.Parallel()

		html := `<p>가. 나. 다. 라.</p>` + strings.Repeat(`<table><tr><td>x</td></tr></table>`, 3)
		c := goquery.NewClassifier()

		got := c.Classify(html)
		tables := c.ExtractTables(html)

		placeholders := 0
		for _, s := range got.Content {
			if strings.HasPrefix(s, "{table") {
				placeholders++
			}
		}
		assert.Len(t, tables, 3)
		assert.Equal(t, 3, placeholders)
	})

	t.Run("returns nil segments for empty input", func(t *testing.T) {
		t.Parallel()

		got := goquery.NewClassifier().Classify("   ")

		assert.Equal(t, pressdoc.BodySegments{}, got)
	})
}

func TestClassifySelection_Empty(t *testing.T) {
	t.Parallel()

	got := goquery.NewClassifier().ClassifySelection(nil)

	assert.Nil(t, got.Header)
	assert.Nil(t, got.SubHeader)
	assert.Nil(t, got.Content)
}

func TestClassifier_ExtractTables(t *testing.T) {
	t.Parallel()

	t.Run("returns html, text and flattened grid", func(t *testing.T) {
		t.Parallel()

		html := `<p>본문</p><table><tr><th>h1</th><th>h2</th></tr><tr><td colspan="2">v</td></tr></table>`

		tables := goquery.NewClassifier().ExtractTables(html)

		require.Len(t, tables, 1)
		assert.Contains(t, tables[0].HTML, "<table>")
		assert.Equal(t, "h1\nh2\nv", tables[0].Text)
		assert.Equal(t, [][]string{{"h1", "h2"}, {"v", "v"}}, tables[0].Data)
	})

	t.Run("returns empty slice without tables", func(t *testing.T) {
		t.Parallel()

		tables := goquery.NewClassifier().ExtractTables("<p>표 없음</p>")

		assert.NotNil(t, tables)
		assert.Empty(t, tables)
	})
}
