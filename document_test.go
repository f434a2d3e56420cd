package pressdoc_test

import (
	"testing"

	"github.com/fwojciec/pressdoc"
	"github.com/stretchr/testify/assert"
)

func text(font string, size float64, content string) pressdoc.ParsedItem {
	return pressdoc.ParsedItem{Class: "Text", Font: font, FontSize: size, Content: content}
}

func TestExtractPressText(t *testing.T) {
	t.Parallel()

	t.Run("classifies by font and size", func(t *testing.T) {
		t.Parallel()

		doc := &pressdoc.ParsedDocument{Pages: map[string][]pressdoc.ParsedItem{
			"0": {
				text(pressdoc.HeadlineFont, 20, "공항 신규 노선 개설"),
				text(pressdoc.HeadlineFont, 15, "- 하계 시즌 운항 확대"),
				text(pressdoc.BodyFont, 15, "첫 문단"),
				text("굴림", 10, "각주"),
			},
			"1": {
				text(pressdoc.BodyFont, 15, "둘째 문단"),
			},
		}}

		got := pressdoc.ExtractPressText(doc)

		assert.Equal(t, "공항 신규 노선 개설", got.Title)
		assert.Equal(t, "- 하계 시즌 운항 확대", got.Subtitle)
		assert.Equal(t, []string{"첫 문단", "둘째 문단"}, got.Contents)
	})

	t.Run("orders pages numerically", func(t *testing.T) {
		t.Parallel()

		doc := &pressdoc.ParsedDocument{Pages: map[string][]pressdoc.ParsedItem{
			"10": {text(pressdoc.BodyFont, 15, "열")},
			"2":  {text(pressdoc.BodyFont, 15, "둘")},
		}}

		got := pressdoc.ExtractPressText(doc)

		assert.Equal(t, []string{"둘", "열"}, got.Contents)
	})

	t.Run("continues title ending in comma", func(t *testing.T) {
		t.Parallel()

		doc := &pressdoc.ParsedDocument{Pages: map[string][]pressdoc.ParsedItem{
			"0": {
				text(pressdoc.HeadlineFont, 18, "여객 증가,"),
				text(pressdoc.HeadlineFont, 18, "역대 최대"),
			},
		}}

		got := pressdoc.ExtractPressText(doc)

		assert.Equal(t, "여객 증가, 역대 최대", got.Title)
	})

	t.Run("continues subtitle ending in ellipsis", func(t *testing.T) {
		t.Parallel()

		doc := &pressdoc.ParsedDocument{Pages: map[string][]pressdoc.ParsedItem{
			"0": {
				text(pressdoc.HeadlineFont, 14, "운항 확대…"),
				text(pressdoc.HeadlineFont, 14, "노선 다변화"),
			},
		}}

		got := pressdoc.ExtractPressText(doc)

		assert.Equal(t, "운항 확대… 노선 다변화", got.Subtitle)
	})

	t.Run("ignores non-text items", func(t *testing.T) {
		t.Parallel()

		doc := &pressdoc.ParsedDocument{Pages: map[string][]pressdoc.ParsedItem{
			"0": {{Class: "Table", Font: pressdoc.BodyFont, Content: "표"}},
		}}

		assert.Empty(t, pressdoc.ExtractPressText(doc).Contents)
	})

	t.Run("handles nil document", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, pressdoc.PressText{}, pressdoc.ExtractPressText(nil))
	})
}

func TestParsedDocument_MetaTableHTML(t *testing.T) {
	t.Parallel()

	doc := &pressdoc.ParsedDocument{Pages: map[string][]pressdoc.ParsedItem{
		pressdoc.MetaPage: {
			{Class: "Text"},
			{Class: "Table", TableContent: &pressdoc.TableContent{HTML: "<table></table>"}},
		},
	}}

	assert.Equal(t, "<table></table>", doc.MetaTableHTML())
}

func TestNormalizeDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"2023. 12. 31.", "2023-12-31"},
		{"2023.1.5", "2023-01-05"},
		{"작성일 2024.02.29", "2024-02-29"},
		{"2024년 3월 9일", "2024-03-09"},
		{"2024.13.01", ""},
		{"미정", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pressdoc.NormalizeDate(tt.in))
		})
	}
}

func TestPressInfo_Summary(t *testing.T) {
	t.Parallel()

	info := &pressdoc.PressInfo{
		Filename:  "a.hwp",
		PressMeta: pressdoc.PressMeta{CreationDate: "2023. 11. 2."},
		PressText: pressdoc.PressText{Title: "제목"},
	}

	assert.Equal(t, pressdoc.DocumentSummary{Filename: "a.hwp", Date: "2023-11-02", Title: "제목"}, info.Summary())
}
