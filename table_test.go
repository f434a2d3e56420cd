package pressdoc_test

import (
	"testing"

	"github.com/fwojciec/pressdoc"
	"github.com/stretchr/testify/assert"
)

func TestParseSpan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"empty", "", 1},
		{"numeric", "3", 3},
		{"surrounding space", " 2 ", 2},
		{"non-numeric", "two", 1},
		{"zero", "0", 1},
		{"negative", "-4", 1},
		{"capped", "5000", pressdoc.MaxColSpan},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pressdoc.ParseSpan(tt.value, pressdoc.MaxColSpan))
		})
	}
}

func TestNormalizeRows(t *testing.T) {
	t.Parallel()

	t.Run("returns literal matrix without merges", func(t *testing.T) {
		t.Parallel()

		grid := pressdoc.NormalizeRows([][]pressdoc.Cell{
			{{Content: "a", ColSpan: 1, RowSpan: 1}, {Content: "b", ColSpan: 1, RowSpan: 1}},
			{{Content: "c", ColSpan: 1, RowSpan: 1}, {Content: "d", ColSpan: 1, RowSpan: 1}},
		})

		assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, grid)
	})

	t.Run("fills merged rectangle", func(t *testing.T) {
		t.Parallel()

		grid := pressdoc.NormalizeRows([][]pressdoc.Cell{
			{{Content: "공통", ColSpan: 2, RowSpan: 2}, {Content: "r1c3", ColSpan: 1, RowSpan: 1}},
			{{Content: "r2c3", ColSpan: 1, RowSpan: 1}},
		})

		assert.Equal(t, [][]string{
			{"공통", "공통", "r1c3"},
			{"공통", "공통", "r2c3"},
		}, grid)
	})

	t.Run("first placement wins on overlap", func(t *testing.T) {
		t.Parallel()

		grid := pressdoc.NormalizeRows([][]pressdoc.Cell{
			{{Content: "a", ColSpan: 1, RowSpan: 1}, {Content: "down", ColSpan: 1, RowSpan: 2}},
			{{Content: "wide", ColSpan: 3, RowSpan: 1}},
		})

		assert.Equal(t, [][]string{
			{"a", "down"},
			{"wide", "down", "wide"},
		}, grid)
	})

	t.Run("empty merged cell leaves its positions free", func(t *testing.T) {
		t.Parallel()

		grid := pressdoc.NormalizeRows([][]pressdoc.Cell{
			{{Content: "", ColSpan: 1, RowSpan: 2}, {Content: "x", ColSpan: 1, RowSpan: 1}},
			{{Content: "y", ColSpan: 1, RowSpan: 1}},
		})

		assert.Equal(t, [][]string{{"", "x"}, {"y"}}, grid)
	})

	t.Run("later cell fills an empty spilled position", func(t *testing.T) {
		t.Parallel()

		grid := pressdoc.NormalizeRows([][]pressdoc.Cell{
			{{Content: "a", ColSpan: 1, RowSpan: 1}, {Content: "", ColSpan: 1, RowSpan: 2}},
			{{Content: "b", ColSpan: 2, RowSpan: 1}},
		})

		assert.Equal(t, [][]string{{"a", ""}, {"b", "b"}}, grid)
	})

	t.Run("clamps invalid spans", func(t *testing.T) {
		t.Parallel()

		grid := pressdoc.NormalizeRows([][]pressdoc.Cell{
			{{Content: "a", ColSpan: 0, RowSpan: -1}, {Content: "b"}},
		})

		assert.Equal(t, [][]string{{"a", "b"}}, grid)
	})

	t.Run("keeps rows that only receive spilled rowspans", func(t *testing.T) {
		t.Parallel()

		grid := pressdoc.NormalizeRows([][]pressdoc.Cell{
			{{Content: "a", ColSpan: 1, RowSpan: 3}},
		})

		assert.Equal(t, [][]string{{"a"}, {"a"}, {"a"}}, grid)
	})

	t.Run("returns nil without rows", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, pressdoc.NormalizeRows(nil))
	})
}

func TestParsedTable_Flatten(t *testing.T) {
	t.Parallel()

	t.Run("puts header first", func(t *testing.T) {
		t.Parallel()

		table := pressdoc.ParsedTable{
			Header: []string{"h1", "h2"},
			Rows:   [][]string{{"a", "b"}},
		}

		assert.Equal(t, [][]string{{"h1", "h2"}, {"a", "b"}}, table.Flatten())
	})

	t.Run("empty table flattens to nothing", func(t *testing.T) {
		t.Parallel()

		table := pressdoc.ParsedTable{Header: []string{}, Rows: [][]string{}}

		assert.Empty(t, table.Flatten())
		assert.NotNil(t, table.Flatten())
	})

	t.Run("keeps an empty header row in front of body rows", func(t *testing.T) {
		t.Parallel()

		table := pressdoc.ParsedTable{Header: []string{}, Rows: [][]string{{"a"}, {"b"}}}

		data := table.Flatten()

		assert.Equal(t, [][]string{{}, {"a"}, {"b"}}, data)
		assert.Equal(t, table, pressdoc.ArticleTable{Data: data}.Parsed())
	})
}
