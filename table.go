package pressdoc

import (
	"strconv"
	"strings"
)

// Upper bounds for span attributes, matching the limits browsers apply.
const (
	MaxColSpan = 1000
	MaxRowSpan = 65534
)

// Cell is a single th/td element reduced to its content and merge extent.
type Cell struct {
	Content string
	ColSpan int
	RowSpan int
}

// ParsedTable is a normalized table: a header row plus rectangular body rows
// in which every position covered by a merged cell holds that cell's content.
type ParsedTable struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Flatten returns the table as a single 2D array with the header as the
// first row. The header row is kept even when empty so that the first body
// row is never read back as a header; a table without header and rows
// flattens to an empty array.
func (t ParsedTable) Flatten() [][]string {
	if len(t.Header) == 0 && len(t.Rows) == 0 {
		return [][]string{}
	}
	header := t.Header
	if header == nil {
		header = []string{}
	}
	return append([][]string{header}, t.Rows...)
}

// TableNormalizer converts table markup into a ParsedTable.
type TableNormalizer interface {
	// Normalize never fails: input without a table yields an empty
	// ParsedTable with non-nil header and rows.
	Normalize(tableHTML string) ParsedTable
}

// ParseSpan converts a rowspan/colspan attribute value into a span.
// Missing, non-numeric, zero and negative values become 1; values above
// limit are capped.
func ParseSpan(value string, limit int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 1 {
		return 1
	}
	if n > limit {
		return limit
	}
	return n
}

// NormalizeRows expands merged cells into a grid.
//
// Rows are processed top to bottom with a cursor per row. Each cell starts at
// the first column of its row that is still empty, then fills the rectangle
// rowSpan x colSpan. Only empty positions are written, so the first non-empty
// placement wins on overlaps and an empty cell never blocks a later one. Rows
// are padded with empty strings as the rectangle grows; rows that only
// receive spilled rowspans still appear in the result.
func NormalizeRows(rows [][]Cell) [][]string {
	g := &grid{}
	for r, cells := range rows {
		g.ensureRows(r + 1)
		col := 0
		for _, cell := range cells {
			colSpan := clampSpan(cell.ColSpan, MaxColSpan)
			rowSpan := clampSpan(cell.RowSpan, MaxRowSpan)

			col = g.nextFree(r, col)
			g.ensureRows(r + rowSpan)
			for rr := r; rr < r+rowSpan; rr++ {
				g.ensureCols(rr, col+colSpan)
				for cc := col; cc < col+colSpan; cc++ {
					if g.cells[rr][cc] == "" {
						g.cells[rr][cc] = cell.Content
					}
				}
			}
			col += colSpan
		}
	}
	return g.cells
}

// grid is the grid under construction. An empty string marks a free position.
type grid struct {
	cells [][]string
}

func (g *grid) ensureRows(n int) {
	for len(g.cells) < n {
		g.cells = append(g.cells, []string{})
	}
}

func (g *grid) ensureCols(row, n int) {
	for len(g.cells[row]) < n {
		g.cells[row] = append(g.cells[row], "")
	}
}

func (g *grid) nextFree(row, col int) int {
	for col < len(g.cells[row]) && g.cells[row][col] != "" {
		col++
	}
	return col
}

func clampSpan(n, limit int) int {
	if n < 1 {
		return 1
	}
	if n > limit {
		return limit
	}
	return n
}
