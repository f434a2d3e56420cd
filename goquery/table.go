package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pressdoc"
)

var _ pressdoc.TableNormalizer = (*TableNormalizer)(nil)

// TableNormalizer normalizes HTML tables into header and rows.
type TableNormalizer struct{}

// NewTableNormalizer creates a new TableNormalizer.
func NewTableNormalizer() *TableNormalizer {
	return &TableNormalizer{}
}

// Normalize parses the first table in tableHTML.
func (n *TableNormalizer) Normalize(tableHTML string) pressdoc.ParsedTable {
	doc, err := parseHTML(tableHTML)
	if err != nil {
		return emptyTable()
	}
	return NormalizeTable(doc.Find("table").First())
}

// NormalizeTable normalizes a table selection. Only the first node of the
// selection is used; an empty selection yields an empty table.
//
// With a thead, its first row is the header and any further header rows lead
// the body rows. Without one, the first row of the table is the header.
// Rows of nested tables are never mixed into the outer table.
func NormalizeTable(table *goquery.Selection) pressdoc.ParsedTable {
	if table.Length() == 0 {
		return emptyTable()
	}
	table = table.First()

	var header []string
	var rows [][]string

	thead := table.ChildrenFiltered("thead").First()
	if thead.Length() > 0 {
		headerGrid := pressdoc.NormalizeRows(cellRows(ownRows(table, thead)))
		if len(headerGrid) > 0 {
			header = headerGrid[0]
			rows = append(rows, headerGrid[1:]...)
		}

		var bodyRows *goquery.Selection
		if tbody := table.ChildrenFiltered("tbody"); tbody.Length() > 0 {
			bodyRows = ownRows(table, tbody)
		} else {
			bodyRows = ownRows(table, table).FilterFunction(func(_ int, tr *goquery.Selection) bool {
				return tr.Closest("thead").Length() == 0
			})
		}
		rows = append(rows, pressdoc.NormalizeRows(cellRows(bodyRows))...)
	} else {
		grid := pressdoc.NormalizeRows(cellRows(ownRows(table, table)))
		if len(grid) > 0 {
			header = grid[0]
			rows = grid[1:]
		}
	}

	if header == nil {
		header = []string{}
	}
	if rows == nil {
		rows = [][]string{}
	}
	return pressdoc.ParsedTable{Header: header, Rows: rows}
}

func emptyTable() pressdoc.ParsedTable {
	return pressdoc.ParsedTable{Header: []string{}, Rows: [][]string{}}
}

// ownRows returns the tr elements under scope that belong to table rather
// than to a table nested inside it.
func ownRows(table, scope *goquery.Selection) *goquery.Selection {
	return scope.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Closest("table").IsSelection(table)
	})
}

func cellRows(trs *goquery.Selection) [][]pressdoc.Cell {
	rows := make([][]pressdoc.Cell, 0, trs.Length())
	trs.Each(func(_ int, tr *goquery.Selection) {
		var cells []pressdoc.Cell
		tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			colSpan, _ := cell.Attr("colspan")
			rowSpan, _ := cell.Attr("rowspan")
			cells = append(cells, pressdoc.Cell{
				Content: CellContent(cell),
				ColSpan: pressdoc.ParseSpan(colSpan, pressdoc.MaxColSpan),
				RowSpan: pressdoc.ParseSpan(rowSpan, pressdoc.MaxRowSpan),
			})
		})
		rows = append(rows, cells)
	})
	return rows
}

// CellContent returns a cell's image markers followed by its text, joined by
// a space. Images with a source become "[이미지: alt]", "[이미지: title]" or
// "[이미지]"; an alt of "." is ignored.
func CellContent(cell *goquery.Selection) string {
	var parts []string
	cell.Find("img").Each(func(_ int, img *goquery.Selection) {
		if src, _ := img.Attr("src"); src == "" {
			return
		}
		alt, _ := img.Attr("alt")
		title, _ := img.Attr("title")
		switch {
		case alt != "" && alt != ".":
			parts = append(parts, fmt.Sprintf("[이미지: %s]", alt))
		case title != "":
			parts = append(parts, fmt.Sprintf("[이미지: %s]", title))
		default:
			parts = append(parts, "[이미지]")
		}
	})
	if text := textOf(cell, ""); text != "" {
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}
