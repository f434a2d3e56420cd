// Package excelize exports document lists to Excel workbooks.
package excelize

import (
	"fmt"
	"sort"

	"github.com/fwojciec/pressdoc"
	"github.com/xuri/excelize/v2"
)

var _ pressdoc.DocumentExporter = (*Exporter)(nil)

// Sheet names.
const (
	ListSheet    = "문서목록"
	SummarySheet = "요약정보"
)

// Exporter writes document summaries to an xlsx workbook with a list sheet
// and a summary sheet.
type Exporter struct{}

// NewExporter creates a new Exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// SortSummaries returns the documents with dated rows first in date order,
// followed by undated rows in their original order.
func SortSummaries(docs []pressdoc.DocumentSummary) (dated, undated []pressdoc.DocumentSummary) {
	for _, d := range docs {
		if d.Date != "" {
			dated = append(dated, d)
		} else {
			undated = append(undated, d)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].Date < dated[j].Date
	})
	return dated, undated
}

// Export writes the workbook to path.
func (e *Exporter) Export(path string, docs []pressdoc.DocumentSummary) error {
	dated, undated := SortSummaries(docs)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ListSheet); err != nil {
		return err
	}
	if err := setRow(f, ListSheet, 1, "filename", "date", "title"); err != nil {
		return err
	}
	row := 2
	for _, group := range [][]pressdoc.DocumentSummary{dated, undated} {
		for _, d := range group {
			if err := setRow(f, ListSheet, row, d.Filename, d.Date, d.Title); err != nil {
				return err
			}
			row++
		}
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return err
	}
	summary := [][]any{
		{"항목", "수량"},
		{"총 파일 수", len(docs)},
		{"날짜 추출 가능", len(dated)},
		{"날짜 추출 불가", len(undated)},
	}
	for i, values := range summary {
		if err := setRow(f, SummarySheet, i+1, values...); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
