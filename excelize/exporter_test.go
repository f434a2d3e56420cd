package excelize_test

import (
	"path/filepath"
	"testing"

	"github.com/fwojciec/pressdoc"
	pexcelize "github.com/fwojciec/pressdoc/excelize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestSortSummaries(t *testing.T) {
	t.Parallel()

	dated, undated := pexcelize.SortSummaries([]pressdoc.DocumentSummary{
		{Filename: "c.hwp", Date: "2024-03-01"},
		{Filename: "x.hwp"},
		{Filename: "a.hwp", Date: "2023-12-31"},
		{Filename: "y.hwp"},
		{Filename: "b.hwp", Date: "2024-03-01"},
	})

	require.Len(t, dated, 3)
	assert.Equal(t, "a.hwp", dated[0].Filename)
	assert.Equal(t, "c.hwp", dated[1].Filename)
	assert.Equal(t, "b.hwp", dated[2].Filename)
	require.Len(t, undated, 2)
	assert.Equal(t, "x.hwp", undated[0].Filename)
	assert.Equal(t, "y.hwp", undated[1].Filename)
}

func TestExporter_Export(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "문서_특징_정리.xlsx")

	err := pexcelize.NewExporter().Export(path, []pressdoc.DocumentSummary{
		{Filename: "2.hwp", Date: "2024-02-01", Title: "둘째"},
		{Filename: "none.hwp", Title: "날짜 없음"},
		{Filename: "1.hwp", Date: "2024-01-15", Title: "첫째"},
	})
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{pexcelize.ListSheet, pexcelize.SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(pexcelize.ListSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"filename", "date", "title"},
		{"1.hwp", "2024-01-15", "첫째"},
		{"2.hwp", "2024-02-01", "둘째"},
		{"none.hwp", "", "날짜 없음"},
	}, rows)

	summary, err := f.GetRows(pexcelize.SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"항목", "수량"},
		{"총 파일 수", "3"},
		{"날짜 추출 가능", "2"},
		{"날짜 추출 불가", "1"},
	}, summary)
}
