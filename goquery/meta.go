package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pressdoc"
)

// Labels of the press-release metadata table.
const (
	labelReleaseDate  = "자료배포일"
	labelCreationDate = "자료작성일"
	labelDepartment   = "담당부서"
)

// ExtractPressMeta reads the release date, creation date and department from
// a metadata table. Each value is the text of the cell right after the cell
// holding its label; when a label repeats, the last value wins.
func ExtractPressMeta(tableHTML string) pressdoc.PressMeta {
	var meta pressdoc.PressMeta

	doc, err := parseHTML(tableHTML)
	if err != nil {
		return meta
	}

	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		cells.Each(func(i int, cell *goquery.Selection) {
			text := textOf(cell, "")

			var label string
			var field *string
			switch {
			case strings.Contains(text, labelReleaseDate):
				label, field = labelReleaseDate, &meta.ReleaseDate
			case strings.Contains(text, labelCreationDate):
				label, field = labelCreationDate, &meta.CreationDate
			case strings.Contains(text, labelDepartment):
				label, field = labelDepartment, &meta.Department
			default:
				return
			}

			if i+1 >= cells.Length() {
				return
			}
			if next := textOf(cells.Eq(i+1), ""); next != "" && next != label {
				*field = next
			}
		})
	})
	return meta
}
