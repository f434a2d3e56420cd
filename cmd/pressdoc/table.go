package main

import (
	"fmt"

	"github.com/fwojciec/pressdoc"
	"github.com/fwojciec/pressdoc/markdown"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes the table command.
func (c *TableCmd) Run(deps *Dependencies) error {
	html, err := readSource(deps, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	t := deps.Tables.Normalize(html)
	if len(t.Header) == 0 && len(t.Rows) == 0 {
		fmt.Fprintln(deps.Stderr, "No table found.")
		return pressdoc.Errorf(pressdoc.ENOTFOUND, "no table in %s", c.File)
	}

	switch c.Format {
	case "markdown":
		if err := markdown.WriteTable(deps.Stdout, t); err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout)
		return nil
	case "json":
		return writeJSON(deps.Stdout, t)
	default:
		renderTable(deps, t)
		return nil
	}
}

// renderTable draws the table with box-drawing characters.
func renderTable(deps *Dependencies, t pressdoc.ParsedTable) {
	w := table.NewWriter()
	w.SetOutputMirror(deps.Stdout)
	w.SetStyle(table.StyleLight)
	if len(t.Header) > 0 {
		w.AppendHeader(row(t.Header))
	}
	for _, r := range t.Rows {
		w.AppendRow(row(r))
	}
	w.Render()
}

func row(cells []string) table.Row {
	r := make(table.Row, len(cells))
	for i, c := range cells {
		r[i] = c
	}
	return r
}
