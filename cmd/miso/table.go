package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderKeyValueTable renders two-column rows under a title. Short rows are
// padded with an empty value.
func renderKeyValueTable(title string, rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(title)
	tw.Style().Title.Align = text.AlignLeft

	for _, row := range rows {
		key, value := "", ""
		if len(row) > 0 {
			key = row[0]
		}
		if len(row) > 1 {
			value = row[1]
		}
		tw.AppendRow(table.Row{key, value})
	}
	return tw.Render()
}
