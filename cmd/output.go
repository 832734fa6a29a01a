package cmd

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// renderTable writes rows under headers as a text table.
func renderTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	// Convert []string to []any for Header
	hs := make([]any, len(headers))
	for i, v := range headers {
		hs[i] = v
	}
	table.Header(hs...)
	for _, r := range rows {
		row := make([]any, len(r))
		for i, v := range r {
			row[i] = v
		}
		if err := table.Append(row...); err != nil {
			return err
		}
	}
	return table.Render()
}
