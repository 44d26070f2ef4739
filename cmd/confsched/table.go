package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// column describes one table column. Cells wider than WidthMax are word
// wrapped; zero leaves the column unbounded. Merge joins vertically
// repeated cells, which suits grouping columns.
type column struct {
	Header   string
	Align    columnAlignment
	WidthMax int
	Merge    bool
}

// Widths shared by the commands: titles wrap, times and counts never do.
const (
	widthTitle = 40
	widthLabel = 24
)

func renderTable(columns []column, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	for i, c := range columns {
		header[i] = c.Header
	}
	tw.AppendHeader(header)

	merge := false
	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(columns))
	for i, c := range columns {
		align := text.AlignLeft
		if c.Align == alignRight {
			align = text.AlignRight
		}
		cfg := table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			AutoMerge:   c.Merge,
		}
		if c.WidthMax > 0 {
			cfg.WidthMax = c.WidthMax
			cfg.WidthMaxEnforcer = text.WrapSoft
		}
		merge = merge || c.Merge
		configs = append(configs, cfg)
	}
	tw.SetColumnConfigs(configs)
	if merge {
		// Merged cells read as one block only with row separators.
		tw.Style().Options.SeparateRows = true
	}

	return tw.Render()
}
