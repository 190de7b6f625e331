package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"vidscribe/internal/pipeline"
	"vidscribe/internal/timefmt"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

const summaryTextWidth = 60

func renderTable(headers []string, rows [][]string, aligns []columnAlignment, footer []string) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault
	tw.AppendHeader(toRow(headers, columns))
	for _, row := range rows {
		tw.AppendRow(toRow(row, columns))
	}
	if len(footer) > 0 {
		tw.AppendFooter(toRow(footer, columns))
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func toRow(values []string, columns int) table.Row {
	row := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		if i < len(values) {
			row[i] = values[i]
		} else {
			row[i] = ""
		}
	}
	return row
}

// renderSummary tabulates the emitted segments with their spans in seconds.
func renderSummary(result pipeline.Result) string {
	headers := []string{"#", "Start", "End", "Span (s)", "Text"}
	aligns := []columnAlignment{alignRight, alignRight, alignRight, alignRight, alignLeft}
	rows := make([][]string, 0, len(result.Formatted))
	var total float64
	for i, seg := range result.Formatted {
		span := "?"
		start, startErr := timefmt.Parse(seg.Start)
		end, endErr := timefmt.Parse(seg.End)
		if startErr == nil && endErr == nil {
			total += end - start
			span = strconv.FormatFloat(end-start, 'f', 2, 64)
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), seg.Start, seg.End, span, truncate(seg.Text, summaryTextWidth)})
	}
	footer := []string{
		"",
		"",
		"",
		strconv.FormatFloat(total, 'f', 2, 64),
		fmt.Sprintf("%d segments | %s", len(result.Formatted), streamLabel(result)),
	}
	return renderTable(headers, rows, aligns, footer)
}

func streamLabel(result pipeline.Result) string {
	if label := result.Stream.Label(); label != "" {
		return "stream " + label
	}
	return "stream #" + strconv.Itoa(result.Stream.Index)
}

func truncate(value string, width int) string {
	value = strings.TrimSpace(value)
	runes := []rune(value)
	if len(runes) <= width {
		return value
	}
	return string(runes[:width-1]) + "…"
}
