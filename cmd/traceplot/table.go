package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"traceplot/internal/render"
	"traceplot/internal/trace"
)

// channelTable lists every declared channel with its table column and whether
// it is plotted. When stats are given, per-channel sample statistics are added.
func channelTable(layout trace.ChannelLayout, stats []render.ChannelStats) string {
	active := make(map[int]bool, len(layout.Active))
	for _, ch := range layout.Active {
		active[ch.Column] = true
	}
	byColumn := make(map[int]render.ChannelStats, len(stats))
	for _, s := range stats {
		byColumn[s.Column] = s
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	header := table.Row{"#", "Channel", "Column", "Plotted"}
	if stats != nil {
		header = append(header, "Samples", "Min", "Max", "Mean")
	}
	tw.AppendHeader(header)

	if layout.TimeLabel != "" {
		tw.AppendRow(table.Row{"-", layout.TimeLabel, layout.XColumn, "x axis"})
	}
	for i, name := range layout.Declared {
		column := layout.FirstDataColumn + i
		row := table.Row{i + 1, name, column, yesNo(active[column])}
		if s, ok := byColumn[column]; ok && s.Count > 0 {
			row = append(row, s.Count, formatStat(s.Min), formatStat(s.Max), formatStat(s.Mean))
		}
		tw.AppendRow(row)
	}

	configs := []table.ColumnConfig{
		{Name: "#", Align: text.AlignRight},
		{Name: "Column", Align: text.AlignRight},
	}
	for _, name := range []string{"Samples", "Min", "Max", "Mean"} {
		configs = append(configs, table.ColumnConfig{Name: name, Align: text.AlignRight})
	}
	for i := range configs {
		configs[i].AlignHeader = text.AlignLeft
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
