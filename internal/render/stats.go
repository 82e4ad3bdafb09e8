package render

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"traceplot/internal/trace"
)

// ChannelStats summarizes one channel's samples.
type ChannelStats struct {
	Name   string
	Column int
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Summarize computes per-channel statistics for the active channels of layout.
// Channels without numeric samples report a zero Count.
func Summarize(table Table, layout trace.ChannelLayout) []ChannelStats {
	out := make([]ChannelStats, 0, len(layout.Active))
	for _, ch := range layout.Active {
		s := ChannelStats{Name: ch.Name, Column: ch.Column}
		_, ys := table.Series(layout.XColumn, ch.Column)
		if len(ys) > 0 {
			s.Count = len(ys)
			s.Min = floats.Min(ys)
			s.Max = floats.Max(ys)
			s.Mean, s.StdDev = stat.MeanStdDev(ys, nil)
		}
		out = append(out, s)
	}
	return out
}
