package trace

import (
	"fmt"
	"strings"
)

// UnknownChannel marks an unconfigured slot in the channel declaration.
const UnknownChannel = "unknown"

// Channel is one plotted signal and the table column holding its values.
type Channel struct {
	Name   string
	Column int
}

// ChannelLayout maps declared channels onto table columns. Column numbers
// are 1-based, matching the plotting tool's column addressing.
type ChannelLayout struct {
	// Declared lists channel names in declaration order, without the time label.
	Declared []string
	// TimeLabel is the dropped first entry when the samples carry their own time.
	TimeLabel string
	// XColumn holds the time axis.
	XColumn int
	// FirstDataColumn is the column of the first declared channel.
	FirstDataColumn int
	Active          []Channel
}

// ChannelOptions controls channel resolution.
type ChannelOptions struct {
	// Count selects the first Count declared channels. Negative values detect
	// the channels from the declaration, skipping "unknown" entries.
	Count        int
	TimeIncluded bool
	Prefix       string
}

// ResolveChannels splits the header's channel declaration and decides which
// channels are plotted.
//
// The table always has the time axis in column 1 followed by one column per
// declared channel, whether the time comes from the device (TimeIncluded) or
// is synthesized by WriteTable. Dropping the time label from the declaration
// therefore leaves channel i at column FirstDataColumn+i in both cases.
func ResolveChannels(h Header, opts ChannelOptions) (ChannelLayout, error) {
	names := strings.Fields(StripPrefix(h.Channels, opts.Prefix))

	layout := ChannelLayout{XColumn: 1, FirstDataColumn: 2}
	if opts.TimeIncluded && len(names) > 0 {
		layout.TimeLabel = names[0]
		names = names[1:]
	}
	layout.Declared = names

	if opts.Count >= 0 {
		if opts.Count > len(names) {
			return ChannelLayout{}, fmt.Errorf("%w: requested %d, declared %d (%q)", ErrChannelCount, opts.Count, len(names), h.Channels)
		}
		for i := 0; i < opts.Count; i++ {
			layout.Active = append(layout.Active, Channel{Name: names[i], Column: layout.FirstDataColumn + i})
		}
		return layout, nil
	}

	for i, name := range names {
		if name == UnknownChannel {
			continue
		}
		layout.Active = append(layout.Active, Channel{Name: name, Column: layout.FirstDataColumn + i})
	}
	return layout, nil
}

// DetectedCount returns the number of declared channels that are not "unknown".
func (l ChannelLayout) DetectedCount() int {
	count := 0
	for _, name := range l.Declared {
		if name != UnknownChannel {
			count++
		}
	}
	return count
}

// Names returns the active channel names in plotting order.
func (l ChannelLayout) Names() []string {
	names := make([]string, len(l.Active))
	for i, ch := range l.Active {
		names[i] = ch.Name
	}
	return names
}
