// Package trace parses trace dumps printed by the embedded firmware and
// reshapes their samples into a plottable table.
//
// A dump starts with three header lines:
//
//	trace prescaler 8
//	<trigger description>
//	time ch_a unknown ch_b
//
// followed by one whitespace-separated sample row per line. LocateHeader finds
// the most recent dump in a tail of the log, ResolveChannels maps the declared
// channel names onto table columns, and WriteTable emits the rows with a time
// column derived from the prescaler and the sampling frequency.
//
// Every function here is free of process-level side effects other than the
// table file written by WriteTableFile, so the CLI decides how failures such
// as ErrHeaderNotFound are reported.
package trace
