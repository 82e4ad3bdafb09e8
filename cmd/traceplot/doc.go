// Package main hosts the traceplot CLI entrypoint and command graph.
//
// The root command runs the plot pipeline: it reads the tail of a device log,
// writes the timestamped sample table and launches kst2 (or renders a PDF
// natively). Subcommands inspect a log without writing anything, report
// plotter availability, and scaffold configuration.
//
// Flags are layered over the configuration file: a flag only overrides the
// configured value when it was given explicitly. Keep the heavy lifting in the
// internal packages; this package maps flags to pipeline options and prints.
package main
