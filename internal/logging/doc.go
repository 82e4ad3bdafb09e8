// Package logging builds the slog loggers traceplot writes through.
//
// Console output is a header line per record followed by one indented line
// per field; JSON output is one object per line. When a log directory is
// configured every record is also appended to traceplot.log and tagged with a
// per-invocation session ID.
package logging
