// Package pipeline runs one trace plot end to end: tail the device log, find
// the last trace dump, write the timestamped table, optionally snapshot it,
// and hand it to a plotter.
//
// Each step lives in its own package (tail, trace, fileutil, kst, render);
// Run only sequences them and records what happened in a Result so the CLI
// can report it.
package pipeline
