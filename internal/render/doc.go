// Package render draws sample tables without kst2.
//
// Each active channel becomes its own plot against the time column, tiled
// row-major into the configured number of columns. The output format follows
// the file extension (pdf, png, svg, eps, ...).
package render
