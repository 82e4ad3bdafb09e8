package kst

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"traceplot/internal/fileutil"
	"traceplot/internal/trace"
)

// PDFExt is appended to derived PDF export paths.
const PDFExt = ".pdf"

// emptyLabel is passed for the y-axis label; kst2 rejects an empty argument.
const emptyLabel = " "

// Request describes one plot of a sample table.
type Request struct {
	// Table is the path of the emitted sample table.
	Table string
	// Samples is passed as kst2's -n frame count.
	Samples int
	// Columns is the -m hint for the number of plot columns in the layout.
	Columns int
	Layout  trace.ChannelLayout
	// PDF, when set, asks kst2 to print the plot to this path and exit.
	PDF string
}

// Validate reports missing request fields.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Table) == "" {
		return errors.New("table path required")
	}
	if r.Samples <= 0 {
		return fmt.Errorf("sample count must be positive (got %d)", r.Samples)
	}
	if r.Columns <= 0 {
		return fmt.Errorf("column count must be positive (got %d)", r.Columns)
	}
	return nil
}

// BuildArgs returns the kst2 argument list for req, excluding the binary.
func BuildArgs(req Request) []string {
	args := []string{
		req.Table,
		"-n", strconv.Itoa(req.Samples),
		"-m", strconv.Itoa(req.Columns),
	}
	x := strconv.Itoa(req.Layout.XColumn)
	for _, ch := range req.Layout.Active {
		args = append(args,
			"-x", x,
			"--xlabel", EscapeLabel(ch.Name),
			"--ylabel", emptyLabel,
			"-y", strconv.Itoa(ch.Column),
		)
	}
	if req.PDF != "" {
		args = append(args, "--print", req.PDF)
	}
	return args
}

// EscapeLabel escapes underscores, which kst2 treats as subscript markers.
func EscapeLabel(name string) string {
	return strings.ReplaceAll(name, "_", `\_`)
}

// PDFPath resolves the PDF export path. An explicit path wins. Otherwise a
// non-default output name gives "<output>.pdf" and the input log gives
// "<input>.pdf" beside it. The result is absolute.
func PDFPath(input, output, explicit string) (string, error) {
	var path string
	switch {
	case strings.TrimSpace(explicit) != "":
		path = strings.TrimSpace(explicit)
	case output != "" && output != trace.DefaultOutputName:
		path = fileutil.SwapExt(output, PDFExt)
	case strings.TrimSpace(input) != "":
		path = fileutil.SwapExt(input, PDFExt)
	default:
		return "", errors.New("cannot derive pdf path without an input file")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve pdf path %s: %w", path, err)
	}
	return abs, nil
}
