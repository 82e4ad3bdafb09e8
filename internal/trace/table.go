package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultOutputName is the table name used when none is configured.
const DefaultOutputName = "tmp"

// TableOptions controls table emission.
type TableOptions struct {
	Prescaler    int
	SamplingFreq int
	Prefix       string
	TimeIncluded bool
}

// WriteTable writes one row per non-blank sample line and returns the number
// of rows written. Rows are "<time> <line>" where time is
// index*prescaler/samplingFreq, or the line unchanged when the samples already
// carry a time column. Blank lines are skipped but still advance the index.
func WriteTable(w io.Writer, samples []string, opts TableOptions) (int, error) {
	if !opts.TimeIncluded && opts.SamplingFreq <= 0 {
		return 0, fmt.Errorf("sampling frequency must be positive, got %d", opts.SamplingFreq)
	}

	bw := bufio.NewWriter(w)
	rows := 0
	for index, line := range samples {
		if strings.TrimSpace(line) == "" {
			continue
		}
		line = StripPrefix(line, opts.Prefix)
		if !opts.TimeIncluded {
			bw.WriteString(FormatTime(index, opts.Prescaler, opts.SamplingFreq))
			bw.WriteByte(' ')
		}
		bw.WriteString(line)
		bw.WriteByte('\n')
		rows++
	}
	if err := bw.Flush(); err != nil {
		return rows, fmt.Errorf("write table: %w", err)
	}
	return rows, nil
}

// WriteTableFile creates or truncates path and writes the table to it.
func WriteTableFile(path string, samples []string, opts TableOptions) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create table: %w", err)
	}
	rows, err := WriteTable(file, samples, opts)
	if err != nil {
		_ = file.Close()
		return rows, err
	}
	if err := file.Close(); err != nil {
		return rows, fmt.Errorf("close table: %w", err)
	}
	return rows, nil
}

// FormatTime renders index*prescaler/samplingFreq as a decimal that always
// carries a fractional part ("0.0", "0.25", "3.0").
func FormatTime(index, prescaler, samplingFreq int) string {
	value := float64(index*prescaler) / float64(samplingFreq)
	s := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// OutputPath resolves the table filename against dir. A name without an
// extension gets ".txt".
func OutputPath(dir, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultOutputName
	}
	if filepath.Ext(name) == "" {
		name += ".txt"
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(dir, name)
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", fmt.Errorf("resolve table path: %w", err)
	}
	return abs, nil
}
