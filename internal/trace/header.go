package trace

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultMarker identifies the first header line of a trace dump.
const DefaultMarker = "trace prescaler"

// MetadataMargin is the number of lines read beyond the sample count to
// cover the header and any trailing output after the dump.
const MetadataMargin = 30

// Header is the three-line preamble of a trace dump.
type Header struct {
	// Index is the position of the prescaler line within the scanned lines.
	Index     int
	Prescaler int
	Trigger   string
	Channels  string
}

// HeaderOptions controls how the header is located.
type HeaderOptions struct {
	Marker string
	// Prefix is a literal printed by the device before each line.
	Prefix string
}

// LocateHeader finds the last line containing the marker and parses the
// prescaler from it. The two lines that follow are returned as the trigger and
// channel declaration.
func LocateHeader(lines []string, opts HeaderOptions) (Header, error) {
	marker := opts.Marker
	if marker == "" {
		marker = DefaultMarker
	}

	index := -1
	for i, line := range lines {
		if strings.Contains(line, marker) {
			index = i
		}
	}
	if index < 0 {
		return Header{}, fmt.Errorf("%w: marker %q not present in the last %d lines", ErrHeaderNotFound, marker, len(lines))
	}

	prescaler, err := parsePrescaler(lines[index], marker, opts.Prefix)
	if err != nil {
		return Header{}, err
	}
	if index+2 >= len(lines) {
		return Header{}, fmt.Errorf("%w: expected trigger and channel lines after line %d", ErrTruncatedHeader, index+1)
	}

	return Header{
		Index:     index,
		Prescaler: prescaler,
		Trigger:   strings.TrimSpace(lines[index+1]),
		Channels:  strings.TrimSpace(lines[index+2]),
	}, nil
}

func parsePrescaler(line, marker, prefix string) (int, error) {
	trimmed := StripPrefix(strings.TrimSpace(line), prefix)
	pos := strings.Index(trimmed, marker)
	if pos < 0 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedPrescaler, line)
	}
	value := strings.TrimSpace(trimmed[pos+len(marker):])
	prescaler, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrMalformedPrescaler, line, err)
	}
	return prescaler, nil
}

// StripPrefix removes the first occurrence of prefix from line.
func StripPrefix(line, prefix string) string {
	if prefix == "" {
		return line
	}
	return strings.Replace(line, prefix, "", 1)
}

// Samples returns at most n raw lines following the header.
func Samples(lines []string, h Header, n int) []string {
	start := h.Index + 3
	if start >= len(lines) || n <= 0 {
		return nil
	}
	end := start + n
	if end > len(lines) {
		end = len(lines)
	}
	return lines[start:end]
}
