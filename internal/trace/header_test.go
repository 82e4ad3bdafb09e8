package trace

import (
	"errors"
	"reflect"
	"testing"
)

func TestLocateHeader(t *testing.T) {
	lines := []string{
		"boot ok",
		"trace prescaler 8",
		"trigger: rising ch1 > 100",
		"ch1 ch2 ch3",
		"1 2 3",
		"4 5 6",
	}

	h, err := LocateHeader(lines, HeaderOptions{})
	if err != nil {
		t.Fatalf("LocateHeader returned error: %v", err)
	}
	want := Header{Index: 1, Prescaler: 8, Trigger: "trigger: rising ch1 > 100", Channels: "ch1 ch2 ch3"}
	if h != want {
		t.Fatalf("LocateHeader() = %+v, want %+v", h, want)
	}
}

func TestLocateHeaderUsesLastDump(t *testing.T) {
	lines := []string{
		"trace prescaler 4",
		"old trigger",
		"a b",
		"1 2",
		"trace prescaler 16",
		"new trigger",
		"x y",
		"3 4",
	}

	h, err := LocateHeader(lines, HeaderOptions{})
	if err != nil {
		t.Fatalf("LocateHeader returned error: %v", err)
	}
	if h.Index != 4 || h.Prescaler != 16 || h.Trigger != "new trigger" {
		t.Fatalf("expected most recent dump, got %+v", h)
	}
}

func TestLocateHeaderStripsPrefix(t *testing.T) {
	lines := []string{"BD: trace prescaler 8", "BD: trig", "BD: ch1 ch2"}

	h, err := LocateHeader(lines, HeaderOptions{Prefix: "BD: "})
	if err != nil {
		t.Fatalf("LocateHeader returned error: %v", err)
	}
	if h.Prescaler != 8 {
		t.Fatalf("expected prescaler 8, got %d", h.Prescaler)
	}
	if h.Channels != "BD: ch1 ch2" {
		t.Fatalf("expected channel line verbatim, got %q", h.Channels)
	}
}

func TestLocateHeaderCustomMarker(t *testing.T) {
	lines := []string{"dump divider 2", "t", "a"}
	h, err := LocateHeader(lines, HeaderOptions{Marker: "dump divider"})
	if err != nil {
		t.Fatalf("LocateHeader returned error: %v", err)
	}
	if h.Prescaler != 2 {
		t.Fatalf("expected prescaler 2, got %d", h.Prescaler)
	}
}

func TestLocateHeaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  error
	}{
		{name: "missing marker", lines: []string{"a", "b", "c"}, want: ErrHeaderNotFound},
		{name: "empty tail", lines: nil, want: ErrHeaderNotFound},
		{name: "not an integer", lines: []string{"trace prescaler eight", "t", "c"}, want: ErrMalformedPrescaler},
		{name: "missing value", lines: []string{"trace prescaler", "t", "c"}, want: ErrMalformedPrescaler},
		{name: "no channel line", lines: []string{"x", "trace prescaler 8", "t"}, want: ErrTruncatedHeader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LocateHeader(tt.lines, HeaderOptions{})
			if !errors.Is(err, tt.want) {
				t.Fatalf("LocateHeader() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSamples(t *testing.T) {
	lines := []string{"trace prescaler 1", "t", "c", "s1", "s2", "s3"}
	h := Header{Index: 0}

	if got := Samples(lines, h, 2); !reflect.DeepEqual(got, []string{"s1", "s2"}) {
		t.Fatalf("Samples(2) = %q", got)
	}
	if got := Samples(lines, h, 10); !reflect.DeepEqual(got, []string{"s1", "s2", "s3"}) {
		t.Fatalf("Samples(10) = %q", got)
	}
	if got := Samples(lines, Header{Index: 3}, 10); got != nil {
		t.Fatalf("expected no samples past the end, got %q", got)
	}
	if got := Samples(lines, h, 0); got != nil {
		t.Fatalf("expected no samples for n=0, got %q", got)
	}
}

func TestStripPrefix(t *testing.T) {
	tests := []struct {
		line, prefix, want string
	}{
		{"BD: 1 2", "BD: ", "1 2"},
		{"1 BD: 2", "BD: ", "1 2"},
		{"BD: BD: 1", "BD: ", "BD: 1"},
		{"1 2", "", "1 2"},
		{"1 2", "XX", "1 2"},
	}
	for _, tt := range tests {
		if got := StripPrefix(tt.line, tt.prefix); got != tt.want {
			t.Errorf("StripPrefix(%q, %q) = %q, want %q", tt.line, tt.prefix, got, tt.want)
		}
	}
}
