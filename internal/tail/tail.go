package tail

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultBlockSize is the step used when seeking backwards from the end of a file.
const DefaultBlockSize = 4096

type options struct {
	blockSize int
	decoder   *encoding.Decoder
}

// Option configures Lines and File.
type Option func(*options)

// WithBlockSize overrides the backward seek step. Non-positive values are ignored.
func WithBlockSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.blockSize = size
		}
	}
}

// WithDecoder transcodes the buffered bytes to UTF-8 before splitting.
func WithDecoder(dec *encoding.Decoder) Option {
	return func(o *options) {
		if dec != nil {
			o.decoder = dec
		}
	}
}

// DecoderFor returns the decoder for a WHATWG encoding label such as
// "utf-8", "latin1" or "windows-1252". UTF-8 yields nil since no transcoding
// is needed.
func DecoderFor(label string) (*encoding.Decoder, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	if enc == unicode.UTF8 {
		return nil, nil
	}
	return enc.NewDecoder(), nil
}

// File opens path and returns its last n lines. Gzip and zstd compressed logs
// are recognized by their magic bytes and decompressed first.
func File(path string, n int, opts ...Option) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("log path %q is a directory", path)
	}

	compression, err := DetectCompression(file)
	if err != nil {
		return nil, err
	}
	if compression == CompressionNone {
		return Lines(file, n, opts...)
	}
	inflated, err := inflate(file, compression)
	if err != nil {
		return nil, err
	}
	return Lines(inflated, n, opts...)
}

// Lines returns at most n lines from the end of r, with line terminators
// removed. It seeks backwards in growing multiples of the block size until the
// buffered window holds n line breaks before its final one, so the leading
// fragment can be dropped and n whole lines remain. When the window would
// start before the beginning of the input, everything is read from offset zero.
func Lines(r io.ReadSeeker, n int, opts ...Option) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	cfg := options{blockSize: DefaultBlockSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("seek log: %w", err)
	}

	var window []byte
	var offset int64
	for multiple := int64(1); ; multiple++ {
		offset = size - multiple*int64(cfg.blockSize)
		if offset < 0 {
			offset = 0
		}
		if _, err := r.Seek(offset, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seek log: %w", err)
		}
		window, err = io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		if offset == 0 || bytes.Count(trimFinalNewline(window), []byte{'\n'}) >= n {
			break
		}
	}

	if cfg.decoder != nil {
		decoded, err := cfg.decoder.Bytes(window)
		if err != nil {
			return nil, fmt.Errorf("decode log: %w", err)
		}
		window = decoded
	}

	lines := splitLines(window)
	if offset > 0 && len(lines) > 0 {
		// The window starts mid-line.
		lines = lines[1:]
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}

func trimFinalNewline(data []byte) []byte {
	return bytes.TrimSuffix(data, []byte{'\n'})
}

func splitLines(data []byte) []string {
	data = trimFinalNewline(data)
	if len(data) == 0 {
		return nil
	}
	raw := strings.Split(string(data), "\n")
	for i, line := range raw {
		raw[i] = strings.TrimSuffix(line, "\r")
	}
	return raw
}
