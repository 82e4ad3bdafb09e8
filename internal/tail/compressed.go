package tail

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Compression names a supported compressed log format.
type Compression string

const (
	CompressionNone Compression = ""
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// DetectCompression sniffs the leading magic bytes of r and rewinds it.
func DetectCompression(r io.ReadSeeker) (Compression, error) {
	head := make([]byte, len(zstdMagic))
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return CompressionNone, fmt.Errorf("read log header: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return CompressionNone, fmt.Errorf("seek log: %w", err)
	}
	head = head[:n]
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		return CompressionZstd, nil
	case bytes.HasPrefix(head, gzipMagic):
		return CompressionGzip, nil
	default:
		return CompressionNone, nil
	}
}

// inflate decompresses the whole stream into memory. Compressed streams
// cannot be read backwards, so rotated logs are tailed from a buffer.
func inflate(r io.Reader, c Compression) (io.ReadSeeker, error) {
	var src io.Reader
	switch c {
	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open gzip log: %w", err)
		}
		defer zr.Close()
		src = zr
	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open zstd log: %w", err)
		}
		defer dec.Close()
		src = dec
	default:
		return nil, fmt.Errorf("unsupported compression %q", c)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("decompress %s log: %w", c, err)
	}
	return bytes.NewReader(data), nil
}
