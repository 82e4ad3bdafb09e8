// Package tail reads the last lines of a device log without loading the whole
// file.
//
// Lines seeks backwards from the end in increasing multiples of a block size
// until the window holds enough complete lines, then falls back to reading
// from the start when the file is shorter than the requested window. Optional
// decoding lets logs captured from serial consoles in legacy code pages be
// processed as UTF-8, and rotated logs compressed with gzip or zstd are read
// through an in-memory buffer.
package tail
