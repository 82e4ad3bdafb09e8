package trace

import "errors"

var (
	// ErrHeaderNotFound reports that no line in the tail contains the marker.
	ErrHeaderNotFound = errors.New("failed to find trace dump start")
	// ErrTruncatedHeader reports that the tail ends before the trigger and channel lines.
	ErrTruncatedHeader = errors.New("trace header truncated")
	// ErrMalformedPrescaler reports a marker line without an integer prescaler.
	ErrMalformedPrescaler = errors.New("malformed prescaler")
	// ErrChannelCount reports an explicit channel count larger than the declaration.
	ErrChannelCount = errors.New("channel count exceeds declared channels")
)
