// Package kst drives the kst2 plotting application.
//
// BuildArgs turns a resolved channel layout into kst2's command-line contract
// and PDFPath decides where a --print export lands. Client launches the
// process through an Executor so tests can observe the exact argument list
// without kst2 installed. By default the child is detached and only its PID is
// reported; WithWait blocks until kst2 exits and surfaces a non-zero status.
package kst
