// Package fileutil holds file copying and naming helpers.
//
// NextAvailableName is the collision policy for files that must never be
// overwritten: it is pure, taking the existence check as a parameter, so the
// probing order can be tested without touching the disk. SaveSnapshot applies
// it under an advisory lock and copies with integrity verification.
package fileutil
