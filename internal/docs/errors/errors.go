package errors

// Package errors provides sentinel errors for the documentation pipeline.
// None of them abort a generation run: the pipeline logs them and degrades to
// empty documentation.

import "errors"

var (
	// ErrMissingDocumentation indicates no file resolved through the fallback lookup.
	ErrMissingDocumentation = errors.New("documentation file not found")

	// ErrUnresolvableEquation indicates an equation block had neither a usable
	// eqn comment nor parseable fragment content.
	ErrUnresolvableEquation = errors.New("unresolvable equation markup")

	// ErrMalformedDocument indicates normalized text failed strict parsing or
	// lacks the expected summary structure.
	ErrMalformedDocument = errors.New("malformed documentation file")

	// ErrIndexScanFailed indicates a documentation directory could not be scanned.
	ErrIndexScanFailed = errors.New("documentation directory scan failed")

	// ErrFileReadFailed indicates reading a resolved documentation file failed.
	ErrFileReadFailed = errors.New("documentation file read failed")
)
