// Package errors provides classified error primitives used across docbind.
//
// Errors that cross the CLI boundary (configuration, directory access,
// output) are built with the fluent ErrorBuilder so that the CLI adapter can
// map them to exit codes. Inside the documentation pipeline failures are
// sentinel errors wrapped with %w and never reach this package.
//
// Example usage:
//
//	err := errors.FileSystemError("documentation directory missing").
//		WithContext("path", dir).
//		WithCause(statErr).
//		Build()
package errors
