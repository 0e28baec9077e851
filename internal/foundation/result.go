// Package foundation provides generic utilities for type-safe operations.
package foundation

// Result represents a step that either produced a value T or failed with error E.
// Pipeline steps that must make failure explicit (rather than returning a zero
// value alongside a nil error) return a Result.
type Result[T any, E error] struct {
	value T
	err   E
	isOk  bool
}

// Ok creates a successful Result with the given value.
func Ok[T any, E error](value T) Result[T, E] {
	return Result[T, E]{
		value: value,
		isOk:  true,
	}
}

// Err creates a failed Result with the given error.
func Err[T any, E error](err E) Result[T, E] {
	return Result[T, E]{
		err:  err,
		isOk: false,
	}
}

// IsErr returns true if the Result represents a failed operation.
func (r Result[T, E]) IsErr() bool {
	return !r.isOk
}

// UnwrapOr returns the value if Ok, otherwise returns the fallback.
func (r Result[T, E]) UnwrapOr(fallback T) T {
	if r.isOk {
		return r.value
	}
	return fallback
}

// UnwrapErr returns the error if Err, panics if Ok.
func (r Result[T, E]) UnwrapErr() E {
	if r.isOk {
		panic("called UnwrapErr on Ok result")
	}
	return r.err
}

// OrElse returns r when it is Ok, otherwise the Result produced by fn.
// It chains fallback strategies where each attempt may fail independently.
func (r Result[T, E]) OrElse(fn func(E) Result[T, E]) Result[T, E] {
	if r.isOk {
		return r
	}
	return fn(r.err)
}

// FromTuple creates a Result from the traditional Go (value, error) pattern.
func FromTuple[T any, E error](value T, err E) Result[T, E] {
	if any(err) != nil {
		return Err[T, E](err)
	}
	return Ok[T, E](value)
}
