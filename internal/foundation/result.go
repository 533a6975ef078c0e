// Package foundation provides generic utilities for type-safe operations.
package foundation

// Result represents an operation that either succeeded with value T or failed with error E.
// The content source fallback chain is a list of attempts each producing a Result.
type Result[T any, E error] struct {
	value T
	err   E
	isOk  bool
}

// Ok creates a successful Result with the given value.
func Ok[T any, E error](value T) Result[T, E] {
	return Result[T, E]{value: value, isOk: true}
}

// Err creates a failed Result with the given error.
func Err[T any, E error](err E) Result[T, E] {
	return Result[T, E]{err: err}
}

// FromTuple creates a Result from the traditional Go (value, error) pattern.
func FromTuple[T any, E error](value T, err E) Result[T, E] {
	if any(err) != nil {
		return Err[T, E](err)
	}
	return Ok[T, E](value)
}

// IsOk returns true if the Result represents a successful operation.
func (r Result[T, E]) IsOk() bool {
	return r.isOk
}

// ToTuple converts Result to the traditional Go (value, error) pattern.
func (r Result[T, E]) ToTuple() (T, E) {
	if r.isOk {
		var zeroErr E
		return r.value, zeroErr
	}
	var zeroVal T
	return zeroVal, r.err
}

// FirstOk evaluates attempts in order and returns the first successful Result.
// After a failure, next decides whether the remaining attempts run; a nil next
// always continues. The last failure evaluated is returned. With no attempts
// the zero Result is returned, which is not Ok.
func FirstOk[T any, E error](next func(E) bool, attempts ...func() Result[T, E]) Result[T, E] {
	var last Result[T, E]
	for _, attempt := range attempts {
		last = attempt()
		if last.IsOk() {
			return last
		}
		if next != nil && !next(last.err) {
			return last
		}
	}
	return last
}
