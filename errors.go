package svgpath

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedSegment is returned when constructing a segment from
	// parameters that don't describe one, such as an arc with a zero radius.
	ErrMalformedSegment = errors.New("malformed segment")
	// ErrOutOfDomain is returned for parameters outside [0, 1] and for
	// lengths outside [0, length].
	ErrOutOfDomain = errors.New("argument out of domain")
	// ErrUndefinedOperation is returned when an operation has no meaningful
	// answer for its input, for example the tangent of a segment that is a
	// single point.
	ErrUndefinedOperation = errors.New("undefined operation")
	// ErrNonConvergence is returned when an iterative method reaches its
	// iteration or depth limit.
	ErrNonConvergence = errors.New("numerical method did not converge")
	// ErrOverlap is returned by intersection when two segments share a
	// curve piece, so that there are infinitely many intersections.
	ErrOverlap = errors.New("segments overlap")
	// ErrMalformedDescription is returned by [ParseDescription].
	ErrMalformedDescription = errors.New("malformed path description")
)

// UnfixableKinksError reports joints that [Smoothed] could not round off,
// because the path reverses direction there.
//
// It matches [ErrUndefinedOperation] with [errors.Is].
type UnfixableKinksError struct {
	// Indices of the segments that start at an unfixable joint.
	Indices []int
}

func (err *UnfixableKinksError) Error() string {
	return fmt.Sprintf("cannot smooth 180° joints at segments %v", err.Indices)
}

func (err *UnfixableKinksError) Is(target error) bool {
	return target == ErrUndefinedOperation
}

// DescriptionError describes a syntax error in a path description.
//
// It matches [ErrMalformedDescription] with [errors.Is].
type DescriptionError struct {
	// Offset is the byte offset of the offending input.
	Offset int
	Msg    string
}

func (err *DescriptionError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", ErrMalformedDescription, err.Offset, err.Msg)
}

func (err *DescriptionError) Unwrap() error {
	return ErrMalformedDescription
}
