// Package errors provides structured error types for the stable-memory library.
//
// Errors are categorized by Phase (which operation failed) and Kind (error category).
// The Error type carries the offending address when one is known, a detail
// message and an optional cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRead, errors.KindOutOfBounds).
//		At(65536).
//		Detail("read of %d bytes past cached end %d", 1, 65536).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfMemory(errors.PhaseGrow, 2, cause)
//	err := errors.OutOfBounds(errors.PhaseRead, 65536, 65536)
//
// All errors implement the standard error interface and support errors.Is/As.
// A target without a Phase matches any error of the same Kind, which is how
// the root package sentinels ErrOutOfMemory and ErrOutOfBounds are compared.
package errors
