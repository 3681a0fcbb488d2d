package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates which operation produced the error
type Phase string

const (
	PhaseGrow   Phase = "grow"   // page growth
	PhaseWrite  Phase = "write"  // cursor writes
	PhaseRead   Phase = "read"   // cursor reads
	PhaseSeek   Phase = "seek"   // cursor repositioning
	PhaseHost   Phase = "host"   // host memory setup
	PhaseEncode Phase = "encode" // Go value to stable memory
	PhaseDecode Phase = "decode" // stable memory to Go value
)

// Kind categorizes the error
type Kind string

const (
	KindOutOfMemory   Kind = "out_of_memory"
	KindOutOfBounds   Kind = "out_of_bounds"
	KindInvalidInput  Kind = "invalid_input"
	KindInvalidData   Kind = "invalid_data"
	KindOverflow      Kind = "overflow"
	KindInstantiation Kind = "instantiation"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value     any
	Cause     error
	Phase     Phase
	Kind      Kind
	Detail    string
	Offset    uint64
	HasOffset bool
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if e.HasOffset {
		b.WriteString(" at offset ")
		b.WriteString(strconv.FormatUint(e.Offset, 10))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target with an empty Phase matches on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// At sets the address the failing operation targeted
func (b *Builder) At(offset uint64) *Builder {
	b.err.Offset = offset
	b.err.HasOffset = true
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// OutOfMemory creates an error for a growth request the host refused
func OutOfMemory(phase Phase, pages uint64, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfMemory,
		Detail: fmt.Sprintf("cannot grow by %d page(s)", pages),
		Value:  pages,
		Cause:  cause,
	}
}

// OutOfBounds creates an error for a read starting at or past the known end
func OutOfBounds(phase Phase, offset, limit uint64) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindOutOfBounds,
		Offset:    offset,
		HasOffset: true,
		Detail:    fmt.Sprintf("read exceeds allocated memory (end %d)", limit),
		Value:     limit,
	}
}

// Overflow creates an error for an address range that does not fit the address width
func Overflow(phase Phase, offset uint64, length int, width string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindOverflow,
		Offset:    offset,
		HasOffset: true,
		Detail:    fmt.Sprintf("%d bytes overflow %s address space", length, width),
		Value:     length,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// Instantiation creates an error for host memory that could not be set up
func Instantiation(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseHost,
		Kind:   KindInstantiation,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
