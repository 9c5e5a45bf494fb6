package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseSetup     Phase = "setup"     // table, config and capacity checks
	PhaseParse     Phase = "parse"     // chirotope and permutation text
	PhaseLoad      Phase = "load"      // catalogue reading
	PhaseEnumerate Phase = "enumerate" // lower cone scan
	PhaseWrite     Phase = "write"     // output emission
	PhaseSymmetry  Phase = "symmetry"  // group actions
	PhaseAxiom     Phase = "axiom"     // chirotope axiom checks
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidInput Kind = "invalid_input"
	KindInvalidData  Kind = "invalid_data"
	KindCapacity     Kind = "capacity"
	KindOutOfRange   Kind = "out_of_range"
	KindNotFound     Kind = "not_found"
	KindIO           Kind = "io"
	KindViolation    Kind = "violation"
	KindCanceled     Kind = "canceled"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, ":"))
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

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
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

// Path sets the location, e.g. file name and line
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
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

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// InvalidChar creates a parse error for an unexpected character at pos
func InvalidChar(path []string, ch byte, pos int) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: fmt.Sprintf("unexpected character %q at position %d", ch, pos),
		Value:  ch,
	}
}

// Capacity creates a setup-time capacity error
func Capacity(what string, value, limit int) *Error {
	return &Error{
		Phase:  PhaseSetup,
		Kind:   KindCapacity,
		Detail: fmt.Sprintf("%s %d exceeds supported maximum %d", what, value, limit),
		Value:  value,
	}
}

// OutOfRange creates an out of range error
func OutOfRange(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfRange,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of range (length %d)", index, length),
		Value:  index,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// IO wraps a file system failure for path
func IO(phase Phase, path string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIO,
		Path:   []string{path},
		Detail: "file access failed",
		Cause:  cause,
	}
}

// Violation creates an axiom violation error
func Violation(axiom, detail string) *Error {
	return &Error{
		Phase:  PhaseAxiom,
		Kind:   KindViolation,
		Detail: axiom + ": " + detail,
		Value:  axiom,
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
