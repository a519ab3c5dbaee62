package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseWrap    Phase = "wrap"    // signature introspection and wrapping
	PhaseExpose  Phase = "expose"  // handing a wrapper to the interpreter
	PhaseInstall Phase = "install" // installing an exposed object
	PhaseCall    Phase = "call"    // argument/result conversion at call time
	PhaseState   Phase = "state"   // lock release/restore bookkeeping
	PhaseLoad    Phase = "load"    // interpreter/guest setup
)

// Kind categorizes the error
type Kind string

const (
	KindNotAFunction Kind = "not_a_function"
	KindArityLimit   Kind = "arity_limit"
	KindVariadic     Kind = "variadic"
	KindTypeMismatch Kind = "type_mismatch"
	KindUnsupported  Kind = "unsupported"
	KindPolicy       Kind = "policy"
	KindNotFound     Kind = "not_found"
	KindInvalidInput Kind = "invalid_input"
	KindRegistration Kind = "registration"
	KindClosed       Kind = "closed"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	GoType     string
	InterpType string
	Detail     string
	Path       []string
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
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.InterpType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.InterpType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", interpreter type ")
			b.WriteString(e.InterpType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("interpreter type ")
			b.WriteString(e.InterpType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.InterpType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
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

// Path sets the namespace/name path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// InterpType sets the interpreter-side type name
func (b *Builder) InterpType(t string) *Builder {
	b.err.InterpType = t
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

// NotAFunction reports that a callable was expected
func NotAFunction(phase Phase, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotAFunction,
		GoType: goType,
		Detail: "callable must be a function",
	}
}

// ArityLimit reports a function with more parameters than the wrapper supports
func ArityLimit(phase Phase, goType string, arity int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindArityLimit,
		GoType: goType,
		Detail: fmt.Sprintf("%d parameters exceed the 4-parameter limit", arity),
		Value:  arity,
	}
}

// Variadic reports a variadic function, which cannot be wrapped
func Variadic(phase Phase, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindVariadic,
		GoType: goType,
		Detail: "variadic functions are not supported",
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, interpType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindTypeMismatch,
		Path:       path,
		GoType:     goType,
		InterpType: interpType,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// BadPolicy reports a call policy the adapter does not understand
func BadPolicy(phase Phase, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindPolicy,
		GoType: goType,
		Detail: "call policy not understood by this adapter",
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

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Registration creates a registration error
func Registration(phase Phase, namespace, name string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register %s#%s", namespace, name),
		Cause:  cause,
	}
}

// Closed reports use of a closed interpreter or store
func Closed(component string) *Error {
	return &Error{
		Phase:  PhaseState,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s is closed", component),
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
