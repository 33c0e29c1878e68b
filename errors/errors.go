package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseResolve Phase = "resolve" // library path resolution
	PhaseLoad    Phase = "load"    // shared library loading
	PhaseCall    Phase = "call"    // native entry point invocation
	PhaseTrace   Phase = "trace"   // execution trace recording
)

// Kind categorizes the error
type Kind string

const (
	KindUnsupportedPlatform     Kind = "unsupported_platform"
	KindUnsupportedArchitecture Kind = "unsupported_architecture"
	KindInvalidVariantFormat    Kind = "invalid_variant_format"
	KindVariantNotFound         Kind = "variant_not_found"
	KindLibraryNotFound         Kind = "library_not_found"
	KindOpenFailed              Kind = "open_failed"
	KindMissingSymbol           Kind = "missing_symbol"
	KindNativeCallFailure       Kind = "native_call_failure"
	KindIOFailure               Kind = "io_failure"
)

// Error is the structured error type used throughout the binding
type Error struct {
	Phase    Phase
	Kind     Kind
	Op       string   // operation name for call failures, e.g. "CloneEntity"
	Symbol   string   // native symbol name for load failures
	Path     string   // file path involved, when any
	Variants []string // variants discoverable on disk, for variant_not_found
	Detail   string
	Cause    error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}
	if e.Symbol != "" {
		b.WriteString(" for symbol ")
		b.WriteString(e.Symbol)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Path != "" {
		b.WriteString(" (path: ")
		b.WriteString(e.Path)
		b.WriteByte(')')
	}
	if len(e.Variants) > 0 {
		b.WriteString(" (discoverable variants: ")
		b.WriteString(strings.Join(e.Variants, ", "))
		b.WriteByte(')')
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

// Op sets the operation name
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Symbol sets the native symbol name
func (b *Builder) Symbol(name string) *Builder {
	b.err.Symbol = name
	return b
}

// Path sets the file path involved
func (b *Builder) Path(path string) *Builder {
	b.err.Path = path
	return b
}

// Variants sets the list of variants discoverable on disk
func (b *Builder) Variants(variants []string) *Builder {
	b.err.Variants = variants
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

// UnsupportedPlatform reports an operating system outside the supported set.
func UnsupportedPlatform(os string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindUnsupportedPlatform,
		Detail: fmt.Sprintf("unsupported platform %q; supply an explicit library path to use this platform", os),
	}
}

// UnsupportedArchitecture reports an architecture outside the supported set
// for the resolved operating system.
func UnsupportedArchitecture(os, arch string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindUnsupportedArchitecture,
		Detail: fmt.Sprintf("unsupported architecture %q for platform %q; supply an explicit library path to use this machine", arch, os),
	}
}

// InvalidVariantFormat reports a variant string missing its leading dash.
func InvalidVariantFormat(variant string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindInvalidVariantFormat,
		Detail: fmt.Sprintf("library variant %q must start with a \"-\"", variant),
	}
}

// VariantNotFound reports a variant absent from the binaries discoverable on
// disk for the resolved platform and architecture.
func VariantNotFound(variant string, discoverable []string) *Error {
	return &Error{
		Phase:    PhaseResolve,
		Kind:     KindVariantNotFound,
		Variants: discoverable,
		Detail:   fmt.Sprintf("library variant %q is not among the variants present on disk", variant),
	}
}

// LibraryNotFound reports a missing library file at a resolved or supplied
// path.
func LibraryNotFound(path, detail string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindLibraryNotFound,
		Path:   path,
		Detail: detail,
	}
}

// OpenFailed wraps a loader failure for an existing library file.
func OpenFailed(path string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindOpenFailed,
		Path:   path,
		Detail: "could not load shared library",
		Cause:  cause,
	}
}

// MissingSymbol reports an entry point the loaded binary does not export.
func MissingSymbol(symbol string) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindMissingSymbol,
		Symbol: symbol,
		Detail: "entry point not exported by the loaded library",
	}
}

// CallFailed reports an engine-side failure signalled by a call's return
// value.
func CallFailed(op, detail string) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindNativeCallFailure,
		Op:     op,
		Detail: detail,
	}
}

// TraceIO reports a trace file failure. Trace failures are diagnostic only
// and never abort the call they were recording.
func TraceIO(path string, cause error) *Error {
	return &Error{
		Phase: PhaseTrace,
		Kind:  KindIOFailure,
		Path:  path,
		Cause: cause,
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
