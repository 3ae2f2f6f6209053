// Package errors provides structured errors and diagnostics for oore.
//
// Two classes of problem are reported. Fatal errors (reserved state keys,
// hooks used outside a render pass, hook order violations) signal a misuse
// of the API contract; they are returned or panicked and never suppressed.
// Advisory diagnostics (missing slot names, missing required slots, invalid
// children) are forwarded to the global handler in development mode and
// dropped in production mode.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error or diagnostic.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindReservedKey indicates a state key colliding with a container member.
	KindReservedKey
	// KindMisuse indicates an API used outside its required context.
	KindMisuse
	// KindHookOrder indicates hooks called in a different order or count
	// than on the previous render.
	KindHookOrder
	// KindUnknownKey indicates a state key that was not declared at construction.
	KindUnknownKey
	// KindRender indicates a failed render pass.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindMissingSlotName indicates a registry entry whose slot name cannot be resolved.
	KindMissingSlotName
	// KindMissingRequiredSlot indicates a required slot with no matching child.
	KindMissingRequiredSlot
	// KindInvalidChild indicates a child that is not an element node.
	KindInvalidChild
	// KindDuplicateSlotName indicates two registry entries resolving to one slot name.
	KindDuplicateSlotName
	// KindUnmountedUpdate indicates an update requested on an unmounted element.
	KindUnmountedUpdate
)

func (k ErrorKind) String() string {
	switch k {
	case KindReservedKey:
		return "reserved-key"
	case KindMisuse:
		return "misuse"
	case KindHookOrder:
		return "hook-order"
	case KindUnknownKey:
		return "unknown-key"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	case KindMissingSlotName:
		return "missing-slot-name"
	case KindMissingRequiredSlot:
		return "missing-required-slot"
	case KindInvalidChild:
		return "invalid-child"
	case KindDuplicateSlotName:
		return "duplicate-slot-name"
	case KindUnmountedUpdate:
		return "unmounted-update"
	default:
		return "unknown"
	}
}

// Sentinel errors. Match them with errors.Is against any *OoreError,
// *RenderError or wrapped chain.
var (
	ErrReservedKey   = stderrors.New("key is reserved by the state container")
	ErrDuplicateKey  = stderrors.New("key declared more than once")
	ErrEmptyKey      = stderrors.New("key is empty")
	ErrUnknownKey    = stderrors.New("key was not declared in the initial state")
	ErrNotRefreshed  = stderrors.New("state container has not been refreshed in a render pass")
	ErrOutsideRender = stderrors.New("hook called outside a render pass")
	ErrHookOrder     = stderrors.New("hooks called in a different order than the previous render")
	ErrRenderLoop    = stderrors.New("too many consecutive re-renders")
)

// OoreError represents a structured fatal error.
type OoreError struct {
	// Op is the operation that failed (e.g., "state.New").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Key is the state key or slot alias involved, if any.
	Key string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *OoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s [%s] key=%q: %v", e.Op, e.Kind, e.Key, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *OoreError) Unwrap() error {
	return e.Err
}

// New builds an OoreError for op.
func New(op string, kind ErrorKind, key string, err error) *OoreError {
	return &OoreError{
		Op:        op,
		Kind:      kind,
		Key:       key,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// Diagnostic is a non-fatal, advisory report. Rendering continues and the
// offending entry is excluded from matching.
type Diagnostic struct {
	// Op is the operation that raised the diagnostic.
	Op string
	// Kind categorizes the diagnostic.
	Kind ErrorKind
	// Subject is the slot alias, key or value the diagnostic is about.
	Subject any
	// Message is the human readable description.
	Message string
	// Timestamp is when the diagnostic was raised.
	Timestamp time.Time
}

func (d *Diagnostic) String() string {
	return fmt.Sprintf("%s [%s]: %s", d.Op, d.Kind, d.Message)
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "core.Effect").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// RenderError represents a failure during a component render pass.
type RenderError struct {
	// Component is the name of the component that failed.
	Component string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error. When the panic value is an error it is
	// stored here as well, so errors.Is sees through the render failure.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *RenderError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s.Render(): %v", e.Component, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in %s.Render(): %v", e.Component, e.Err)
	}
	return fmt.Sprintf("unknown error in %s.Render()", e.Component)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Join wraps the given errors; nil errors are discarded.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// ErrorHandler receives errors reported by oore.
type ErrorHandler interface {
	// HandleError is called when a fatal error is reported.
	HandleError(err *OoreError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleRenderError is called when a component render fails.
	HandleRenderError(err *RenderError)
	// HandleDiagnostic is called for advisory diagnostics in development mode.
	HandleDiagnostic(d *Diagnostic)
}
