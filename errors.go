package ibx

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for common operations.
var (
	// ErrNotFound is returned when a requested catalog object does not exist.
	ErrNotFound = errors.New("ibx: object not found")

	// ErrUnsupported is returned when an operation needs a capability the
	// connected engine does not have.
	ErrUnsupported = errors.New("ibx: unsupported by engine")
)

// ObjectKind names the kind of catalog object an error refers to.
type ObjectKind string

// Catalog object kinds.
const (
	KindTable    ObjectKind = "table"
	KindView     ObjectKind = "view"
	KindSequence ObjectKind = "sequence"
	KindDomain   ObjectKind = "domain"
)

// NotFoundError is returned by the reflector after an existence probe
// confirmed that the requested object is absent.
type NotFoundError struct {
	Kind ObjectKind
	Name string
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("ibx: %s %q not found", e.Kind, e.Name)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// NewNotFoundError returns a new NotFoundError for the given object.
func NewNotFoundError(kind ObjectKind, name string) *NotFoundError {
	return &NotFoundError{Kind: kind, Name: name}
}

// NoSuchTable returns a NotFoundError for a table.
func NoSuchTable(name string) *NotFoundError {
	return NewNotFoundError(KindTable, name)
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// CompileError is returned when an operation tree is malformed or asks for
// syntax the engine does not support.
type CompileError struct {
	Op  string // Operation being compiled (e.g. "create index")
	Msg string
	Err error // Optional underlying error
}

// Error returns the error string.
func (e *CompileError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("ibx: compile %s: %s", e.Op, e.Msg)
	}
	return fmt.Sprintf("ibx: compile: %s", e.Msg)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// NewCompileError returns a new CompileError.
func NewCompileError(op, format string, args ...any) *CompileError {
	return &CompileError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// NewUnsupportedError returns a CompileError wrapping ErrUnsupported.
func NewUnsupportedError(op, format string, args ...any) *CompileError {
	return &CompileError{Op: op, Msg: fmt.Sprintf(format, args...), Err: ErrUnsupported}
}

// IsCompileError returns true if the error is a CompileError.
func IsCompileError(err error) bool {
	if err == nil {
		return false
	}
	var e *CompileError
	return errors.As(err, &e)
}

// UnknownTypeWarning reports a catalog type name that has no mapping.
// The column is still reflected with an opaque type.
type UnknownTypeWarning struct {
	Table  string
	Column string
	Type   string
}

// Error returns the error string.
func (w *UnknownTypeWarning) Error() string {
	if w.Column != "" {
		return fmt.Sprintf("ibx: unknown type %q in column %q of %q", w.Type, w.Column, w.Table)
	}
	return fmt.Sprintf("ibx: unknown type %q", w.Type)
}

// IsUnknownTypeWarning returns true if the error is an UnknownTypeWarning.
func IsUnknownTypeWarning(err error) bool {
	if err == nil {
		return false
	}
	var w *UnknownTypeWarning
	return errors.As(err, &w)
}

// ConfigurationError is returned when a connection parameter is missing or invalid.
type ConfigurationError struct {
	Param string // Missing or invalid component (e.g. "host", "port", "database")
	Msg   string
}

// Error returns the error string.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("ibx: configuration: %s: %s", e.Param, e.Msg)
}

// NewConfigurationError returns a new ConfigurationError.
func NewConfigurationError(param, msg string) *ConfigurationError {
	return &ConfigurationError{Param: param, Msg: msg}
}

// IsConfigurationError returns true if the error is a ConfigurationError.
func IsConfigurationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConfigurationError
	return errors.As(err, &e)
}

// InvariantError signals that catalog data did not have the shape the
// decoder relies on. It is never recovered from.
type InvariantError struct {
	Msg string
	Raw string // Offending catalog text
}

// Error returns the error string.
func (e *InvariantError) Error() string {
	return fmt.Sprintf("ibx: invariant violated: %s: %q", e.Msg, e.Raw)
}

// IsInvariantError returns true if the error is an InvariantError.
func IsInvariantError(err error) bool {
	if err == nil {
		return false
	}
	var e *InvariantError
	return errors.As(err, &e)
}

// IdentifierError is returned for identifiers the engine cannot store.
type IdentifierError struct {
	Name string
	Max  int
}

// Error returns the error string.
func (e *IdentifierError) Error() string {
	return fmt.Sprintf("ibx: identifier %q is %d bytes long, exceeding the maximum of %d", e.Name, len(e.Name), e.Max)
}

// IsIdentifierError returns true if the error is an IdentifierError.
func IsIdentifierError(err error) bool {
	if err == nil {
		return false
	}
	var e *IdentifierError
	return errors.As(err, &e)
}

// AggregateError represents multiple errors collected during an operation.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "ibx: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("ibx: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap returns the collected errors for errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}
