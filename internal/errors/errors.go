// Package errors provides the structured error type (BuildForgeError) used
// across buildforge for classification-based exit behavior in the CLI.
package errors

import "fmt"

// ErrorKind identifies the failure a BuildForgeError represents.
type ErrorKind string

const (
	// Orchestration failures
	KindWorkspaceNotFound             ErrorKind = "workspace_not_found"
	KindSchemeNotFound                ErrorKind = "scheme_not_found"
	KindSchemeWithoutBuildableTargets ErrorKind = "scheme_without_buildable_targets"

	// Input and environment failures
	KindConfig   ErrorKind = "config"
	KindManifest ErrorKind = "manifest"
	KindGraph    ErrorKind = "graph"
	KindBuilder  ErrorKind = "builder"
	KindInternal ErrorKind = "internal"
)

// Classification determines how the top-level reporter treats a failure.
type Classification string

const (
	// ClassificationAbort marks expected, user-triggerable conditions
	// (unknown scheme, malformed manifest). Reported plainly.
	ClassificationAbort Classification = "abort"

	// ClassificationBug marks internal inconsistencies that should never
	// happen (workspace vanished after generation). Reported loudly with a
	// request to file an issue.
	ClassificationBug Classification = "bug"
)

// BuildForgeError is a structured error carrying a kind, a fixed
// classification, and optional context. The classification is decided by the
// constructor for each kind and never recomputed from ambient state.
type BuildForgeError struct {
	Kind           ErrorKind
	Classification Classification
	Message        string
	Cause          error
	Context        ContextFields
}

// ContextFields carries structured context for BuildForgeError.
type ContextFields map[string]any

// Error implements the error interface.
func (e *BuildForgeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling.
func (e *BuildForgeError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error.
func (e *BuildForgeError) WithContext(key string, value any) *BuildForgeError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new abort-classified BuildForgeError.
func New(kind ErrorKind, message string) *BuildForgeError {
	return &BuildForgeError{
		Kind:           kind,
		Classification: ClassificationAbort,
		Message:        message,
	}
}

// NewBug creates a new bug-classified BuildForgeError.
func NewBug(kind ErrorKind, message string) *BuildForgeError {
	return &BuildForgeError{
		Kind:           kind,
		Classification: ClassificationBug,
		Message:        message,
	}
}

// Wrap creates an abort-classified BuildForgeError wrapping an existing error.
func Wrap(err error, kind ErrorKind, message string) *BuildForgeError {
	return &BuildForgeError{
		Kind:           kind,
		Classification: ClassificationAbort,
		Message:        message,
		Cause:          err,
	}
}

// IsKind checks if an error is a BuildForgeError of a specific kind.
func IsKind(err error, kind ErrorKind) bool {
	if bfe, ok := err.(*BuildForgeError); ok {
		return bfe.Kind == kind
	}
	return false
}

// ClassificationOf extracts the classification from an error. Errors that are
// not BuildForgeErrors are treated as aborts: they come from collaborators
// (config loader, builder) whose failures are expected conditions.
func ClassificationOf(err error) Classification {
	if bfe, ok := err.(*BuildForgeError); ok {
		return bfe.Classification
	}
	return ClassificationAbort
}
