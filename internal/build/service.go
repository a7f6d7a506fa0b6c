// Package build provides the canonical build orchestration for buildforge.
// All execution paths (CLI, watch mode, tests) route through Service.
package build

import (
	"context"
	"time"
)

// Service is the canonical interface for executing orchestrated builds.
type Service interface {
	// Run executes one orchestrated run: acquire graph → resolve schemes →
	// build sequentially. Returns a RunResult and the first error
	// encountered; the run is fail-fast and never retries.
	Run(ctx context.Context, req RunRequest) (*RunResult, error)
}

// RunRequest contains all inputs for one orchestrated run. Optional string
// parameters use "" for "not given".
type RunRequest struct {
	// Scheme selects a single scheme by exact name. Empty means "build the
	// entry schemes".
	Scheme string

	// Generate forces full graph generation even when a workspace artifact
	// already exists.
	Generate bool

	// Clean discards previous build products before building. Across an
	// entry-scheme run only the first invocation cleans.
	Clean bool

	// ListSchemes prints the buildable schemes and builds nothing.
	ListSchemes bool

	// Configuration is passed through to the target builder.
	Configuration string

	// OutputPath overrides the build output location.
	OutputPath string

	// RootPath is the project root to operate on.
	RootPath string
}

// RunResult contains the outcome of an orchestrated run. A multi-scheme run
// reports a single outcome, not one per scheme.
type RunResult struct {
	// Status indicates the overall run outcome.
	Status RunStatus

	// SchemeList is the formatted scheme listing when ListSchemes was set.
	SchemeList string

	// SchemesBuilt lists the schemes built, in build order. On failure it
	// contains the schemes completed before the failing one.
	SchemesBuilt []string

	// WorkspacePath is the resolved workspace artifact path.
	WorkspacePath string

	// Generated reports whether this run performed full graph generation.
	Generated bool

	// Duration is the total run execution time.
	Duration time.Duration

	// StartTime is when the run started.
	StartTime time.Time
}

// RunStatus represents the outcome of an orchestrated run.
type RunStatus string

const (
	// RunStatusSuccess indicates the run completed successfully.
	RunStatusSuccess RunStatus = "success"

	// RunStatusFailed indicates the run aborted on its first error.
	RunStatusFailed RunStatus = "failed"

	// RunStatusListed indicates the run only listed schemes.
	RunStatusListed RunStatus = "listed"
)

// IsSuccess returns true for outcomes that should exit zero.
func (s RunStatus) IsSuccess() bool {
	return s == RunStatusSuccess || s == RunStatusListed
}
