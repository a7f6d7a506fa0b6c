package errors

import (
	"fmt"
	"strings"
)

// Convenience constructors for the orchestration error taxonomy. Each fixes
// the classification for its kind so callers cannot produce, say, an
// abort-classified WorkspaceNotFound.

// WorkspaceNotFound reports that a graph was acquired but no workspace could
// be located at the expected path. Always a bug: generation is supposed to
// leave a workspace artifact behind.
func WorkspaceNotFound(path string) *BuildForgeError {
	return NewBug(KindWorkspaceNotFound, fmt.Sprintf("workspace not found at %s", path)).
		WithContext("path", path)
}

// SchemeNotFound reports a requested scheme name absent from the buildable
// set. Candidates must be the full sorted buildable-scheme-name list.
func SchemeNotFound(requested string, candidates []string) *BuildForgeError {
	return New(KindSchemeNotFound,
		fmt.Sprintf("scheme %s not found, available schemes: %s", requested, strings.Join(candidates, ", "))).
		WithContext("requested", requested).
		WithContext("candidates", candidates)
}

// SchemeWithoutBuildableTargets reports a scheme that resolved to zero
// buildable targets.
func SchemeWithoutBuildableTargets(scheme string) *BuildForgeError {
	return New(KindSchemeWithoutBuildableTargets,
		fmt.Sprintf("scheme %s has no buildable target", scheme)).
		WithContext("scheme", scheme)
}

// ConfigError reports a malformed or unreadable configuration file.
func ConfigError(err error, path string) *BuildForgeError {
	return Wrap(err, KindConfig, "failed to load configuration").
		WithContext("path", path)
}

// ManifestError reports a malformed project or workspace manifest.
func ManifestError(err error, path string) *BuildForgeError {
	return Wrap(err, KindManifest, "failed to parse manifest").
		WithContext("path", path)
}

// GraphError reports a failure generating, persisting, or loading the build graph.
func GraphError(err error, message string) *BuildForgeError {
	return Wrap(err, KindGraph, message)
}

// BuilderError reports a failed build invocation for a target.
func BuilderError(err error, target string) *BuildForgeError {
	return Wrap(err, KindBuilder, fmt.Sprintf("build failed for target %s", target)).
		WithContext("target", target)
}
