package graph

import (
	"os"
	"path/filepath"
	"strings"
)

// WorkspaceArtifactSuffix is the directory suffix of the generated workspace
// artifact at the project root.
const WorkspaceArtifactSuffix = ".forgespace"

// Inspector answers queries about a build graph. The orchestrator depends on
// this interface only, never on the generator that produced the graph.
type Inspector interface {
	// WorkspacePath locates the workspace artifact under rootPath.
	// Returns false when no artifact exists (first run, or never generated).
	WorkspacePath(rootPath string) (string, bool)

	// BuildableSchemes returns every buildable scheme of the graph.
	// Scheme names are unique within the returned slice; no order is defined.
	BuildableSchemes(g *Graph) []Scheme

	// BuildableEntrySchemes returns the default schemes built when the user
	// requests none. Always a subset of BuildableSchemes. Order is the
	// generator-persisted order (workspace project order, then scheme
	// declaration order within a project) and is stable for a given graph.
	// It is intentionally not sorted.
	BuildableEntrySchemes(g *Graph) []Scheme

	// BuildableTarget resolves a scheme to its single representative
	// buildable target. Returns false for a scheme with no resolvable target.
	BuildableTarget(scheme Scheme, g *Graph) (Target, bool)
}

// DefaultInspector is the production Inspector over generated graphs.
type DefaultInspector struct{}

// NewInspector creates the production graph inspector.
func NewInspector() *DefaultInspector { return &DefaultInspector{} }

// WorkspacePath scans rootPath for a *.forgespace directory.
func (DefaultInspector) WorkspacePath(rootPath string) (string, bool) {
	entries, err := os.ReadDir(rootPath)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if e.IsDir() && strings.HasSuffix(e.Name(), WorkspaceArtifactSuffix) {
			return filepath.Join(rootPath, e.Name()), true
		}
	}
	return "", false
}

// BuildableSchemes returns all schemes of the graph.
func (DefaultInspector) BuildableSchemes(g *Graph) []Scheme {
	out := make([]Scheme, len(g.Schemes))
	copy(out, g.Schemes)
	return out
}

// BuildableEntrySchemes filters schemes marked as entry, preserving the
// persisted order.
func (DefaultInspector) BuildableEntrySchemes(g *Graph) []Scheme {
	var out []Scheme
	for _, s := range g.Schemes {
		if s.Entry {
			out = append(out, s)
		}
	}
	return out
}

// BuildableTarget returns the first build target of the scheme that resolves
// to a target present in the graph.
func (DefaultInspector) BuildableTarget(scheme Scheme, g *Graph) (Target, bool) {
	for _, name := range scheme.BuildTargets {
		if t, ok := g.TargetByName(name); ok {
			return t, true
		}
	}
	return Target{}, false
}

// SchemeNames extracts the name of every scheme in the slice.
func SchemeNames(schemes []Scheme) []string {
	names := make([]string, len(schemes))
	for i, s := range schemes {
		names[i] = s.Name
	}
	return names
}
