// Package graph defines the build graph produced by generation and the
// Inspector used to query it. The graph is immutable once acquired: the
// orchestrator and every other consumer only read it.
package graph

import (
	"fmt"
	"time"
)

// Graph represents all buildable entities of a workspace and their
// dependencies. It is produced by the generator and serialized as-is into the
// workspace artifact.
type Graph struct {
	Name          string   `json:"name"`
	WorkspacePath string   `json:"workspace_path"`
	Projects      []string `json:"projects"`
	Targets       []Target `json:"targets"`
	Schemes       []Scheme `json:"schemes"`
	Metadata      Metadata `json:"metadata"`
}

// Target is the lowest-level buildable artifact within the graph. Targets are
// qualified by their owning project ("project/name").
type Target struct {
	Project      string   `json:"project"`
	Name         string   `json:"name"`
	Product      string   `json:"product"`
	Directory    string   `json:"directory"` // absolute project directory, build cwd
	Dependencies []string `json:"dependencies,omitempty"`
}

// QualifiedName returns the "project/name" identifier of the target.
func (t Target) QualifiedName() string {
	return fmt.Sprintf("%s/%s", t.Project, t.Name)
}

// Scheme is a named buildable unit resolving to one or more targets.
// Entry marks the default schemes built when the user specifies none;
// Generated marks schemes synthesized per target rather than declared.
type Scheme struct {
	Name         string   `json:"name"`
	Project      string   `json:"project"`
	BuildTargets []string `json:"build_targets"` // qualified target names
	Entry        bool     `json:"entry"`
	Generated    bool     `json:"generated,omitempty"`
}

// Metadata stamps provenance onto a generated graph.
type Metadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	Fingerprint string    `json:"fingerprint"`
	Revision    string    `json:"revision,omitempty"` // VCS HEAD at generation time
}

// TargetByName returns the target with the given qualified name.
func (g *Graph) TargetByName(qualified string) (Target, bool) {
	for _, t := range g.Targets {
		if t.QualifiedName() == qualified {
			return t, true
		}
	}
	return Target{}, false
}
