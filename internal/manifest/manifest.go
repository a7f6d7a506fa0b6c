// Package manifest defines the workspace and project manifest formats and
// their parsing. Manifests are the declarative input the graph generator
// compiles into a build graph.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest file names looked up during generation.
const (
	WorkspaceFileName = "workspace.yaml"
	ProjectFileName   = "project.yaml"
)

// Workspace is the root manifest listing the projects that make up a
// workspace. Project order is meaningful: it defines entry-scheme order.
type Workspace struct {
	Name     string   `yaml:"name"`
	Projects []string `yaml:"projects"`
}

// Project declares the targets and schemes of a single project directory.
type Project struct {
	Name    string   `yaml:"name"`
	Targets []Target `yaml:"targets"`
	Schemes []Scheme `yaml:"schemes,omitempty"`
}

// Target is the lowest-level buildable artifact of a project.
type Target struct {
	Name         string   `yaml:"name"`
	Product      string   `yaml:"product"` // app, framework, library, test
	Sources      []string `yaml:"sources,omitempty"`
	Dependencies []string `yaml:"dependencies,omitempty"` // qualified "project/target" or local target name
}

// Scheme is a user-selectable buildable unit over one or more targets.
type Scheme struct {
	Name         string   `yaml:"name"`
	BuildTargets []string `yaml:"build_targets"`
}

// LoadWorkspace reads and validates the workspace manifest at rootPath.
func LoadWorkspace(rootPath string) (*Workspace, error) {
	path := filepath.Join(rootPath, WorkspaceFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace manifest: %w", err)
	}
	var ws Workspace
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("failed to unmarshal workspace manifest: %w", err)
	}
	if err := ws.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workspace manifest %s: %w", path, err)
	}
	return &ws, nil
}

// LoadProject reads and validates the project manifest in dir.
func LoadProject(dir string) (*Project, error) {
	path := filepath.Join(dir, ProjectFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project manifest: %w", err)
	}
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal project manifest: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project manifest %s: %w", path, err)
	}
	return &p, nil
}

// Validate checks structural invariants of the workspace manifest.
func (w *Workspace) Validate() error {
	if w.Name == "" {
		return fmt.Errorf("workspace name is required")
	}
	if len(w.Projects) == 0 {
		return fmt.Errorf("workspace must list at least one project")
	}
	seen := make(map[string]bool, len(w.Projects))
	for _, p := range w.Projects {
		if p == "" {
			return fmt.Errorf("empty project entry")
		}
		if seen[p] {
			return fmt.Errorf("duplicate project entry: %s", p)
		}
		seen[p] = true
	}
	return nil
}

// Validate checks structural invariants of the project manifest.
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if len(p.Targets) == 0 {
		return fmt.Errorf("project %s declares no targets", p.Name)
	}
	targets := make(map[string]bool, len(p.Targets))
	for _, t := range p.Targets {
		if t.Name == "" {
			return fmt.Errorf("project %s has a target without a name", p.Name)
		}
		if targets[t.Name] {
			return fmt.Errorf("project %s has duplicate target %s", p.Name, t.Name)
		}
		if t.Product == "" {
			return fmt.Errorf("target %s/%s has no product", p.Name, t.Name)
		}
		targets[t.Name] = true
	}
	schemes := make(map[string]bool, len(p.Schemes))
	for _, s := range p.Schemes {
		if s.Name == "" {
			return fmt.Errorf("project %s has a scheme without a name", p.Name)
		}
		if schemes[s.Name] {
			return fmt.Errorf("project %s has duplicate scheme %s", p.Name, s.Name)
		}
		if len(s.BuildTargets) == 0 {
			return fmt.Errorf("scheme %s in project %s lists no build targets", s.Name, p.Name)
		}
		schemes[s.Name] = true
	}
	return nil
}
