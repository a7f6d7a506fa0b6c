// Package generator produces build graphs from workspace and project
// manifests and persists them as the workspace artifact, and loads graphs
// persisted by earlier runs.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	bferrors "git.home.luguber.info/inful/buildforge/internal/errors"
	"git.home.luguber.info/inful/buildforge/internal/graph"
	"git.home.luguber.info/inful/buildforge/internal/logfields"
	"git.home.luguber.info/inful/buildforge/internal/manifest"
	gogit "github.com/go-git/go-git/v5"
)

// GraphFileName is the graph payload inside the workspace artifact.
const GraphFileName = "graph.json"

// Provider acquires a build graph for a root path, either by full generation
// from manifests or by loading a previously persisted graph.
type Provider interface {
	// Generate compiles the manifests under rootPath into a graph and
	// persists it as the workspace artifact (side effect).
	Generate(ctx context.Context, rootPath string) (*graph.Graph, error)

	// Load reads the graph persisted by a previous Generate.
	Load(ctx context.Context, rootPath string) (*graph.Graph, error)
}

// FileSystemProvider is the production Provider over on-disk manifests.
type FileSystemProvider struct {
	inspector graph.Inspector
}

// New creates a manifest-backed graph provider.
func New() *FileSystemProvider {
	return &FileSystemProvider{inspector: graph.NewInspector()}
}

// Generate walks the workspace manifest, assembles the graph, and writes the
// workspace artifact under rootPath.
func (p *FileSystemProvider) Generate(ctx context.Context, rootPath string) (*graph.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ws, err := manifest.LoadWorkspace(rootPath)
	if err != nil {
		return nil, bferrors.ManifestError(err, filepath.Join(rootPath, manifest.WorkspaceFileName))
	}

	projects := make([]*manifest.Project, 0, len(ws.Projects))
	projectDirs := make(map[string]string, len(ws.Projects))
	for _, dir := range ws.Projects {
		abs, err := filepath.Abs(filepath.Join(rootPath, dir))
		if err != nil {
			return nil, bferrors.GraphError(err, fmt.Sprintf("failed to resolve project directory %s", dir))
		}
		proj, err := manifest.LoadProject(abs)
		if err != nil {
			return nil, bferrors.ManifestError(err, filepath.Join(abs, manifest.ProjectFileName))
		}
		projects = append(projects, proj)
		projectDirs[proj.Name] = abs
	}

	g, err := assemble(ws, projects, projectDirs)
	if err != nil {
		return nil, err
	}

	fingerprint, err := manifest.Fingerprint(ws, projects)
	if err != nil {
		return nil, bferrors.GraphError(err, "failed to fingerprint manifests")
	}
	g.Metadata = graph.Metadata{
		GeneratedAt: time.Now().UTC(),
		Fingerprint: fingerprint,
		Revision:    headRevision(rootPath),
	}

	artifactPath, err := p.persist(rootPath, g)
	if err != nil {
		return nil, err
	}
	g.WorkspacePath = artifactPath

	slog.Info("Generated build graph",
		logfields.Workspace(artifactPath),
		slog.Int("targets", len(g.Targets)),
		slog.Int("schemes", len(g.Schemes)))
	return g, nil
}

// Load reads the graph from the workspace artifact under rootPath.
func (p *FileSystemProvider) Load(ctx context.Context, rootPath string) (*graph.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	artifactPath, ok := p.inspector.WorkspacePath(rootPath)
	if !ok {
		return nil, bferrors.GraphError(nil, fmt.Sprintf("no workspace artifact at %s, run generate first", rootPath))
	}

	data, err := os.ReadFile(filepath.Join(artifactPath, GraphFileName))
	if err != nil {
		return nil, bferrors.GraphError(err, "failed to read persisted graph")
	}
	var g graph.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, bferrors.GraphError(err, "failed to unmarshal persisted graph")
	}
	g.WorkspacePath = artifactPath

	slog.Debug("Loaded build graph", logfields.Workspace(artifactPath))
	return &g, nil
}

// assemble builds the graph structure from parsed manifests. Declared schemes
// become entry schemes in workspace-project order; projects without declared
// schemes get a generated entry scheme building all their targets; every
// target additionally gets a generated non-entry scheme under its qualified
// name.
func assemble(ws *manifest.Workspace, projects []*manifest.Project, projectDirs map[string]string) (*graph.Graph, error) {
	g := &graph.Graph{Name: ws.Name, Projects: make([]string, 0, len(projects))}

	targetNames := make(map[string]bool)
	for _, proj := range projects {
		g.Projects = append(g.Projects, proj.Name)
		for _, t := range proj.Targets {
			qualified := proj.Name + "/" + t.Name
			gt := graph.Target{
				Project:      proj.Name,
				Name:         t.Name,
				Product:      t.Product,
				Directory:    projectDirs[proj.Name],
				Dependencies: qualifyDependencies(proj.Name, t.Dependencies),
			}
			g.Targets = append(g.Targets, gt)
			targetNames[qualified] = true
		}
	}

	// Dependencies must reference targets that exist somewhere in the graph.
	for _, t := range g.Targets {
		for _, dep := range t.Dependencies {
			if !targetNames[dep] {
				return nil, bferrors.GraphError(nil,
					fmt.Sprintf("target %s depends on unknown target %s", t.QualifiedName(), dep))
			}
		}
	}

	schemeNames := make(map[string]string) // name -> owning project
	addScheme := func(s graph.Scheme) error {
		if owner, exists := schemeNames[s.Name]; exists {
			return bferrors.GraphError(nil,
				fmt.Sprintf("scheme %s declared in both %s and %s", s.Name, owner, s.Project))
		}
		schemeNames[s.Name] = s.Project
		g.Schemes = append(g.Schemes, s)
		return nil
	}

	for _, proj := range projects {
		if len(proj.Schemes) > 0 {
			for _, s := range proj.Schemes {
				if err := addScheme(graph.Scheme{
					Name:         s.Name,
					Project:      proj.Name,
					BuildTargets: qualifyDependencies(proj.Name, s.BuildTargets),
					Entry:        true,
				}); err != nil {
					return nil, err
				}
			}
			continue
		}
		// No declared schemes: the project itself becomes the entry scheme.
		all := make([]string, 0, len(proj.Targets))
		for _, t := range proj.Targets {
			all = append(all, proj.Name+"/"+t.Name)
		}
		if err := addScheme(graph.Scheme{
			Name:         proj.Name,
			Project:      proj.Name,
			BuildTargets: all,
			Entry:        true,
			Generated:    true,
		}); err != nil {
			return nil, err
		}
	}

	// Per-target schemes for focused builds; skipped when the qualified name
	// collides with a declared scheme.
	for _, t := range g.Targets {
		qualified := t.QualifiedName()
		if _, exists := schemeNames[qualified]; exists {
			continue
		}
		schemeNames[qualified] = t.Project
		g.Schemes = append(g.Schemes, graph.Scheme{
			Name:         qualified,
			Project:      t.Project,
			BuildTargets: []string{qualified},
			Generated:    true,
		})
	}

	return g, nil
}

// qualifyDependencies rewrites bare target names as project-local references.
func qualifyDependencies(project string, refs []string) []string {
	if len(refs) == 0 {
		return nil
	}
	out := make([]string, len(refs))
	for i, ref := range refs {
		if strings.Contains(ref, "/") {
			out[i] = ref
		} else {
			out[i] = project + "/" + ref
		}
	}
	return out
}

// persist writes the graph into a fresh <name>.forgespace artifact, replacing
// any previous artifact so discovery stays unambiguous after a rename.
func (p *FileSystemProvider) persist(rootPath string, g *graph.Graph) (string, error) {
	entries, err := os.ReadDir(rootPath)
	if err != nil {
		return "", bferrors.GraphError(err, "failed to read root path")
	}
	for _, e := range entries {
		if e.IsDir() && strings.HasSuffix(e.Name(), graph.WorkspaceArtifactSuffix) {
			if err := os.RemoveAll(filepath.Join(rootPath, e.Name())); err != nil {
				return "", bferrors.GraphError(err, "failed to remove stale workspace artifact")
			}
		}
	}

	artifactPath := filepath.Join(rootPath, g.Name+graph.WorkspaceArtifactSuffix)
	if err := os.MkdirAll(artifactPath, 0o750); err != nil {
		return "", bferrors.GraphError(err, "failed to create workspace artifact")
	}

	payload := *g
	payload.WorkspacePath = "" // recomputed from the artifact location on load
	data, err := json.MarshalIndent(&payload, "", "  ")
	if err != nil {
		return "", bferrors.GraphError(err, "failed to marshal graph")
	}
	if err := os.WriteFile(filepath.Join(artifactPath, GraphFileName), data, 0o644); err != nil {
		return "", bferrors.GraphError(err, "failed to write graph")
	}
	return artifactPath, nil
}

// headRevision returns the VCS HEAD hash when rootPath is inside a git
// repository. Absence of a repository is expected and returns "".
func headRevision(rootPath string) string {
	repo, err := gogit.PlainOpenWithOptions(rootPath, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	return head.Hash().String()
}
