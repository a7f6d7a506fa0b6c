package build

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"git.home.luguber.info/inful/buildforge/internal/builder"
	"git.home.luguber.info/inful/buildforge/internal/config"
	bferrors "git.home.luguber.info/inful/buildforge/internal/errors"
	"git.home.luguber.info/inful/buildforge/internal/generator"
	"git.home.luguber.info/inful/buildforge/internal/graph"
	"git.home.luguber.info/inful/buildforge/internal/logfields"
	"git.home.luguber.info/inful/buildforge/internal/util/sets"
)

// ConfigLoader loads project configuration from a root path.
type ConfigLoader func(rootPath string) (*config.Config, error)

// TargetBuilderFactory creates the target builder for a loaded configuration.
type TargetBuilderFactory func(cfg *config.Config) builder.TargetBuilder

// DefaultService is the standard implementation of Service. Collaborators are
// injectable for testing; the orchestration policy itself never changes.
type DefaultService struct {
	configLoader   ConfigLoader
	provider       generator.Provider
	inspector      graph.Inspector
	builderFactory TargetBuilderFactory
}

// NewService creates a DefaultService with the production collaborators.
func NewService() *DefaultService {
	return &DefaultService{
		configLoader: config.Load,
		provider:     generator.New(),
		inspector:    graph.NewInspector(),
		builderFactory: func(cfg *config.Config) builder.TargetBuilder {
			return builder.NewCommandBuilder(cfg.Builder)
		},
	}
}

// WithConfigLoader allows injecting a custom config loader (for testing).
func (s *DefaultService) WithConfigLoader(l ConfigLoader) *DefaultService {
	s.configLoader = l
	return s
}

// WithProvider allows injecting a custom graph provider (for testing).
func (s *DefaultService) WithProvider(p generator.Provider) *DefaultService {
	s.provider = p
	return s
}

// WithInspector allows injecting a custom graph inspector (for testing).
func (s *DefaultService) WithInspector(i graph.Inspector) *DefaultService {
	s.inspector = i
	return s
}

// WithTargetBuilderFactory allows injecting a custom target builder factory.
func (s *DefaultService) WithTargetBuilderFactory(f TargetBuilderFactory) *DefaultService {
	s.builderFactory = f
	return s
}

// Run executes one orchestrated run.
//
// Policy: regenerate the graph when explicitly requested or when no workspace
// artifact exists yet (first run); otherwise reuse the persisted graph.
// listSchemes short-circuits before any build. Entry-scheme builds are
// strictly sequential and clean at most once, on the first invocation.
// The first failure aborts the run and propagates unchanged.
func (s *DefaultService) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	result := &RunResult{StartTime: time.Now()}
	defer func() { result.Duration = time.Since(result.StartTime) }()

	// Step 1: configuration, then graph acquisition.
	cfg, err := s.configLoader(req.RootPath)
	if err != nil {
		return s.failed(result, err)
	}

	_, haveArtifact := s.inspector.WorkspacePath(req.RootPath)
	var g *graph.Graph
	if req.Generate || !haveArtifact {
		slog.Debug("Generating build graph",
			logfields.Root(req.RootPath),
			slog.Bool("forced", req.Generate))
		g, err = s.provider.Generate(ctx, req.RootPath)
		result.Generated = true
	} else {
		slog.Debug("Reusing persisted build graph", logfields.Root(req.RootPath))
		g, err = s.provider.Load(ctx, req.RootPath)
	}
	if err != nil {
		return s.failed(result, err)
	}

	// Step 2: the workspace must be locatable after acquisition. If it is
	// not, generation broke its own contract.
	workspacePath, ok := s.inspector.WorkspacePath(req.RootPath)
	if !ok {
		return s.failed(result, bferrors.WorkspaceNotFound(req.RootPath))
	}
	result.WorkspacePath = workspacePath

	// Step 3: scheme enumeration; listing short-circuits every build path.
	schemes := s.inspector.BuildableSchemes(g)
	if req.ListSchemes {
		result.SchemeList = formatSchemeList(schemes)
		result.Status = RunStatusListed
		return result, nil
	}

	tb := s.builderFactory(cfg)

	// Step 4: resolution and build.
	if req.Scheme != "" {
		if err := s.buildNamedScheme(ctx, tb, req, g, workspacePath, schemes, result); err != nil {
			return s.failed(result, err)
		}
	} else {
		if err := s.buildEntrySchemes(ctx, tb, req, g, workspacePath, result); err != nil {
			return s.failed(result, err)
		}
	}

	// Step 5: single success outcome for the whole run.
	result.Status = RunStatusSuccess
	slog.Info("Run completed",
		logfields.Workspace(workspacePath),
		slog.Int("schemes", len(result.SchemesBuilt)),
		logfields.DurationMS(float64(time.Since(result.StartTime).Milliseconds())))
	return result, nil
}

// buildNamedScheme resolves an exact scheme name and builds it once.
func (s *DefaultService) buildNamedScheme(ctx context.Context, tb builder.TargetBuilder, req RunRequest, g *graph.Graph, workspacePath string, schemes []graph.Scheme, result *RunResult) error {
	var match *graph.Scheme
	for i := range schemes {
		if schemes[i].Name == req.Scheme {
			match = &schemes[i]
			break
		}
	}
	if match == nil {
		return bferrors.SchemeNotFound(req.Scheme, sortedSchemeNames(schemes))
	}

	target, ok := s.inspector.BuildableTarget(*match, g)
	if !ok {
		return bferrors.SchemeWithoutBuildableTargets(match.Name)
	}

	if err := tb.BuildTarget(ctx, builder.BuildRequest{
		Target:        target,
		WorkspacePath: workspacePath,
		SchemeName:    match.Name,
		Clean:         req.Clean,
		Configuration: req.Configuration,
		OutputPath:    req.OutputPath,
	}); err != nil {
		return err
	}
	result.SchemesBuilt = append(result.SchemesBuilt, match.Name)
	return nil
}

// buildEntrySchemes builds every entry scheme sequentially, cleaning only on
// the first invocation. The first failure aborts the loop; remaining entry
// schemes stay unbuilt.
func (s *DefaultService) buildEntrySchemes(ctx context.Context, tb builder.TargetBuilder, req RunRequest, g *graph.Graph, workspacePath string, result *RunResult) error {
	clean := req.Clean
	for _, scheme := range s.inspector.BuildableEntrySchemes(g) {
		target, ok := s.inspector.BuildableTarget(scheme, g)
		if !ok {
			return bferrors.SchemeWithoutBuildableTargets(scheme.Name)
		}
		if err := tb.BuildTarget(ctx, builder.BuildRequest{
			Target:        target,
			WorkspacePath: workspacePath,
			SchemeName:    scheme.Name,
			Clean:         clean,
			Configuration: req.Configuration,
			OutputPath:    req.OutputPath,
		}); err != nil {
			return err
		}
		// Cleaning once is sufficient; schemes may share build products.
		clean = false
		result.SchemesBuilt = append(result.SchemesBuilt, scheme.Name)
	}
	return nil
}

func (s *DefaultService) failed(result *RunResult, err error) (*RunResult, error) {
	result.Status = RunStatusFailed
	return result, err
}

// sortedSchemeNames returns the deduplicated scheme names sorted ascending.
func sortedSchemeNames(schemes []graph.Scheme) []string {
	names := sets.New[string]()
	for _, s := range schemes {
		names.Add(s.Name)
	}
	return sets.SortedStrings(names)
}

// formatSchemeList renders the listSchemes output: deduplicated, sorted,
// comma-joined.
func formatSchemeList(schemes []graph.Scheme) string {
	return strings.Join(sortedSchemeNames(schemes), ", ")
}
