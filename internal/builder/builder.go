// Package builder executes the actual build for one resolved target by
// invoking the configured external build tool.
package builder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"git.home.luguber.info/inful/buildforge/internal/config"
	bferrors "git.home.luguber.info/inful/buildforge/internal/errors"
	"git.home.luguber.info/inful/buildforge/internal/graph"
	"git.home.luguber.info/inful/buildforge/internal/logfields"
)

// BuildRequest carries everything one build invocation needs.
type BuildRequest struct {
	Target        graph.Target
	WorkspacePath string
	SchemeName    string
	Clean         bool
	Configuration string // "" means the builder's default
	OutputPath    string // "" means the tool's default output location
}

// TargetBuilder executes the build for one resolved target.
type TargetBuilder interface {
	BuildTarget(ctx context.Context, req BuildRequest) error
}

// CommandBuilder shells out to the configured build command (make by
// default) inside the target's project directory.
type CommandBuilder struct {
	cfg config.BuilderConfig
}

// NewCommandBuilder creates a builder over the given configuration.
func NewCommandBuilder(cfg config.BuilderConfig) *CommandBuilder {
	return &CommandBuilder{cfg: cfg}
}

// shouldRunBuild determines if the external build tool should be invoked.
// BUILDFORGE_SKIP_BUILD=1 turns every invocation into a logged no-op, which
// CI smoke tests and dry runs rely on.
func shouldRunBuild() bool {
	return os.Getenv("BUILDFORGE_SKIP_BUILD") != "1"
}

// BuildTarget runs the build command for the target. A clean build runs the
// clean goal first in the same directory; failure of either invocation fails
// the build.
func (b *CommandBuilder) BuildTarget(ctx context.Context, req BuildRequest) error {
	slog.Info("Building target",
		logfields.Target(req.Target.QualifiedName()),
		logfields.Scheme(req.SchemeName),
		logfields.Clean(req.Clean),
		logfields.Configuration(req.Configuration))

	if !shouldRunBuild() {
		slog.Info("Skipping build invocation (BUILDFORGE_SKIP_BUILD=1)",
			logfields.Target(req.Target.QualifiedName()))
		return nil
	}

	if req.Clean {
		if err := b.run(ctx, req, b.cfg.CleanGoal); err != nil {
			return bferrors.BuilderError(err, req.Target.QualifiedName())
		}
	}
	if err := b.run(ctx, req, req.Target.Name); err != nil {
		return bferrors.BuilderError(err, req.Target.QualifiedName())
	}
	return nil
}

// run executes one build-tool invocation for the given goal.
func (b *CommandBuilder) run(ctx context.Context, req BuildRequest, goal string) error {
	cmd := exec.CommandContext(ctx, b.cfg.Command, goal)
	cmd.Dir = req.Target.Directory
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), b.invocationEnv(req)...)

	slog.Debug("Running build command",
		slog.String("command", b.cfg.Command),
		slog.String("goal", goal),
		logfields.Path(req.Target.Directory))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s failed: %w", b.cfg.Command, goal, err)
	}
	return nil
}

// invocationEnv exposes the build context to the external tool.
func (b *CommandBuilder) invocationEnv(req BuildRequest) []string {
	configuration := req.Configuration
	if configuration == "" {
		configuration = b.cfg.DefaultConfiguration
	}
	env := []string{
		"BUILDFORGE_SCHEME=" + req.SchemeName,
		"BUILDFORGE_TARGET=" + req.Target.QualifiedName(),
		"BUILDFORGE_WORKSPACE=" + req.WorkspacePath,
	}
	if configuration != "" {
		env = append(env, "BUILDFORGE_CONFIGURATION="+configuration)
	}
	if req.OutputPath != "" {
		env = append(env, "BUILDFORGE_OUTPUT="+req.OutputPath)
	}
	return append(env, b.cfg.Env...)
}
