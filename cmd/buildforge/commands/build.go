package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/buildforge/internal/build"
	"git.home.luguber.info/inful/buildforge/internal/history"
	"git.home.luguber.info/inful/buildforge/internal/logfields"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Scheme        string `arg:"" optional:"" help:"Scheme to build (defaults to the entry schemes)"`
	Generate      bool   `short:"g" help:"Regenerate the workspace graph before building"`
	Clean         bool   `help:"Clean build products before building (applied once per run)"`
	ListSchemes   bool   `name:"list-schemes" help:"List buildable schemes and exit without building"`
	Configuration string `short:"C" help:"Build configuration passed to the build tool"`
	Output        string `short:"o" help:"Build output path passed to the build tool"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	svc := build.NewService()

	result, err := svc.Run(context.Background(), build.RunRequest{
		Scheme:        b.Scheme,
		Generate:      b.Generate,
		Clean:         b.Clean,
		ListSchemes:   b.ListSchemes,
		Configuration: b.Configuration,
		OutputPath:    b.Output,
		RootPath:      root.Path,
	})

	if result != nil && result.Status == build.RunStatusListed {
		fmt.Println(result.SchemeList)
		return nil
	}

	recordRun(root.Path, b.Scheme, result, err)

	if err != nil {
		return err
	}
	fmt.Printf("Built %d scheme(s) successfully\n", len(result.SchemesBuilt))
	return nil
}

// recordRun persists the run outcome to the history store. History is
// best-effort: a broken store never fails a build.
func recordRun(rootPath, scheme string, result *build.RunResult, runErr error) {
	dbPath := history.DefaultDBPath(rootPath)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		slog.Warn("Failed to create history directory", logfields.Error(err))
		return
	}
	store, err := history.Open(dbPath)
	if err != nil {
		slog.Warn("Failed to open history store", logfields.Error(err))
		return
	}
	defer store.Close()

	run := history.Run{RootPath: rootPath, Scheme: scheme}
	if result != nil {
		run.Status = string(result.Status)
		run.StartedAt = result.StartTime
		run.DurationMS = result.Duration.Milliseconds()
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if _, err := store.Record(context.Background(), run); err != nil {
		slog.Warn("Failed to record run", logfields.Error(err))
	}
}
