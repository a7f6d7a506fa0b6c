package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"git.home.luguber.info/inful/buildforge/internal/generator"
	"git.home.luguber.info/inful/buildforge/internal/graph"
)

// GraphCmd implements the 'graph' command: a read-only view of the persisted
// build graph.
type GraphCmd struct {
	Format string `help:"Output format (text, json)" default:"text" enum:"text,json"`
}

func (g *GraphCmd) Run(_ *Global, root *CLI) error {
	loaded, err := generator.New().Load(context.Background(), root.Path)
	if err != nil {
		return err
	}

	if g.Format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(loaded)
	}

	fmt.Printf("Workspace: %s\n", loaded.Name)
	fmt.Printf("Artifact:  %s\n", loaded.WorkspacePath)
	if loaded.Metadata.Revision != "" {
		fmt.Printf("Revision:  %s\n", loaded.Metadata.Revision)
	}
	fmt.Printf("Generated: %s\n", loaded.Metadata.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	fmt.Printf("\nTargets (%d):\n", len(loaded.Targets))
	for _, t := range loaded.Targets {
		fmt.Printf("  %-30s %s\n", t.QualifiedName(), t.Product)
	}

	insp := graph.NewInspector()
	fmt.Printf("\nEntry schemes:\n")
	for _, s := range insp.BuildableEntrySchemes(loaded) {
		fmt.Printf("  %s\n", s.Name)
	}
	fmt.Printf("\nAll schemes (%d):\n", len(loaded.Schemes))
	for _, s := range loaded.Schemes {
		marker := " "
		if s.Generated {
			marker = "*"
		}
		fmt.Printf("  %s %s\n", marker, s.Name)
	}
	return nil
}
