package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/buildforge/internal/generator"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct{}

func (GenerateCmd) Run(_ *Global, root *CLI) error {
	g, err := generator.New().Generate(context.Background(), root.Path)
	if err != nil {
		return err
	}
	fmt.Printf("Generated workspace %s (%d targets, %d schemes)\n",
		g.WorkspacePath, len(g.Targets), len(g.Schemes))
	return nil
}
