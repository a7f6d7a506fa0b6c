package commands

import (
	"fmt"

	"git.home.luguber.info/inful/buildforge/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite an existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	fmt.Printf("Writing configuration to %s\n", root.Path)
	if err := config.Init(root.Path, i.Force); err != nil {
		return err
	}
	fmt.Println("initialized successfully")
	return nil
}
