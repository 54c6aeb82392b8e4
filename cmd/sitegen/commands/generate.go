package commands

import (
	"fmt"

	"git.home.luguber.info/inful/sitegen/internal/sitegen"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Check bool `help:"Verify generated outputs are up to date without writing"`
}

func (g *GenerateCmd) Run(global *Global, root *CLI) error {
	rt, err := newSession(root, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	mode := sitegen.ModeWrite
	if g.Check {
		mode = sitegen.ModeCheck
	}
	report, err := rt.gen.Run(global.ctx(), mode)
	if err != nil {
		return err
	}

	if g.Check {
		fmt.Printf("[OK] site is up to date (%d versions)\n", len(report.Versions))
		return nil
	}
	fmt.Printf("[OK] generated site inputs: %d written, %d synced, %d pruned, %d unchanged\n",
		len(report.Written), len(report.Synced), len(report.Pruned), report.Unchanged)
	return nil
}
