package commands

import (
	"fmt"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/gitstatus"
)

// StatusCmd implements the 'status' command.
type StatusCmd struct {
	Strict bool `help:"Exit non-zero when any generated output differs from HEAD"`
}

func (s *StatusCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	changes, err := gitstatus.Changes(cfg.SitePath())
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		fmt.Println("[OK] generated outputs match HEAD")
		return nil
	}
	for _, c := range changes {
		fmt.Printf("%-10s %s\n", c.State, c.Path)
	}
	if s.Strict {
		return errors.CheckError(fmt.Sprintf("%d generated output(s) differ from HEAD", len(changes))).Build()
	}
	return nil
}
