package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/lint"
	"git.home.luguber.info/inful/sitegen/internal/sitegen"
)

// LintCmd implements the 'lint' command.
type LintCmd struct {
	Version string `arg:"" optional:"" help:"Version tree to lint (X.Y.Z or latest)" default:"latest"`
	Format  string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	Quiet   bool   `short:"q" help:"Quiet mode: only show errors, suppress warnings"`
}

func (l *LintCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	dir := sitegen.VersionDir(cfg.DocsPath(), l.Version)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return errors.ConfigError("version tree does not exist: " + dir).
			WithVersion(l.Version).
			Build()
	}

	linter := lint.NewLinter(&lint.Config{Quiet: l.Quiet, Format: l.Format})
	result, err := linter.LintTree(dir, cfg.SummaryFile)
	if err != nil {
		return err
	}
	result.Version = l.Version

	if err := lint.NewFormatter(l.Format).Format(os.Stdout, result); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	if result.HasErrors() {
		return errors.LintError(fmt.Sprintf("lint found %d error(s) in %s", result.ErrorCount(), dir)).
			WithVersion(l.Version).
			Build()
	}
	return nil
}
