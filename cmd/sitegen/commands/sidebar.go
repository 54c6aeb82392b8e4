package commands

import (
	"os"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/output"
	"git.home.luguber.info/inful/sitegen/internal/sitegen"
	"git.home.luguber.info/inful/sitegen/internal/summary"
)

// SidebarCmd implements the 'sidebar' command.
type SidebarCmd struct {
	Version string `arg:"" optional:"" help:"Version to render (X.Y.Z or latest)" default:"latest"`
	File    string `help:"Render an outline file directly instead of a version tree" type:"existingfile"`
	Output  string `short:"o" help:"Output format (json, ndjson, yaml, text)" default:"json" enum:"json,ndjson,yaml,text"`
	Query   string `short:"q" help:"jq expression applied to the rendered items"`
}

func (s *SidebarCmd) Run(_ *Global, root *CLI) error {
	format, err := output.ParseFormat(s.Output)
	if err != nil {
		return err
	}
	printer, err := output.NewPrinter(os.Stdout, format, s.Query)
	if err != nil {
		return err
	}

	items, err := s.load(root)
	if err != nil {
		return err
	}
	return printer.Print(items)
}

func (s *SidebarCmd) load(root *CLI) ([]summary.Item, error) {
	if s.File != "" {
		data, err := os.ReadFile(s.File)
		if err != nil {
			return nil, err
		}
		nodes, err := sitegen.ParseOutline(s.File, data)
		if err != nil {
			return nil, err
		}
		return summary.Render(nodes), nil
	}
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	return sitegen.LoadSidebar(sitegen.VersionDir(cfg.DocsPath(), s.Version), cfg.SummaryFile)
}
