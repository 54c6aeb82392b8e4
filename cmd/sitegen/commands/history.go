package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int `short:"n" help:"Number of runs to show" default:"20"`
}

func (h *HistoryCmd) Run(global *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	p := cfg.HistoryPath()
	if p == "" {
		return errors.ConfigError("run history is disabled (set history.path)").Build()
	}
	store, err := history.NewSQLiteStore(p)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.Recent(global.ctx(), h.Limit)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "RUN ID\tSTARTED\tMODE\tOUTCOME\tDURATION\tCHANGED\tERROR")
	for _, r := range runs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			r.RunID, r.Start.Local().Format(time.DateTime), r.Mode, r.Outcome,
			time.Duration(r.DurationMS)*time.Millisecond, len(r.Changed), r.Error)
	}
	return tw.Flush()
}
