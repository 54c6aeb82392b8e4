package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/history"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/notify"
	"git.home.luguber.info/inful/sitegen/internal/sitegen"
)

// Global carries process-wide state into every command.
type Global struct {
	Logger  *slog.Logger
	Context context.Context
}

func (g *Global) ctx() context.Context {
	if g == nil || g.Context == nil {
		return context.Background()
	}
	return g.Context
}

// CLI definition & global flags.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path" default:"sitegen.yaml"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics in text format to this file on exit" type:"path"`

	Generate GenerateCmd `cmd:"" help:"Sync doc trees and write sidebars, versions and redirects"`
	Sidebar  SidebarCmd  `cmd:"" help:"Print the sidebar rendered from a SUMMARY.md outline"`
	Lint     LintCmd     `cmd:"" help:"Check a version's docs tree against its SUMMARY.md"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate whenever docs or the versions file change"`
	Status   StatusCmd   `cmd:"" help:"List generated outputs that differ from git HEAD"`
	History  HistoryCmd  `cmd:"" help:"List recent generation runs"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// session bundles a generator with the optional sinks and metrics registry
// wired from configuration.
type session struct {
	cfg      *config.Config
	gen      *sitegen.Generator
	registry *prom.Registry

	metricsFile string
	closers     []func()
}

// newSession loads configuration and builds a generator. The history store
// and NATS publisher are attached as run sinks when configured; a NATS
// connection failure is logged and generation continues without it.
func newSession(root *CLI, withRegistry bool) (*session, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	rt := &session{cfg: cfg, metricsFile: root.MetricsFile}

	opts := []sitegen.Option{sitegen.WithLogger(slog.Default())}
	if withRegistry || root.MetricsFile != "" {
		rt.registry = prom.NewRegistry()
		rt.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		opts = append(opts, sitegen.WithRecorder(metrics.NewPrometheusRecorder(rt.registry)))
	}

	if p := cfg.HistoryPath(); p != "" {
		store, err := history.NewSQLiteStore(p)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, func() { _ = store.Close() })
		opts = append(opts, sitegen.WithRunSink(store))
	}

	if cfg.Notify.NATSURL != "" {
		pub, err := notify.Connect(cfg.Notify.NATSURL, cfg.Notify.Subject)
		if err != nil {
			slog.Warn("Run notifications disabled", logfields.Error(err))
		} else {
			rt.closers = append(rt.closers, pub.Close)
			opts = append(opts, sitegen.WithRunSink(pub))
		}
	}

	rt.gen = sitegen.New(cfg, opts...)
	return rt, nil
}

// Close writes the metrics file when requested and releases sinks.
func (rt *session) Close() {
	if rt.metricsFile != "" && rt.registry != nil {
		if err := metrics.WriteTextfile(rt.metricsFile, rt.registry); err != nil {
			slog.Warn("Failed to write metrics file", logfields.Path(rt.metricsFile), logfields.Error(err))
		}
	}
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
}
