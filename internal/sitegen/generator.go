package sitegen

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/versions"
)

// RunSink receives the report of every finished run (history store,
// notifications). Sink failures are logged and never fail the run.
type RunSink interface {
	RecordRun(ctx context.Context, r *Report) error
}

// Generator produces Docusaurus inputs for one repository layout.
type Generator struct {
	cfg      *config.Config
	recorder metrics.Recorder
	logger   *slog.Logger
	sinks    []RunSink
	stages   []StageDef
	newRunID func() string
	now      func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.recorder = r
		}
	}
}

// WithLogger sets the logger used for run and stage events.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithRunSink adds a sink notified after every run.
func WithRunSink(s RunSink) Option {
	return func(g *Generator) {
		if s != nil {
			g.sinks = append(g.sinks, s)
		}
	}
}

// New creates a Generator for cfg.
func New(cfg *config.Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		stages:   defaultStages(),
		newRunID: func() string { return uuid.NewString() },
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Config returns the configuration the generator was built with.
func (g *Generator) Config() *config.Config { return g.cfg }

// Generate writes all outputs.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	return g.Run(ctx, ModeWrite)
}

// Check verifies all outputs are up to date without writing anything.
func (g *Generator) Check(ctx context.Context) (*Report, error) {
	return g.Run(ctx, ModeCheck)
}

// Run executes one generation run. The returned report is never nil.
func (g *Generator) Run(ctx context.Context, mode Mode) (*Report, error) {
	report := newReport(g.newRunID(), mode, g.now())
	g.logger.Info("Generation started",
		logfields.RunID(report.RunID),
		logfields.Mode(string(mode)))

	err := g.run(ctx, report)
	report.finish(g.now(), err)

	g.recorder.ObserveRunDuration(string(mode), report.Duration())
	g.recorder.IncRunOutcome(string(mode), string(report.Outcome))
	g.recorder.IncFilesWritten(len(report.Written))

	attrs := []any{
		logfields.RunID(report.RunID),
		logfields.Mode(string(mode)),
		logfields.Outcome(string(report.Outcome)),
		logfields.Count(len(report.Changed())),
		logfields.DurationMS(float64(report.Duration().Microseconds()) / 1000),
	}
	if err != nil {
		g.logger.Error("Generation failed", append(attrs, logfields.Error(err))...)
	} else {
		g.logger.Info("Generation finished", attrs...)
	}

	for _, s := range g.sinks {
		if serr := s.RecordRun(context.WithoutCancel(ctx), report); serr != nil {
			g.logger.Warn("Failed to record run", logfields.RunID(report.RunID), logfields.Error(serr))
		}
	}
	return report, err
}

func (g *Generator) run(ctx context.Context, report *Report) error {
	rs := newRunState(g, report)

	if info, err := os.Stat(rs.paths.latest); err != nil || !info.IsDir() {
		return errors.ConfigError("missing docs/latest at " + rs.paths.latest).
			WithPath(rs.paths.latest).
			Build()
	}
	list, err := versions.Read(g.cfg.VersionsPath())
	if err != nil {
		return err
	}
	rs.versions = list
	report.Versions = list

	return runStages(ctx, rs, g.stages)
}

// runState carries per-run data across stages.
type runState struct {
	gen      *Generator
	report   *Report
	check    bool
	versions []string
	paths    outputPaths
}

type outputPaths struct {
	repoRoot          string
	docs              string
	latest            string
	site              string
	siteDocs          string
	versionedDocs     string
	versionedSidebars string
	versionsJSON      string
	sidebarsTS        string
	redirectsTS       string
}

func newRunState(g *Generator, report *Report) *runState {
	site := g.cfg.SitePath()
	docs := g.cfg.DocsPath()
	return &runState{
		gen:    g,
		report: report,
		check:  report.Mode == ModeCheck,
		paths: outputPaths{
			repoRoot:          g.cfg.RepoRoot,
			docs:              docs,
			latest:            filepath.Join(docs, "latest"),
			site:              site,
			siteDocs:          filepath.Join(site, "docs"),
			versionedDocs:     filepath.Join(site, "versioned_docs"),
			versionedSidebars: filepath.Join(site, "versioned_sidebars"),
			versionsJSON:      filepath.Join(site, "versions.json"),
			sidebarsTS:        filepath.Join(site, "sidebars.generated.ts"),
			redirectsTS:       filepath.Join(site, "redirects.generated.ts"),
		},
	}
}

// rel returns p relative to the repository root in slash form, for reports.
func (rs *runState) rel(p string) string {
	r, err := filepath.Rel(rs.paths.repoRoot, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(r)
}

func (rs *runState) versionSource(v string) string {
	return VersionDir(rs.paths.docs, v)
}

func (rs *runState) versionDocsDir(v string) string {
	return filepath.Join(rs.paths.versionedDocs, "version-"+v)
}

func (rs *runState) versionSidebarFile(v string) string {
	return filepath.Join(rs.paths.versionedSidebars, "version-"+v+"-sidebars.json")
}
