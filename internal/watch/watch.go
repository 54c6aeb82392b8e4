// Package watch regenerates site inputs whenever the documentation sources
// change.
//
// Filesystem events are debounced; at most one generation runs at a time and
// requests arriving meanwhile coalesce into a single follow-up run. An
// optional periodic job re-runs generation as a safety net for missed events.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/sitegen"
)

// Runner performs one generation run.
type Runner interface {
	Generate(ctx context.Context) (*sitegen.Report, error)
}

// Options configures a Watcher.
type Options struct {
	Dirs     []string      // watched recursively
	Files    []string      // watched individually through their parent directory
	Debounce time.Duration // quiet period before a run starts
	Interval time.Duration // periodic re-run; zero disables
}

// Watcher runs a Runner on source changes.
type Watcher struct {
	runner     Runner
	opts       Options
	files      map[string]bool
	rebuildReq chan struct{}

	mu    sync.Mutex
	timer *time.Timer

	// afterRun is called after every run; used by tests.
	afterRun func(*sitegen.Report, error)
}

// New creates a Watcher.
func New(runner Runner, opts Options) *Watcher {
	files := make(map[string]bool, len(opts.Files))
	for _, f := range opts.Files {
		files[filepath.Clean(f)] = true
	}
	return &Watcher{
		runner:     runner,
		opts:       opts,
		files:      files,
		rebuildReq: make(chan struct{}, 1),
	}
}

// Trigger requests a run immediately, bypassing the debounce.
func (w *Watcher) Trigger() {
	select {
	case w.rebuildReq <- struct{}{}:
	default:
	}
}

// debounce schedules a run after the quiet period, restarting the period on
// every call.
func (w *Watcher) debounce() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.opts.Debounce, w.Trigger)
}

// Run performs an initial generation, then watches until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer fw.Close()

	for _, dir := range w.opts.Dirs {
		if err := addDirsRecursive(fw, dir); err != nil {
			return err
		}
	}
	for _, f := range w.opts.Files {
		if err := fw.Add(filepath.Dir(f)); err != nil {
			return fmt.Errorf("watch %s: %w", filepath.Dir(f), err)
		}
	}

	if w.opts.Interval > 0 {
		sched, err := w.schedule(w.opts.Interval)
		if err != nil {
			return err
		}
		defer func() { _ = sched.Shutdown() }()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.worker(ctx)
	}()

	w.Trigger()
	slog.Info("Watching for changes",
		slog.Any("dirs", w.opts.Dirs),
		slog.Duration("debounce", w.opts.Debounce))

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			<-done
			slog.Info("Watch stopped")
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fw, ev)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) schedule(interval time.Duration) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			slog.Debug("Scheduled regeneration")
			w.Trigger()
		}),
		gocron.WithName("periodic-regenerate"),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create periodic job: %w", err)
	}
	s.Start()
	return s, nil
}

// worker executes queued runs one at a time. The single-slot request channel
// coalesces every request made during a run into one follow-up run.
func (w *Watcher) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.rebuildReq:
			report, err := w.runner.Generate(ctx)
			if err != nil {
				slog.Warn("Regeneration failed", logfields.Error(err))
			}
			if w.afterRun != nil {
				w.afterRun(report, err)
			}
		}
	}
}

func (w *Watcher) handleEvent(fw *fsnotify.Watcher, ev fsnotify.Event) {
	if ev.Op == fsnotify.Chmod || shouldIgnoreEvent(ev.Name) {
		return
	}
	if !w.relevant(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(fw, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	w.debounce()
}

// relevant reports whether a path lies under a watched directory or is one
// of the watched files.
func (w *Watcher) relevant(p string) bool {
	p = filepath.Clean(p)
	if w.files[p] {
		return true
	}
	for _, dir := range w.opts.Dirs {
		dir = filepath.Clean(dir)
		if p == dir || strings.HasPrefix(p, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if err := w.Add(p); err != nil {
				slog.Warn("Watch add failed", logfields.Path(p), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for filesystem events that should not trigger runs.
func shouldIgnoreEvent(p string) bool {
	base := filepath.Base(p)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
