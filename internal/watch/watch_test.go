package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/sitegen"
)

type countingRunner struct {
	calls atomic.Int32
	delay time.Duration
}

func (r *countingRunner) Generate(context.Context) (*sitegen.Report, error) {
	r.calls.Add(1)
	time.Sleep(r.delay)
	return &sitegen.Report{Outcome: sitegen.OutcomeSuccess}, nil
}

func TestShouldIgnoreEvent(t *testing.T) {
	for _, p := range []string{"docs/.hidden.md", "docs/a.md~", "docs/.a.md.swp", "docs/#a.md#", "docs/x.swx", "Thumbs.db"} {
		require.True(t, shouldIgnoreEvent(p), p)
	}
	for _, p := range []string{"docs/a.md", "docs/SUMMARY.md", "versions/toolchain_versions.json"} {
		require.False(t, shouldIgnoreEvent(p), p)
	}
}

func TestRelevant(t *testing.T) {
	w := New(&countingRunner{}, Options{
		Dirs:  []string{"/repo/docs"},
		Files: []string{"/repo/versions/toolchain_versions.json"},
	})
	require.True(t, w.relevant("/repo/docs/latest/a.md"))
	require.True(t, w.relevant("/repo/versions/toolchain_versions.json"))
	require.False(t, w.relevant("/repo/versions/other.json"))
	require.False(t, w.relevant("/repo/docs-old/a.md"))
}

func TestWorker_CoalescesRequests(t *testing.T) {
	runner := &countingRunner{delay: 50 * time.Millisecond}
	w := New(runner, Options{Debounce: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.worker(ctx)

	w.Trigger()
	require.Eventually(t, func() bool { return runner.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	for range 10 {
		w.Trigger()
	}
	time.Sleep(200 * time.Millisecond)
	require.Equal(t, int32(2), runner.calls.Load())
}

func TestRun_RegeneratesOnChange(t *testing.T) {
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	versionsFile := filepath.Join(root, "versions", "toolchain_versions.json")
	require.NoError(t, os.MkdirAll(filepath.Join(docs, "latest"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Dir(versionsFile), 0o755))
	require.NoError(t, os.WriteFile(versionsFile, []byte(`{"versions":[]}`), 0o644))

	runner := &countingRunner{}
	w := New(runner, Options{Dirs: []string{docs}, Files: []string{versionsFile}, Debounce: 20 * time.Millisecond})
	var mu sync.Mutex
	var runs int
	w.afterRun = func(*sitegen.Report, error) {
		mu.Lock()
		runs++
		mu.Unlock()
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	// initial run
	require.Eventually(t, func() bool { return runner.calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	// new directory is picked up and changes inside it trigger a run
	require.NoError(t, os.MkdirAll(filepath.Join(docs, "latest", "guide"), 0o755))
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(docs, "latest", "guide", "a.md"), []byte("# A\n"), 0o644))
	require.Eventually(t, func() bool { return runner.calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)

	settled := runner.calls.Load()
	require.NoError(t, os.WriteFile(versionsFile, []byte(`{"versions":[{"toolchain_version":"0.1.0"}]}`), 0o644))
	require.Eventually(t, func() bool { return runner.calls.Load() > settled }, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-errCh)
	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, runs, 3)
}

func TestRun_PeriodicJob(t *testing.T) {
	docs := t.TempDir()
	runner := &countingRunner{}
	w := New(runner, Options{Dirs: []string{docs}, Debounce: time.Millisecond, Interval: 50 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return runner.calls.Load() >= 3 }, 3*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-errCh)
}
