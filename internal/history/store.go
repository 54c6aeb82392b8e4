// Package history records generation runs in a SQLite database so recent
// outcomes survive process restarts.
package history

import (
	"context"
	"time"
)

// Run is one recorded generation run.
type Run struct {
	ID         int64
	RunID      string
	Mode       string
	Outcome    string
	Start      time.Time
	DurationMS int64
	Changed    []string
	Error      string
}

// Store persists runs.
type Store interface {
	Append(ctx context.Context, run Run) error
	Recent(ctx context.Context, limit int) ([]Run, error)
	Get(ctx context.Context, runID string) (*Run, error)
	Close() error
}
