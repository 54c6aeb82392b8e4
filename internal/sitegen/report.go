package sitegen

import (
	"context"
	"errors"
	"time"
)

// Mode selects whether a run writes outputs or only verifies them.
type Mode string

const (
	ModeWrite Mode = "write"
	ModeCheck Mode = "check"
)

// Outcome is the final state of a run.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// Report captures what a generation run did. Paths are relative to the
// repository root and slash-separated.
type Report struct {
	RunID     string    `json:"run_id"`
	Mode      Mode      `json:"mode"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Outcome   Outcome   `json:"outcome"`
	Error     string    `json:"error,omitempty"`
	Versions  []string  `json:"versions"`
	Written   []string  `json:"written"`   // generated files whose content changed
	Synced    []string  `json:"synced"`    // mirrored trees that were rewritten
	Pruned    []string  `json:"pruned"`    // stale versioned outputs removed
	Unchanged int       `json:"unchanged"` // generated files and trees already up to date

	StageDurations  map[StageName]time.Duration  `json:"stage_durations"`
	StageErrorKinds map[StageName]StageErrorKind `json:"stage_error_kinds,omitempty"`
	Stages          []StageName                  `json:"stages"` // executed stages, in order
}

func newReport(runID string, mode Mode, start time.Time) *Report {
	return &Report{
		RunID:           runID,
		Mode:            mode,
		Start:           start,
		StageDurations:  make(map[StageName]time.Duration),
		StageErrorKinds: make(map[StageName]StageErrorKind),
	}
}

// Duration returns the wall time of the run.
func (r *Report) Duration() time.Duration {
	if r.End.IsZero() {
		return 0
	}
	return r.End.Sub(r.Start)
}

// Changed lists every output path touched by the run.
func (r *Report) Changed() []string {
	out := make([]string, 0, len(r.Synced)+len(r.Written)+len(r.Pruned))
	out = append(out, r.Synced...)
	out = append(out, r.Pruned...)
	out = append(out, r.Written...)
	return out
}

func (r *Report) recordStage(name StageName, d time.Duration, kind StageErrorKind) {
	r.Stages = append(r.Stages, name)
	r.StageDurations[name] = d
	if kind != "" {
		r.StageErrorKinds[name] = kind
	}
}

func (r *Report) finish(end time.Time, err error) {
	r.End = end
	switch {
	case err == nil:
		r.Outcome = OutcomeSuccess
	case isCanceled(err):
		r.Outcome = OutcomeCanceled
		r.Error = err.Error()
	default:
		r.Outcome = OutcomeFailed
		r.Error = err.Error()
	}
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
