package sitegen

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
)

// Stage is a discrete unit of work in a generation run.
type Stage func(ctx context.Context, rs *runState) error

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Run must abort.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError carries the failing stage and the underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// runStages executes stages in order, recording timing and stopping on the
// first error. Every stage error is fatal.
func runStages(ctx context.Context, rs *runState, stages []StageDef) error {
	rec := rs.gen.recorder
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			se := &StageError{Kind: StageErrorCanceled, Stage: st.Name, Err: err}
			rs.report.recordStage(st.Name, 0, se.Kind)
			rec.IncStageResult(string(st.Name), metrics.ResultCanceled)
			return se
		}

		t0 := time.Now()
		err := st.Fn(ctx, rs)
		dur := time.Since(t0)
		rec.ObserveStageDuration(string(st.Name), dur)

		if err == nil {
			rs.report.recordStage(st.Name, dur, "")
			rec.IncStageResult(string(st.Name), metrics.ResultSuccess)
			rs.gen.logger.Debug("Stage complete",
				logfields.RunID(rs.report.RunID),
				logfields.Stage(string(st.Name)),
				logfields.DurationMS(float64(dur.Microseconds())/1000))
			continue
		}

		kind := StageErrorFatal
		result := metrics.ResultFatal
		if isCanceled(err) {
			kind = StageErrorCanceled
			result = metrics.ResultCanceled
		}
		rs.report.recordStage(st.Name, dur, kind)
		rec.IncStageResult(string(st.Name), result)
		rs.gen.logger.Debug("Stage failed",
			logfields.RunID(rs.report.RunID),
			logfields.Stage(string(st.Name)),
			logfields.Error(err))
		return &StageError{Kind: kind, Stage: st.Name, Err: err}
	}
	return nil
}

func logStage(rs *runState, msg string, attrs ...slog.Attr) {
	attrs = append([]slog.Attr{logfields.RunID(rs.report.RunID)}, attrs...)
	rs.gen.logger.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs...)
}
