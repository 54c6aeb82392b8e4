package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// Recorder defines observability hooks for generation runs and their stages.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	ObserveRunDuration(mode string, d time.Duration)
	IncRunOutcome(mode, outcome string) // outcome: success|failed|canceled
	IncSummaryParse(version string, ok bool)
	SetSidebarItems(version string, n int)
	IncFilesWritten(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) ObserveRunDuration(string, time.Duration)   {}
func (NoopRecorder) IncRunOutcome(string, string)               {}
func (NoopRecorder) IncSummaryParse(string, bool)               {}
func (NoopRecorder) SetSidebarItems(string, int)                {}
func (NoopRecorder) IncFilesWritten(int)                        {}
