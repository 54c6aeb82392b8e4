package metrics

import "time"

// testRecorder is a minimal in-memory Recorder used to assert the interface
// stays implementable outside of Prometheus.
type testRecorder struct {
	stageDurations map[string]int
	stageResults   map[string]map[ResultLabel]int
	runOutcomes    map[string]int
	parses         map[string]int
	items          map[string]int
	written        int
}

var (
	_ Recorder = (*testRecorder)(nil)
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)

func (t *testRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	t.stageDurations[stage]++
}

func (t *testRecorder) IncStageResult(stage string, result ResultLabel) {
	m, ok := t.stageResults[stage]
	if !ok {
		m = map[ResultLabel]int{}
		t.stageResults[stage] = m
	}
	m[result]++
}

func (t *testRecorder) ObserveRunDuration(string, time.Duration) {}
func (t *testRecorder) IncRunOutcome(mode, outcome string)       { t.runOutcomes[mode+"/"+outcome]++ }
func (t *testRecorder) IncSummaryParse(version string, _ bool)   { t.parses[version]++ }
func (t *testRecorder) SetSidebarItems(version string, n int)    { t.items[version] = n }
func (t *testRecorder) IncFilesWritten(n int)                    { t.written += n }
