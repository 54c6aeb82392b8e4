package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "sitegen"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration *prom.HistogramVec
	stageResults  *prom.CounterVec
	runDuration   *prom.HistogramVec
	runOutcomes   *prom.CounterVec
	summaryParses *prom.CounterVec
	sidebarItems  *prom.GaugeVec
	filesWritten  prom.Counter
}

// NewPrometheusRecorder constructs the metrics and registers them on reg
// (a fresh registry when reg is nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual generation stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		runDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Total generation run duration",
			Buckets:   prom.DefBuckets,
		}, []string{"mode"}),
		runOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Generation runs by mode and final status",
		}, []string{"mode", "outcome"}),
		summaryParses: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "summary_parses_total",
			Help:      "SUMMARY.md parses by documentation version and result",
		}, []string{"version", "result"}),
		sidebarItems: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "sidebar_items",
			Help:      "Rendered sidebar items (all depths) of the last successful parse",
		}, []string{"version"}),
		filesWritten: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "files_written_total",
			Help:      "Generated files written because their content changed",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.stageResults, pr.runDuration, pr.runOutcomes,
		pr.summaryParses, pr.sidebarItems, pr.filesWritten)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(mode string, d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.WithLabelValues(mode).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(mode, outcome string) {
	if p == nil {
		return
	}
	p.runOutcomes.WithLabelValues(mode, outcome).Inc()
}

func (p *PrometheusRecorder) IncSummaryParse(version string, ok bool) {
	if p == nil {
		return
	}
	res := "failed"
	if ok {
		res = "success"
	}
	p.summaryParses.WithLabelValues(version, res).Inc()
}

func (p *PrometheusRecorder) SetSidebarItems(version string, n int) {
	if p == nil {
		return
	}
	p.sidebarItems.WithLabelValues(version).Set(float64(n))
}

func (p *PrometheusRecorder) IncFilesWritten(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.filesWritten.Add(float64(n))
}
