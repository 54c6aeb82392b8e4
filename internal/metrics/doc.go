// Package metrics provides observability hooks for sitegen runs.
//
// Components receive a Recorder and never check for nil: NoopRecorder is the
// default and PrometheusRecorder is swapped in when --metrics-file or
// --metrics-addr is given.
//
//	gen := sitegen.New(cfg, sitegen.WithRecorder(metrics.NewPrometheusRecorder(reg)))
package metrics
