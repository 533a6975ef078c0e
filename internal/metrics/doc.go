// Package metrics records content pipeline observations.
//
// Components hold a Recorder and default to NoopRecorder, so metrics can be
// switched on by injecting a PrometheusRecorder without nil checks at call
// sites:
//
//	reg := prometheus.NewRegistry()
//	p := pipeline.New(cfg, pipeline.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//	mux.Handle("GET /metrics", metrics.HTTPHandler(reg))
package metrics
