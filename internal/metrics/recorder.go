package metrics

import "time"

// ResultLabel enumerates source attempt outcomes for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFailure  ResultLabel = "failure"
	ResultCanceled ResultLabel = "canceled"
)

// Operation names shared by the pipeline and the feed builder.
const (
	OperationRender = "render"
	OperationFeed   = "feed"
)

// Recorder defines observability hooks for the source chain. Implementations
// must be safe for concurrent use.
type Recorder interface {
	// IncSourceAttempt counts one full attempt against a source.
	IncSourceAttempt(source, operation string, result ResultLabel)
	// IncFallback counts a move from a failed source to the next one.
	IncFallback(operation string)
	ObserveOperationDuration(operation string, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncSourceAttempt(string, string, ResultLabel)   {}
func (NoopRecorder) IncFallback(string)                             {}
func (NoopRecorder) ObserveOperationDuration(string, time.Duration) {}
