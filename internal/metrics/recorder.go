package metrics

import "time"

// Recorder defines observability hooks for orchestrated runs. Implementations
// may forward to Prometheus etc. All methods must be safe on the NoopRecorder
// so injection stays optional.
type Recorder interface {
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome string) // outcome: success|failed|listed
	IncGeneration()
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRunDuration(time.Duration) {}
func (NoopRecorder) IncRunOutcome(string)             {}
func (NoopRecorder) IncGeneration()                   {}
