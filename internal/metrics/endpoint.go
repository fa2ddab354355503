package metrics

import "sync"

// EndpointMetrics counts sales-view invocations for the lifetime of the
// process. Latency samples are append-only and never pruned; unbounded growth
// is a known limitation of the in-memory contract. The counters are injected
// into the orchestrator rather than held as globals, and guarded by a mutex
// because the HTTP layer serves requests concurrently.
type EndpointMetrics struct {
	mu          sync.Mutex
	callCount   int64
	errorCount  int64
	latenciesMS []float64
}

// Snapshot is a point-in-time copy of the counters
type Snapshot struct {
	CallCount   int64     `json:"call_count"`
	ErrorCount  int64     `json:"error_count"`
	LatenciesMS []float64 `json:"latencies_ms"`
}

// NewEndpointMetrics creates an empty metrics object
func NewEndpointMetrics() *EndpointMetrics {
	return &EndpointMetrics{}
}

// RecordCall increments the call counter
func (m *EndpointMetrics) RecordCall() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++
}

// RecordError increments the error counter
func (m *EndpointMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount++
}

// RecordLatency appends one latency sample and returns the running average
// across all samples recorded so far
func (m *EndpointMetrics) RecordLatency(latencyMS float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.latenciesMS = append(m.latenciesMS, latencyMS)

	var sum float64
	for _, sample := range m.latenciesMS {
		sum += sample
	}
	return sum / float64(len(m.latenciesMS))
}

// Snapshot returns a copy of the current counters
func (m *EndpointMetrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	latencies := make([]float64, len(m.latenciesMS))
	copy(latencies, m.latenciesMS)

	return Snapshot{
		CallCount:   m.callCount,
		ErrorCount:  m.errorCount,
		LatenciesMS: latencies,
	}
}
