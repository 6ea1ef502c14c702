package projects

import (
	"sync/atomic"
	"time"
)

// Metrics tracks calls to the project-creation service.
type Metrics struct {
	createCalls   int64
	createErrors  int64
	createLatency int64 // Total latency in nanoseconds
}

var globalMetrics = &Metrics{}

// GetMetrics returns the current metrics snapshot.
func GetMetrics() Metrics {
	return Metrics{
		createCalls:   atomic.LoadInt64(&globalMetrics.createCalls),
		createErrors:  atomic.LoadInt64(&globalMetrics.createErrors),
		createLatency: atomic.LoadInt64(&globalMetrics.createLatency),
	}
}

// CreateCalls reports the number of creation calls issued.
func (m Metrics) CreateCalls() int64 { return m.createCalls }

// CreateErrors reports the number of failed creation calls.
func (m Metrics) CreateErrors() int64 { return m.createErrors }

// ResetMetrics resets all metrics (useful for testing).
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.createCalls, 0)
	atomic.StoreInt64(&globalMetrics.createErrors, 0)
	atomic.StoreInt64(&globalMetrics.createLatency, 0)
}

func recordCreateCall(duration time.Duration, err error) {
	atomic.AddInt64(&globalMetrics.createCalls, 1)
	atomic.AddInt64(&globalMetrics.createLatency, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&globalMetrics.createErrors, 1)
	}
}
