package uploads

import (
	"sync/atomic"
	"time"
)

// Metrics tracks calls to the file-storage service.
type Metrics struct {
	uploadCalls   int64
	uploadErrors  int64
	uploadLatency int64 // Total latency in nanoseconds
}

var globalMetrics = &Metrics{}

// GetMetrics returns the current metrics snapshot.
func GetMetrics() Metrics {
	return Metrics{
		uploadCalls:   atomic.LoadInt64(&globalMetrics.uploadCalls),
		uploadErrors:  atomic.LoadInt64(&globalMetrics.uploadErrors),
		uploadLatency: atomic.LoadInt64(&globalMetrics.uploadLatency),
	}
}

// UploadCalls reports the number of upload calls issued.
func (m Metrics) UploadCalls() int64 { return m.uploadCalls }

// UploadErrors reports the number of failed upload calls.
func (m Metrics) UploadErrors() int64 { return m.uploadErrors }

// ResetMetrics resets all metrics (useful for testing).
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.uploadCalls, 0)
	atomic.StoreInt64(&globalMetrics.uploadErrors, 0)
	atomic.StoreInt64(&globalMetrics.uploadLatency, 0)
}

func recordUploadCall(duration time.Duration, err error) {
	atomic.AddInt64(&globalMetrics.uploadCalls, 1)
	atomic.AddInt64(&globalMetrics.uploadLatency, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&globalMetrics.uploadErrors, 1)
	}
}
