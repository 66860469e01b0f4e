package eventbus

import "time"

// Emit outcomes passed to Metrics.RecordEmit
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics receives bus activity. Event names are passed in their String form.
type Metrics interface {
	RecordEmit(event, status string, duration time.Duration)
	RecordDiagnostic(op string)
	SetListeners(event string, count int)
}

type nopMetrics struct{}

func (nopMetrics) RecordEmit(string, string, time.Duration) {}
func (nopMetrics) RecordDiagnostic(string)                  {}
func (nopMetrics) SetListeners(string, int)                 {}
