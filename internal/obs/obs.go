// Package obs provides lightweight observability for scheduler
// operations.
package obs

import (
	"fmt"
	"io"
	"time"
)

// OpEvent records metadata about a single scheduling operation.
type OpEvent struct {
	Op        string
	EntityID  string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about scheduling operations for logging and
// metrics.
type Observer interface {
	OnOpComplete(event OpEvent)
}

// LogObserver writes operation events to an io.Writer.
type LogObserver struct {
	w io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnOpComplete(event OpEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	fmt.Fprintf(o.w, "[%s] op=%s entity=%s latency_ms=%d status=%s\n",
		ts, event.Op, event.EntityID, event.LatencyMs, status)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnOpComplete(OpEvent) {}
