package profiler

import (
	"time"

	"go.uber.org/zap"
)

// Timer measures how long a signing or conformance step took.
type Timer struct {
	start time.Time
}

func Start() Timer {
	return Timer{start: time.Now()}
}

func (t Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Field returns the elapsed time as a log field.
func (t Timer) Field() zap.Field {
	return zap.Duration("elapsed", t.Elapsed())
}
