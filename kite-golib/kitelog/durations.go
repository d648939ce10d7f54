package kitelog

import (
	"time"

	"go.uber.org/zap"
)

type duration struct {
	name     string
	duration time.Duration
}

// Durations tracks how long named phases took
type Durations []duration

// Record records a duration
func (t *Durations) Record(name string, d time.Duration) {
	*t = append(*t, duration{name, d})
}

// Time runs f and records how long it took
func (t *Durations) Time(name string, f func()) {
	start := time.Now()
	f()
	t.Record(name, time.Since(start))
}

// Flush logs the recorded durations at debug level and clears them
func (t *Durations) Flush(l *zap.Logger) {
	for _, entry := range *t {
		l.Debug("phase finished", zap.String("phase", entry.name), zap.Duration("duration", entry.duration))
	}
	*t = nil
}
