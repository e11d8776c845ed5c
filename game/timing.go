package game

import "time"

// Timing stores a session's start and end timestamps. Values are kept as
// given; nothing is validated.
type Timing struct {
	start time.Time
	end   time.Time
}

// SetStart records the start timestamp.
func (t *Timing) SetStart(ts time.Time) {
	t.start = ts
}

// SetEnd records the end timestamp.
func (t *Timing) SetEnd(ts time.Time) {
	t.end = ts
}

func (t *Timing) Start() time.Time {
	return t.start
}

func (t *Timing) End() time.Time {
	return t.end
}

// Elapsed returns end minus start, or zero until both are set.
func (t *Timing) Elapsed() time.Duration {
	if t.start.IsZero() || t.end.IsZero() {
		return 0
	}
	return t.end.Sub(t.start)
}
