package search

import "time"

// TimeKeeper is a wall-clock deadline helper for the time-bounded
// searches. It is immutable after construction: once IsExpired reports
// true it stays true for the lifetime of the instance.
type TimeKeeper struct {
	start     time.Time
	threshold time.Duration
}

// NewTimeKeeper starts the clock with the given budget.
func NewTimeKeeper(threshold time.Duration) *TimeKeeper {
	return &TimeKeeper{start: time.Now(), threshold: threshold}
}

// IsExpired reports whether the budget has elapsed.
func (tk *TimeKeeper) IsExpired() bool {
	return time.Since(tk.start) >= tk.threshold
}
