package entity

import "time"

// fixedClock is a TimeProvider pinned to a single instant
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func newFixedClock() *fixedClock {
	return &fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}
