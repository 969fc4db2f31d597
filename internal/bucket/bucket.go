// Package bucket computes the day/week boundaries that split the log into
// its "today" and "this week" views. Boundaries are recomputed from the
// clock on every call so views roll over at midnight without invalidation.
package bucket

import (
	"time"

	"unitflow/internal/model"
)

// Scope names for the two time buckets.
const (
	ScopeToday = "today"
	ScopeWeek  = "week"
)

type Bucketer struct {
	now func() time.Time
}

// New returns a Bucketer on the given clock; nil means the wall clock.
func New(now func() time.Time) *Bucketer {
	if now == nil {
		now = time.Now
	}
	return &Bucketer{now: now}
}

// StartOfToday is local midnight of the current day, in epoch milliseconds.
func (b *Bucketer) StartOfToday() int64 {
	t := b.now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).UnixMilli()
}

// StartOfWeek is local midnight of the most recent Monday. On a Sunday the
// week started six days earlier.
func (b *Bucketer) StartOfWeek() int64 {
	t := b.now()
	diff := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		diff = 6
	}
	t = t.AddDate(0, 0, -diff)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).UnixMilli()
}

// StartOf maps a scope name to its boundary. Unknown scopes fall back to
// today's.
func (b *Bucketer) StartOf(scope string) int64 {
	if scope == ScopeWeek {
		return b.StartOfWeek()
	}
	return b.StartOfToday()
}

// Filter returns the records with ts at or after start, preserving order.
func Filter(logs []model.LogRecord, start int64) []model.LogRecord {
	out := make([]model.LogRecord, 0, len(logs))
	for _, l := range logs {
		if l.Ts >= start {
			out = append(out, l)
		}
	}
	return out
}
