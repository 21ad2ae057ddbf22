package timeseries

import (
	"fmt"
	"time"
)

// Unit is the calendar unit an interval sequence advances by.
type Unit string

const (
	UnitHour Unit = "hour"
	UnitDay  Unit = "day"
	UnitWeek Unit = "week"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the half-open range.
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// Intervals builds count contiguous half-open buckets anchored at origin,
// each spanning every units. Boundaries depend only on (origin, i, every,
// unit), never on data, and the sequence partitions
// [origin, origin+count*every*unit) with no gaps or overlaps.
func Intervals(origin time.Time, count, every int, unit Unit) ([]Interval, error) {
	if count <= 0 {
		return nil, fmt.Errorf("interval count must be positive, got %d", count)
	}
	if every <= 0 {
		return nil, fmt.Errorf("interval size must be positive, got %d", every)
	}

	advance, err := advancer(unit)
	if err != nil {
		return nil, err
	}

	intervals := make([]Interval, 0, count)
	start := origin
	for i := 0; i < count; i++ {
		end := advance(start, every)
		intervals = append(intervals, Interval{Start: start, End: end})
		start = end
	}
	return intervals, nil
}

func advancer(unit Unit) (func(time.Time, int) time.Time, error) {
	switch unit {
	case UnitHour:
		return func(t time.Time, n int) time.Time {
			return t.Add(time.Duration(n) * time.Hour)
		}, nil
	case UnitDay:
		// AddDate keeps calendar days correct across DST transitions.
		return func(t time.Time, n int) time.Time {
			return t.AddDate(0, 0, n)
		}, nil
	case UnitWeek:
		return func(t time.Time, n int) time.Time {
			return t.AddDate(0, 0, 7*n)
		}, nil
	default:
		return nil, fmt.Errorf("unknown interval unit %q", unit)
	}
}
