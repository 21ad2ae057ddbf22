package timeseries

import (
	"testing"
	"time"
)

func TestIntervalsPartitionRange(t *testing.T) {
	origin := time.Date(1986, 9, 23, 0, 0, 0, 0, time.UTC)

	intervals, err := Intervals(origin, 10, 1, UnitDay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(intervals) != 10 {
		t.Fatalf("expected 10 intervals, got %d", len(intervals))
	}

	for i, iv := range intervals {
		wantStart := origin.AddDate(0, 0, i)
		if !iv.Start.Equal(wantStart) {
			t.Errorf("interval %d start = %v, want %v", i, iv.Start, wantStart)
		}
		if i > 0 && !iv.Start.Equal(intervals[i-1].End) {
			t.Errorf("interval %d does not abut previous end: start %v, prev end %v",
				i, iv.Start, intervals[i-1].End)
		}
	}

	last := intervals[len(intervals)-1]
	if !last.End.Equal(origin.AddDate(0, 0, 10)) {
		t.Errorf("sequence end = %v, want %v", last.End, origin.AddDate(0, 0, 10))
	}
}

func TestIntervalsHalfOpen(t *testing.T) {
	origin := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	intervals, err := Intervals(origin, 2, 1, UnitDay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	iv := intervals[0]
	if !iv.Contains(iv.Start) {
		t.Errorf("interval should contain its own start")
	}
	if iv.Contains(iv.End) {
		t.Errorf("interval should not contain its end")
	}
	if !iv.Contains(iv.End.Add(-time.Nanosecond)) {
		t.Errorf("interval should contain the instant just before its end")
	}
}

func TestIntervalsUnits(t *testing.T) {
	origin := time.Date(2000, 6, 1, 0, 0, 0, 0, time.UTC)

	hourly, err := Intervals(origin, 3, 6, UnitHour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := hourly[1].Start, origin.Add(6*time.Hour); !got.Equal(want) {
		t.Errorf("hourly interval 1 start = %v, want %v", got, want)
	}

	weekly, err := Intervals(origin, 2, 1, UnitWeek)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := weekly[1].Start, origin.AddDate(0, 0, 7); !got.Equal(want) {
		t.Errorf("weekly interval 1 start = %v, want %v", got, want)
	}
}

func TestIntervalsRejectsBadArguments(t *testing.T) {
	origin := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	if _, err := Intervals(origin, 0, 1, UnitDay); err == nil {
		t.Errorf("expected error for zero count")
	}
	if _, err := Intervals(origin, 1, 0, UnitDay); err == nil {
		t.Errorf("expected error for zero size")
	}
	if _, err := Intervals(origin, 1, 1, Unit("fortnight")); err == nil {
		t.Errorf("expected error for unknown unit")
	}
}
