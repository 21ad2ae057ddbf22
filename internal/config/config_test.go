package config

import (
	"testing"
	"time"

	"github.com/RisaRezaei/temperature-timeseries/internal/timeseries"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantStart := time.Date(1986, 9, 23, 0, 0, 0, 0, time.UTC)
	if !cfg.RangeStart.Equal(wantStart) {
		t.Errorf("RangeStart = %v, want %v", cfg.RangeStart, wantStart)
	}
	if cfg.IntervalCount != 11690 {
		t.Errorf("IntervalCount = %d, want 11690", cfg.IntervalCount)
	}
	if cfg.IntervalUnit != timeseries.UnitDay {
		t.Errorf("IntervalUnit = %q, want day", cfg.IntervalUnit)
	}
	if cfg.ScaleMeters != 11132 {
		t.Errorf("ScaleMeters = %v, want 11132", cfg.ScaleMeters)
	}
	if cfg.Band != "temperature_2m" {
		t.Errorf("Band = %q, want temperature_2m", cfg.Band)
	}
	if cfg.FilenamePrefix != "T_time_series_multiple" {
		t.Errorf("FilenamePrefix = %q, want T_time_series_multiple", cfg.FilenamePrefix)
	}
	if cfg.CollisionPolicy != timeseries.CollisionLastWins {
		t.Errorf("CollisionPolicy = %v, want last-wins", cfg.CollisionPolicy)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("INTERVAL_COUNT", "30")
	t.Setenv("INTERVAL_UNIT", "hour")
	t.Setenv("RANGE_START", "2018-01-01")
	t.Setenv("COLLISION_POLICY", "reject")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.IntervalCount != 30 {
		t.Errorf("IntervalCount = %d, want 30", cfg.IntervalCount)
	}
	if cfg.IntervalUnit != timeseries.UnitHour {
		t.Errorf("IntervalUnit = %q, want hour", cfg.IntervalUnit)
	}
	if cfg.CollisionPolicy != timeseries.CollisionReject {
		t.Errorf("CollisionPolicy = %v, want reject", cfg.CollisionPolicy)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("bad range start", func(t *testing.T) {
		t.Setenv("RANGE_START", "23-09-1986")
		if _, err := Load(); err == nil {
			t.Errorf("expected error for malformed RANGE_START")
		}
	})

	t.Run("bad unit", func(t *testing.T) {
		t.Setenv("INTERVAL_UNIT", "fortnight")
		if _, err := Load(); err == nil {
			t.Errorf("expected validation error for unknown INTERVAL_UNIT")
		}
	})

	t.Run("non-positive count", func(t *testing.T) {
		t.Setenv("INTERVAL_COUNT", "0")
		if _, err := Load(); err == nil {
			t.Errorf("expected validation error for zero INTERVAL_COUNT")
		}
	})

	t.Run("bad collision policy", func(t *testing.T) {
		t.Setenv("COLLISION_POLICY", "majority")
		if _, err := Load(); err == nil {
			t.Errorf("expected error for unknown COLLISION_POLICY")
		}
	})
}
