package timeseries

import (
	"testing"
	"time"
)

func TestSampleFramesKeyFormat(t *testing.T) {
	frame := Frame{
		TimeStart: time.Date(1986, 9, 23, 0, 0, 0, 0, time.UTC),
		Grid:      testGrid(NewValue(12.5)),
	}
	stations := []Station{{ID: "S1", Point: Point{Lon: 0, Lat: 0}}}

	samples := SampleFrames([]Frame{frame}, stations, 11132, KeyLayout)
	if len(samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(samples))
	}
	if samples[0].Key != "86-09-23" {
		t.Errorf("key = %q, want %q", samples[0].Key, "86-09-23")
	}
	if samples[0].StationID != "S1" {
		t.Errorf("station = %q, want S1", samples[0].StationID)
	}
}

func TestSampleFramesMeanWithinDisk(t *testing.T) {
	// Three cells 0.1 degrees apart along the equator, roughly 11.1 km per
	// step. A station midway between the first two cells reaches both with a
	// 12 km disk but never the third.
	grid := Grid{
		X0: 0, Y0: 0,
		Dx: 0.1, Dy: 0.1,
		Width:  3,
		Height: 1,
		Cells:  []Value{NewValue(10), NewValue(20), NewValue(30)},
	}
	frame := Frame{TimeStart: time.Date(2018, 9, 22, 0, 0, 0, 0, time.UTC), Grid: grid}

	midway := Point{Lon: 0.05, Lat: 0}
	wide := SampleFrames([]Frame{frame}, []Station{{ID: "A", Point: midway}}, 12000, KeyLayout)
	if got := wide[0].Value; !got.Valid || got.Float64 != 15 {
		t.Errorf("12km mean = %+v, want 15", got)
	}

	// A 1 km disk on the middle cell's center covers only that cell.
	center := Point{Lon: 0.1, Lat: 0}
	narrow := SampleFrames([]Frame{frame}, []Station{{ID: "A", Point: center}}, 1000, KeyLayout)
	if got := narrow[0].Value; !got.Valid || got.Float64 != 20 {
		t.Errorf("1km mean = %+v, want 20", got)
	}
}

func TestSampleFramesNoValidPixelsIsMissing(t *testing.T) {
	frame := Frame{
		TimeStart: time.Date(1986, 9, 24, 0, 0, 0, 0, time.UTC),
		Grid:      testGrid(Missing, Missing),
	}
	stations := []Station{{ID: "S2", Point: Point{Lon: 0, Lat: 0}}}

	samples := SampleFrames([]Frame{frame}, stations, 11132, KeyLayout)
	if samples[0].Value.Valid {
		t.Errorf("expected missing sample, got %+v", samples[0].Value)
	}
	if samples[0].Value.Float64 != 0 {
		t.Errorf("missing sample must not carry a value, got %v", samples[0].Value.Float64)
	}
}

func TestSampleFramesFarStationIsMissing(t *testing.T) {
	frame := Frame{
		TimeStart: time.Date(1986, 9, 24, 0, 0, 0, 0, time.UTC),
		Grid:      testGrid(NewValue(3)),
	}
	// Station far outside any sampling disk of the single cell at (0,0).
	stations := []Station{{ID: "S3", Point: Point{Lon: 10, Lat: 10}}}

	samples := SampleFrames([]Frame{frame}, stations, 11132, KeyLayout)
	if samples[0].Value.Valid {
		t.Errorf("expected missing sample for out-of-range station, got %+v", samples[0].Value)
	}
}
