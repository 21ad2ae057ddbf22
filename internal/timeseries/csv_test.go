package timeseries

import (
	"strings"
	"testing"
)

func TestWriteCSVSchema(t *testing.T) {
	rows := []MergedRow{
		{
			StationID: "S2",
			Fields: map[string]Value{
				"86-09-24": Missing,
			},
		},
		{
			StationID: "S1",
			Fields: map[string]Value{
				"86-09-23": NewValue(12.5),
				"86-09-24": NewValue(9),
			},
		},
	}

	var sb strings.Builder
	if err := WriteCSV(&sb, rows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines: %q", len(lines), sb.String())
	}

	if lines[0] != "stationid,86-09-23,86-09-24" {
		t.Errorf("header = %q, want stationid,86-09-23,86-09-24", lines[0])
	}
	// Rows sorted by station; S2 has no 86-09-23 column and a missing
	// 86-09-24, both rendered as empty cells.
	if lines[1] != "S1,12.5,9" {
		t.Errorf("row 1 = %q, want S1,12.5,9", lines[1])
	}
	if lines[2] != "S2,," {
		t.Errorf("row 2 = %q, want S2,,", lines[2])
	}
}

func TestWriteCSVEmptyInput(t *testing.T) {
	var sb strings.Builder
	if err := WriteCSV(&sb, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(sb.String()); got != "stationid" {
		t.Errorf("empty export = %q, want bare stationid header", got)
	}
}
