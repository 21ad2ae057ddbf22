package timeseries

import (
	"fmt"
)

// Aggregate buckets source frames into the given intervals and reduces each
// bucket to one frame whose cells are the arithmetic mean of the contributing
// frames' cells. Missing source cells are excluded from the mean; a cell with
// no valid contribution stays missing. A bucket with zero contributing frames
// still produces an output frame, with an all-missing grid, so downstream
// stages see an explicit gap rather than a silent zero.
//
// All source frames must share grid geometry. Output frames are tagged with
// their bucket's start and end and returned in increasing time order.
func Aggregate(frames []Frame, intervals []Interval) ([]Frame, error) {
	var geom *Grid
	for i := range frames {
		if geom == nil {
			geom = &frames[i].Grid
			continue
		}
		if !geom.SameGeometry(frames[i].Grid) {
			return nil, fmt.Errorf("frame at %s does not share grid geometry with earlier frames",
				frames[i].TimeStart.Format("2006-01-02T15:04:05Z07:00"))
		}
	}

	out := make([]Frame, 0, len(intervals))
	for _, iv := range intervals {
		var members []Frame
		for _, f := range frames {
			if iv.Contains(f.TimeStart) {
				members = append(members, f)
			}
		}
		out = append(out, meanFrame(iv, members, geom))
	}
	return out, nil
}

func meanFrame(iv Interval, members []Frame, geom *Grid) Frame {
	f := Frame{TimeStart: iv.Start, TimeEnd: iv.End}
	if geom == nil {
		return f
	}

	f.Grid = Grid{
		X0: geom.X0, Y0: geom.Y0,
		Dx: geom.Dx, Dy: geom.Dy,
		Width:  geom.Width,
		Height: geom.Height,
		Cells:  make([]Value, len(geom.Cells)),
	}
	if len(members) == 0 {
		// Empty bucket: every cell stays missing.
		return f
	}

	for i := range f.Grid.Cells {
		var sum float64
		var n int
		for _, m := range members {
			if v := m.Grid.Cells[i]; v.Valid {
				sum += v.Float64
				n++
			}
		}
		if n > 0 {
			f.Grid.Cells[i] = NewValue(sum / float64(n))
		}
	}
	return f
}
