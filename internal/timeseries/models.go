package timeseries

import (
	"time"
)

// Value is a float64 measurement that may be missing. The zero Value is
// missing; missing is distinct from 0.0 and must survive every stage of the
// pipeline without being coerced.
type Value struct {
	Float64 float64
	Valid   bool
}

// NewValue returns a present Value.
func NewValue(f float64) Value {
	return Value{Float64: f, Valid: true}
}

// Missing is the absent Value.
var Missing = Value{}

// Point is a geographic position in degrees.
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Station is a named point location at which the aggregated raster is
// sampled. Stations are immutable and loaded once per run from the platform's
// point-geometry source.
type Station struct {
	ID    string `json:"stationid"`
	Point Point  `json:"point"`
}

// Grid is a uniform lon/lat raster of single-band cell values. X0/Y0 is the
// center of cell (0,0); Dx/Dy step east and north per cell index. Cells is
// row-major, Width*Height long; absent pixels are missing Values.
type Grid struct {
	X0, Y0 float64
	Dx, Dy float64
	Width  int
	Height int
	Cells  []Value
}

// Cell returns the value at column ix, row iy.
func (g Grid) Cell(ix, iy int) Value {
	return g.Cells[iy*g.Width+ix]
}

// Center returns the geographic center of cell (ix, iy).
func (g Grid) Center(ix, iy int) Point {
	return Point{
		Lon: g.X0 + float64(ix)*g.Dx,
		Lat: g.Y0 + float64(iy)*g.Dy,
	}
}

// SameGeometry reports whether two grids cover the same cells, so their
// values can be combined cell-wise.
func (g Grid) SameGeometry(other Grid) bool {
	return g.X0 == other.X0 && g.Y0 == other.Y0 &&
		g.Dx == other.Dx && g.Dy == other.Dy &&
		g.Width == other.Width && g.Height == other.Height
}

// Frame is a single time-stamped, single-band raster layer. Aggregated frames
// carry the bucket boundaries in TimeStart/TimeEnd; frames are ephemeral and
// never persisted.
type Frame struct {
	TimeStart time.Time
	TimeEnd   time.Time
	Grid      Grid
}

// Sample is the atomic output of the spatial sampler: the mean band value
// around one station for one interval, keyed by the interval's formatted
// start date.
type Sample struct {
	StationID string
	Key       string
	Value     Value
}

// WideRow is one station's pivoted record: one field per distinct interval
// key seen among the station's samples.
type WideRow struct {
	StationID string
	Fields    map[string]Value
}

// MergedRow is a WideRow whose fields have been collapsed by date prefix,
// keeping the maximum value among colliding columns.
type MergedRow struct {
	StationID string
	Fields    map[string]Value
}

// Bounds is a geographic bounding box in degrees.
type Bounds struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

// BoundsOf returns the bounding box of the stations' points, padded by pad
// degrees on every side so edge stations keep a full sampling disk.
func BoundsOf(stations []Station, pad float64) Bounds {
	if len(stations) == 0 {
		return Bounds{}
	}
	b := Bounds{
		West:  stations[0].Point.Lon,
		South: stations[0].Point.Lat,
		East:  stations[0].Point.Lon,
		North: stations[0].Point.Lat,
	}
	for _, s := range stations[1:] {
		if s.Point.Lon < b.West {
			b.West = s.Point.Lon
		}
		if s.Point.Lon > b.East {
			b.East = s.Point.Lon
		}
		if s.Point.Lat < b.South {
			b.South = s.Point.Lat
		}
		if s.Point.Lat > b.North {
			b.North = s.Point.Lat
		}
	}
	b.West -= pad
	b.East += pad
	b.South -= pad
	b.North += pad
	return b
}
