package timeseries

import (
	"math"
)

// KeyLayout is the time layout producing the 2-digit year/month/day interval
// key, e.g. "86-09-23" for 1986-09-23.
const KeyLayout = "06-01-02"

const earthRadiusMeters = 6371000.0

// SampleFrames runs the spatial sampler over every (frame, station) pair:
// the mean of the frame's valid cells whose centers lie within scaleMeters of
// the station point, keyed by the frame's TimeStart formatted with keyLayout.
// A station whose sampling disk holds no valid cells yields a missing sample,
// never 0.0.
func SampleFrames(frames []Frame, stations []Station, scaleMeters float64, keyLayout string) []Sample {
	samples := make([]Sample, 0, len(frames)*len(stations))
	for _, f := range frames {
		key := f.TimeStart.Format(keyLayout)
		for _, st := range stations {
			samples = append(samples, Sample{
				StationID: st.ID,
				Key:       key,
				Value:     meanAround(f.Grid, st.Point, scaleMeters),
			})
		}
	}
	return samples
}

func meanAround(g Grid, p Point, radiusMeters float64) Value {
	var sum float64
	var n int
	for iy := 0; iy < g.Height; iy++ {
		for ix := 0; ix < g.Width; ix++ {
			v := g.Cell(ix, iy)
			if !v.Valid {
				continue
			}
			if haversineMeters(p, g.Center(ix, iy)) <= radiusMeters {
				sum += v.Float64
				n++
			}
		}
	}
	if n == 0 {
		return Missing
	}
	return NewValue(sum / float64(n))
}

// haversineMeters is the great-circle distance between two points.
func haversineMeters(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
