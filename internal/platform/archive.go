package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/RisaRezaei/temperature-timeseries/internal/timeseries"
)

// FrameQuery selects single-band frames from the raster archive: a
// half-open date range [Start, End) and a bounding geometry filter.
type FrameQuery struct {
	Collection string
	Band       string
	Start      time.Time
	End        time.Time
	Bounds     timeseries.Bounds
}

// Frames queries the archive and decodes the returned frames. Null grid
// cells in the payload become missing values.
func (c *Client) Frames(ctx context.Context, q FrameQuery) ([]timeseries.Frame, error) {
	if q.Collection == "" || q.Band == "" {
		return nil, fmt.Errorf("frame query needs a collection and a band")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("band", q.Band)
		values.Set("start", q.Start.UTC().Format(time.RFC3339))
		values.Set("end", q.End.UTC().Format(time.RFC3339))
		values.Set("west", formatCoord(q.Bounds.West))
		values.Set("south", formatCoord(q.Bounds.South))
		values.Set("east", formatCoord(q.Bounds.East))
		values.Set("north", formatCoord(q.Bounds.North))

		u := fmt.Sprintf("%s/v1/collections/%s/frames?%s",
			c.baseURL, url.PathEscape(q.Collection), values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := c.do(ctx, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("query archive %q: %w", q.Collection, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Frames []struct {
			TimeStart time.Time `json:"time_start"`
			TimeEnd   time.Time `json:"time_end"`
			Grid      struct {
				X0     float64    `json:"x0"`
				Y0     float64    `json:"y0"`
				Dx     float64    `json:"dx"`
				Dy     float64    `json:"dy"`
				Width  int        `json:"width"`
				Height int        `json:"height"`
				Values []*float64 `json:"values"`
			} `json:"grid"`
		} `json:"frames"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode archive frames: %w", err)
	}

	frames := make([]timeseries.Frame, 0, len(payload.Frames))
	for i, pf := range payload.Frames {
		if len(pf.Grid.Values) != pf.Grid.Width*pf.Grid.Height {
			return nil, fmt.Errorf("frame %d: grid holds %d values for %dx%d cells",
				i, len(pf.Grid.Values), pf.Grid.Width, pf.Grid.Height)
		}

		cells := make([]timeseries.Value, len(pf.Grid.Values))
		for j, v := range pf.Grid.Values {
			if v != nil {
				cells[j] = timeseries.NewValue(*v)
			}
		}

		frames = append(frames, timeseries.Frame{
			TimeStart: pf.TimeStart.UTC(),
			TimeEnd:   pf.TimeEnd.UTC(),
			Grid: timeseries.Grid{
				X0: pf.Grid.X0, Y0: pf.Grid.Y0,
				Dx: pf.Grid.Dx, Dy: pf.Grid.Dy,
				Width:  pf.Grid.Width,
				Height: pf.Grid.Height,
				Cells:  cells,
			},
		})
	}
	return frames, nil
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
