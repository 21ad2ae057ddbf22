package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/RisaRezaei/temperature-timeseries/internal/timeseries"
)

// Stations loads the station point source: every feature of the named asset
// with its stationid property and point geometry. The set is read-only and
// loaded once per extraction run.
func (c *Client) Stations(ctx context.Context, asset string) ([]timeseries.Station, error) {
	if asset == "" {
		return nil, fmt.Errorf("station asset is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s/v1/tables/%s/features", c.baseURL, url.PathEscape(asset))
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := c.do(ctx, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("fetch stations %q: %w", asset, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Features []struct {
			Properties struct {
				StationID string `json:"stationid"`
			} `json:"properties"`
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode stations %q: %w", asset, err)
	}

	seen := make(map[string]struct{}, len(payload.Features))
	stations := make([]timeseries.Station, 0, len(payload.Features))
	for i, f := range payload.Features {
		if f.Properties.StationID == "" {
			return nil, fmt.Errorf("feature %d of %q has no stationid", i, asset)
		}
		if _, dup := seen[f.Properties.StationID]; dup {
			return nil, fmt.Errorf("duplicate stationid %q in %q", f.Properties.StationID, asset)
		}
		if f.Geometry.Type != "Point" || len(f.Geometry.Coordinates) < 2 {
			return nil, fmt.Errorf("station %q has no point geometry", f.Properties.StationID)
		}

		seen[f.Properties.StationID] = struct{}{}
		stations = append(stations, timeseries.Station{
			ID: f.Properties.StationID,
			Point: timeseries.Point{
				Lon: f.Geometry.Coordinates[0],
				Lat: f.Geometry.Coordinates[1],
			},
		})
	}

	if len(stations) == 0 {
		return nil, fmt.Errorf("station asset %q holds no features", asset)
	}
	return stations, nil
}
