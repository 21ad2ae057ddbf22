package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/RisaRezaei/temperature-timeseries/internal/platform"
	"github.com/RisaRezaei/temperature-timeseries/internal/timeseries"
)

// Service runs the extraction pipeline against the platform and records runs
// in the store. The pipeline itself is a pure batch composition; the export
// submission is its single observable side effect.
type Service struct {
	platform Platform
	store    Store
	params   Params
}

// NewService creates a new Service.
func NewService(p Platform, store Store, params Params) *Service {
	return &Service{
		platform: p,
		store:    store,
		params:   params,
	}
}

// Params returns the service's fixed extraction parameters.
func (s *Service) Params() Params {
	return s.params
}

// Extract performs one full run: stations → archive frames → temporal
// aggregation → spatial sampling → pivot → duplicate-date merge → CSV →
// export submission. The run record is saved on every path, including
// failures.
func (s *Service) Extract(ctx context.Context) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		State:     RunRunning,
		StartedAt: time.Now().UTC(),
	}
	s.store.SaveRun(run)

	slog.Info("extraction started", "run", run.ID,
		"collection", s.params.Collection, "band", s.params.Band)

	finish := func(err error) (Run, error) {
		run.FinishedAt = time.Now().UTC()
		if err != nil {
			run.State = RunFailed
			run.Error = err.Error()
			s.store.SaveRun(run)
			slog.Error("extraction failed", "run", run.ID, "error", err)
			return run, err
		}
		run.State = RunSucceeded
		s.store.SaveRun(run)
		slog.Info("extraction succeeded", "run", run.ID,
			"stations", run.Stations, "columns", run.Columns, "exportJob", run.ExportJobID)
		return run, nil
	}

	stations, err := s.platform.Stations(ctx, s.params.StationAsset)
	if err != nil {
		return finish(fmt.Errorf("load stations: %w", err))
	}
	run.Stations = len(stations)

	intervals, err := timeseries.Intervals(
		s.params.RangeStart, s.params.IntervalCount, s.params.IntervalEvery, s.params.IntervalUnit)
	if err != nil {
		return finish(fmt.Errorf("build intervals: %w", err))
	}
	rangeEnd := intervals[len(intervals)-1].End

	frames, err := s.platform.Frames(ctx, platform.FrameQuery{
		Collection: s.params.Collection,
		Band:       s.params.Band,
		Start:      s.params.RangeStart,
		End:        rangeEnd,
		Bounds:     timeseries.BoundsOf(stations, s.params.BoundsPadDeg),
	})
	if err != nil {
		return finish(fmt.Errorf("query archive: %w", err))
	}
	run.Frames = len(frames)

	buckets, err := timeseries.Aggregate(frames, intervals)
	if err != nil {
		return finish(fmt.Errorf("aggregate frames: %w", err))
	}
	run.Buckets = len(buckets)

	samples := timeseries.SampleFrames(buckets, stations, s.params.ScaleMeters, timeseries.KeyLayout)

	wide, err := timeseries.Pivot(samples, s.params.Policy)
	if err != nil {
		return finish(fmt.Errorf("pivot samples: %w", err))
	}

	merged := timeseries.MergeRows(wide)
	run.Columns = countColumns(merged)

	var buf bytes.Buffer
	if err := timeseries.WriteCSV(&buf, merged); err != nil {
		return finish(fmt.Errorf("render csv: %w", err))
	}

	job, err := s.platform.SubmitExport(ctx, s.params.ExportFolder, s.params.FilenamePrefix, buf.Bytes())
	if err != nil {
		return finish(fmt.Errorf("submit export: %w", err))
	}
	run.ExportJobID = job.ID

	return finish(nil)
}

// GetRun delegates to the underlying store.
func (s *Service) GetRun(id string) (Run, error) {
	return s.store.GetRun(id)
}

// Latest delegates to the underlying store.
func (s *Service) Latest() (Run, error) {
	return s.store.Latest()
}

// List delegates to the underlying store.
func (s *Service) List(limit int) []Run {
	return s.store.List(limit)
}

func countColumns(rows []timeseries.MergedRow) int {
	keys := make(map[string]struct{})
	for _, row := range rows {
		for k := range row.Fields {
			keys[k] = struct{}{}
		}
	}
	return len(keys)
}
