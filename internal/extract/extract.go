package extract

import (
	"context"
	"time"

	"github.com/RisaRezaei/temperature-timeseries/internal/platform"
	"github.com/RisaRezaei/temperature-timeseries/internal/timeseries"
)

// RunState is the lifecycle state of one extraction run.
type RunState string

const (
	RunRunning   RunState = "running"
	RunSucceeded RunState = "succeeded"
	RunFailed    RunState = "failed"
)

// Run is the record of one extraction: what was read, what was produced, and
// the export job the platform acknowledged. Runs are value objects kept in
// the run store for operators.
type Run struct {
	ID          string    `json:"id"`
	State       RunState  `json:"state"`
	StartedAt   time.Time `json:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt,omitempty"`
	Stations    int       `json:"stations"`
	Frames      int       `json:"frames"`
	Buckets     int       `json:"buckets"`
	Columns     int       `json:"columns"`
	ExportJobID string    `json:"exportJobId,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// Store is the contract the in-memory run store (and any future persistent
// store) must satisfy.
type Store interface {
	SaveRun(run Run)
	GetRun(id string) (Run, error)
	Latest() (Run, error)
	List(limit int) []Run
}

// Platform abstracts the hosted geospatial service: the station point
// source, the raster archive, and the export job runner.
type Platform interface {
	Stations(ctx context.Context, asset string) ([]timeseries.Station, error)
	Frames(ctx context.Context, q platform.FrameQuery) ([]timeseries.Frame, error)
	SubmitExport(ctx context.Context, folder, filenamePrefix string, csvData []byte) (platform.ExportJob, error)
}

// Params fixes one extraction's shape: which archive slice to read, how to
// bucket it, and where the export lands.
type Params struct {
	Collection     string
	Band           string
	StationAsset   string
	RangeStart     time.Time
	IntervalCount  int
	IntervalEvery  int
	IntervalUnit   timeseries.Unit
	ScaleMeters    float64
	BoundsPadDeg   float64
	Policy         timeseries.CollisionPolicy
	ExportFolder   string
	FilenamePrefix string
}
