package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/RisaRezaei/temperature-timeseries/internal/timeseries"
)

var validate = validator.New()

// AppConfig is the explicit, validated configuration of one deployment. The
// extraction parameters default to the production ERA5-Land temperature
// export: daily buckets from 1986-09-23, 11690 of them, sampled at an 11132 m
// scale.
type AppConfig struct {
	AppEnv string `validate:"oneof=dev prod"`

	// Platform connection.
	PlatformBaseURL string `validate:"required,url"`
	PlatformAPIKey  string

	// Archive selection.
	Collection   string `validate:"required"`
	Band         string `validate:"required"`
	StationAsset string `validate:"required"`

	// Temporal bucketing. RangeStart anchors the interval sequence; the
	// range end is derived from the count, never configured separately.
	RangeStart    time.Time       `validate:"required"`
	IntervalCount int             `validate:"gt=0"`
	IntervalEvery int             `validate:"gt=0"`
	IntervalUnit  timeseries.Unit `validate:"oneof=hour day week"`

	// Spatial sampling.
	ScaleMeters  float64 `validate:"gt=0"`
	BoundsPadDeg float64 `validate:"gte=0"`

	// Pivot behaviour on duplicate interval keys.
	CollisionPolicy timeseries.CollisionPolicy

	// Export target.
	ExportFolder   string `validate:"required"`
	FilenamePrefix string `validate:"required"`

	// Outbound HTTP client timeout.
	HTTPTimeout time.Duration

	// Upper bound on one full extraction run.
	RunTimeout time.Duration `validate:"gt=0"`

	// Run-history retention.
	StoreMaxRuns int
	StoreMaxAge  time.Duration

	// Optional periodic re-extraction; zero disables the scheduler.
	ScheduleInterval time.Duration

	Port string
}

// Load reads configuration from environment with production defaults and
// validates the result before anything is wired.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.AppEnv = getenvDefault("APP_ENV", "dev")

	cfg.PlatformBaseURL = getenvDefault("PLATFORM_BASE_URL", "https://geo.example.com")
	cfg.PlatformAPIKey = os.Getenv("PLATFORM_API_KEY")

	cfg.Collection = getenvDefault("ARCHIVE_COLLECTION", "ecmwf-era5-land")
	cfg.Band = getenvDefault("ARCHIVE_BAND", "temperature_2m")
	cfg.StationAsset = getenvDefault("STATION_ASSET", "stations")

	startStr := getenvDefault("RANGE_START", "1986-09-23")
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return nil, fmt.Errorf("invalid RANGE_START: %w", err)
	}
	cfg.RangeStart = start.UTC()

	cfg.IntervalCount = getenvInt("INTERVAL_COUNT", 11690)
	cfg.IntervalEvery = getenvInt("INTERVAL_EVERY", 1)
	cfg.IntervalUnit = timeseries.Unit(getenvDefault("INTERVAL_UNIT", "day"))

	cfg.ScaleMeters = getenvFloat("SAMPLE_SCALE_METERS", 11132)
	cfg.BoundsPadDeg = getenvFloat("BOUNDS_PAD_DEG", 0.2)

	policy, err := timeseries.ParseCollisionPolicy(os.Getenv("COLLISION_POLICY"))
	if err != nil {
		return nil, fmt.Errorf("invalid COLLISION_POLICY: %w", err)
	}
	cfg.CollisionPolicy = policy

	cfg.ExportFolder = getenvDefault("EXPORT_FOLDER", "temperature_exports")
	cfg.FilenamePrefix = getenvDefault("EXPORT_FILENAME_PREFIX", "T_time_series_multiple")

	cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "60s")
	if err != nil {
		return nil, err
	}

	cfg.RunTimeout, err = getenvDuration("RUN_TIMEOUT", "15m")
	if err != nil {
		return nil, err
	}

	cfg.StoreMaxRuns = getenvInt("STORE_MAX_RUNS", 50)
	cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "168h")
	if err != nil {
		return nil, err
	}

	scheduleStr := os.Getenv("SCHEDULE_INTERVAL")
	if scheduleStr != "" {
		cfg.ScheduleInterval, err = time.ParseDuration(scheduleStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SCHEDULE_INTERVAL: %w", err)
		}
	}

	cfg.Port = getenvDefault("PORT", "8080")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
