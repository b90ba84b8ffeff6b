package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/couchcryptid/landmask-etl/internal/domain"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	Resolution int
	Target     domain.Shape

	// Sample source.
	SamplesFile   string
	SourceBaseURL string
	FetchTimeout  time.Duration
	FetchDelay    time.Duration
	FetchRetries  int
	PageCacheDir  string
	PageCacheSize int

	// Outputs.
	StorePath   string
	SVGOutput   string
	SVGCellSize int
	SVGMargin   int
	SVGShape    string

	KafkaEnabled   bool
	KafkaBrokers   []string
	KafkaSinkTopic string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	resolution, err := positiveInt("GRID_RESOLUTION", 1)
	if err != nil {
		return nil, err
	}
	rows, err := positiveInt("TARGET_ROWS", 45)
	if err != nil {
		return nil, err
	}
	cols, err := positiveInt("TARGET_COLS", 90)
	if err != nil {
		return nil, err
	}
	fetchRetries, err := positiveInt("FETCH_RETRIES", 3)
	if err != nil {
		return nil, err
	}
	pageCacheSize, err := positiveInt("PAGE_CACHE_SIZE", 512)
	if err != nil {
		return nil, err
	}
	cellSize, err := positiveInt("SVG_CELL_SIZE", 8)
	if err != nil {
		return nil, err
	}
	margin, err := nonNegativeInt("SVG_MARGIN", 1)
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := duration("FETCH_TIMEOUT", "10s", false)
	if err != nil {
		return nil, err
	}
	fetchDelay, err := duration("FETCH_DELAY", "2s", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Resolution: resolution,
		Target:     domain.Shape{Rows: rows, Cols: cols},

		SamplesFile:   os.Getenv("SAMPLES_FILE"),
		SourceBaseURL: sharedcfg.EnvOrDefault("SOURCE_BASE_URL", "https://en.wikipedia.org/wiki"),
		FetchTimeout:  fetchTimeout,
		FetchDelay:    fetchDelay,
		FetchRetries:  fetchRetries,
		PageCacheDir:  os.Getenv("PAGE_CACHE_DIR"),
		PageCacheSize: pageCacheSize,

		StorePath:   envOrDefaultAllowEmpty("STORE_PATH", "landmask.db"),
		SVGOutput:   envOrDefaultAllowEmpty("SVG_OUTPUT", "landmask.svg"),
		SVGCellSize: cellSize,
		SVGMargin:   margin,
		SVGShape:    sharedcfg.EnvOrDefault("SVG_SHAPE", "circle"),

		KafkaEnabled:   os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:   sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic: sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "landmask-grids"),

		HTTPAddr:        envOrDefaultAllowEmpty("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	if err := domain.ValidateTarget(domain.BaseShape(cfg.Resolution), cfg.Target); err != nil {
		return nil, fmt.Errorf("TARGET_ROWS/TARGET_COLS: %w", err)
	}
	if cfg.SVGShape != "square" && cfg.SVGShape != "circle" {
		return nil, fmt.Errorf("SVG_SHAPE must be square or circle, got %q", cfg.SVGShape)
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is true")
		}
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("KAFKA_SINK_TOPIC is required when KAFKA_ENABLED is true")
		}
	}

	return cfg, nil
}

func positiveInt(key string, def int) (int, error) {
	n, err := intOrDefault(key, def)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}

func nonNegativeInt(key string, def int) (int, error) {
	n, err := intOrDefault(key, def)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: must be a non-negative integer", key)
	}
	return n, nil
}

func intOrDefault(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

func duration(key, def string, allowZero bool) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d < 0 || (d == 0 && !allowZero) {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

// envOrDefaultAllowEmpty treats an explicitly empty variable as "disabled".
func envOrDefaultAllowEmpty(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}
