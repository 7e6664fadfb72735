package config

import (
	"os"
	"strconv"

	"baacprep/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data    DataConfig
	Explode ExplodeConfig
	Output  OutputConfig
}

// DataConfig holds input data settings
type DataConfig struct {
	InputFile string // Default input file (BAACPREP_INPUT_FILE)
	IDColumn  string
	DateCol   string
}

// ExplodeConfig holds multi-value explosion settings
type ExplodeConfig struct {
	Separator string  // Cell token separator
	MinShare  float64 // Detection threshold: share of cells containing the separator
	Strict    bool    // Fail on unequal token counts instead of padding
}

// OutputConfig holds output locations
type OutputConfig struct {
	ChartsDir  string
	ReportPath string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	minShare, err := loadFloat("BAACPREP_MIN_SHARE", 0.01)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load explosion configuration")
	}
	if minShare < 0 || minShare > 1 {
		return nil, errors.ConfigInvalid("BAACPREP_MIN_SHARE must be in [0,1]")
	}

	cfg := &Config{
		Data: DataConfig{
			InputFile: getEnv("BAACPREP_INPUT_FILE", ""),
			IDColumn:  getEnv("BAACPREP_ID_COLUMN", "ID_accident"),
			DateCol:   getEnv("BAACPREP_DATE_COLUMN", "Date_and_hour"),
		},
		Explode: ExplodeConfig{
			Separator: getEnv("BAACPREP_SEPARATOR", ","),
			MinShare:  minShare,
			Strict:    getEnv("BAACPREP_STRICT", "") == "true",
		},
		Output: OutputConfig{
			ChartsDir:  getEnv("BAACPREP_CHARTS_DIR", "plots"),
			ReportPath: getEnv("BAACPREP_REPORT_PATH", ""),
		},
	}
	if cfg.Explode.Separator == "" {
		return nil, errors.ConfigInvalid("BAACPREP_SEPARATOR must not be empty")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func loadFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " is not a number: " + v)
	}
	return f, nil
}
