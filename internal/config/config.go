// Package config holds the runtime configuration for the trip filter.
//
// The zero configuration file reproduces the fixed behavior the tool was
// built for: the public CloudFront mirror, the 0.9 percentile and the four
// identifying output columns. Both the percentile and the column set can be
// overridden, but only within recognized bounds.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/adelamch/tripstats/internal/dataset"
)

// DistanceColumn is the column the threshold and the filter operate on.
// It must always be part of the exported column set.
const DistanceColumn = "trip_distance"

// Config represents the complete tripstats configuration.
type Config struct {
	// BaseURL is the root of the trip record file mirror.
	BaseURL string `yaml:"base_url"`

	// OutputDir is the directory holding the single result file.
	OutputDir string `yaml:"output_dir"`

	// Percentile is the continuous quantile used as the distance threshold.
	// Must be strictly between 0 and 1.
	Percentile float64 `yaml:"percentile"`

	// Columns are the columns written to the result file. Restricted to the
	// published Yellow Taxi trip schema and must include trip_distance.
	Columns []string `yaml:"columns"`

	// Query configures the DuckDB engine.
	Query QueryConfig `yaml:"query"`
}

// QueryConfig configures the DuckDB engine.
type QueryConfig struct {
	// MemoryLimit is the DuckDB memory limit, e.g. "2GB". Empty uses the
	// engine default.
	MemoryLimit string `yaml:"memory_limit"`
}

// knownColumns is the published Yellow Taxi trip record schema.
var knownColumns = map[string]bool{
	"VendorID":              true,
	"tpep_pickup_datetime":  true,
	"tpep_dropoff_datetime": true,
	"passenger_count":       true,
	"trip_distance":         true,
	"RatecodeID":            true,
	"store_and_fwd_flag":    true,
	"PULocationID":          true,
	"DOLocationID":          true,
	"payment_type":          true,
	"fare_amount":           true,
	"extra":                 true,
	"mta_tax":               true,
	"tip_amount":            true,
	"tolls_amount":          true,
	"improvement_surcharge": true,
	"total_amount":          true,
	"congestion_surcharge":  true,
	"airport_fee":           true,
}

// Default returns a configuration with the fixed defaults.
func Default() *Config {
	return &Config{
		BaseURL:    dataset.DefaultBaseURL,
		OutputDir:  "output",
		Percentile: 0.9,
		Columns:    []string{"VendorID", "PULocationID", "DOLocationID", "trip_distance"},
		Query: QueryConfig{
			MemoryLimit: "2GB",
		},
	}
}

// Load loads configuration from a YAML file, applying defaults for fields
// the file does not set.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.BaseURL == "" {
		errs = append(errs, errors.New("base_url is required"))
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output_dir is required"))
	}
	if c.Percentile <= 0 || c.Percentile >= 1 {
		errs = append(errs, fmt.Errorf("percentile must be in (0, 1), got %v", c.Percentile))
	}

	if err := validateColumns(c.Columns); err != nil {
		errs = append(errs, fmt.Errorf("columns: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// validateColumns checks the exported column set against the trip schema.
func validateColumns(columns []string) error {
	if len(columns) == 0 {
		return errors.New("at least one column required")
	}

	seen := make(map[string]bool, len(columns))
	hasDistance := false

	for _, col := range columns {
		if !knownColumns[col] {
			return fmt.Errorf("unknown column %q", col)
		}
		if seen[col] {
			return fmt.Errorf("duplicate column %q", col)
		}
		seen[col] = true
		if col == DistanceColumn {
			hasDistance = true
		}
	}

	if !hasDistance {
		return fmt.Errorf("column set must include %s", DistanceColumn)
	}
	return nil
}
