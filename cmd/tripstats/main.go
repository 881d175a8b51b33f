// tripstats extracts, for one month of NYC Yellow Taxi trip records, every
// trip whose distance exceeds the month's distance-percentile threshold,
// and writes the result as a single Parquet file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/adelamch/tripstats/internal/config"
	"github.com/adelamch/tripstats/internal/dataset"
	"github.com/adelamch/tripstats/internal/engine"
	"github.com/adelamch/tripstats/internal/logging"
	"github.com/adelamch/tripstats/internal/pipeline"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// CLI flags
	year := flag.Int("year", 0, fmt.Sprintf("year of the month to process (must be >= %d, e.g. 2024)", dataset.MinYear))
	month := flag.Int("month", 0, "month to process (1-12)")
	cfgPath := flag.String("config", "", "config file path")
	output := flag.String("output", "", "output directory (overrides config)")
	percentile := flag.Float64("percentile", 0, "distance percentile in (0, 1) (overrides config)")
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	logJSON := flag.Bool("log-json", false, "log as JSON")
	flag.Parse()

	logging.Init(parseLevel(*logLevel), *logJSON)
	log := logging.Component("main")

	if *year == 0 || *month == 0 {
		fmt.Fprintln(os.Stderr, "both -year and -month are required")
		flag.Usage()
		os.Exit(2)
	}

	// Load config
	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fatalf("load config: %v", err)
		}
		cfg = loaded
	}

	// CLI overrides
	if *output != "" {
		cfg.OutputDir = *output
	}
	if *percentile != 0 {
		cfg.Percentile = *percentile
	}
	if err := cfg.Validate(); err != nil {
		fatalf("invalid configuration: %v", err)
	}

	eng, err := engine.Open(engine.Options{MemoryLimit: cfg.Query.MemoryLimit})
	if err != nil {
		fatalf("open query engine: %v", err)
	}
	defer eng.Close()

	ref := dataset.Reference{Year: *year, Month: *month}
	log.Info("tripstats starting", "version", Version, "period", ref.String())

	res, err := pipeline.New(cfg, eng).Run(context.Background(), ref)
	if err != nil {
		fatalf("%v", err)
	}

	printSummary(res, cfg.Percentile)
}

// printSummary writes the human-readable report to stdout.
func printSummary(res *pipeline.Result, percentile float64) {
	rule := strings.Repeat("=", 60)
	fmt.Printf("\n%s\n", rule)
	fmt.Printf("  Input file                : %s\n", res.Source)
	fmt.Printf("  %.2g percentile threshold  : %.4f miles\n", percentile, res.Threshold)
	fmt.Printf("  Trips above threshold     : %d\n", res.RowCount)
	fmt.Printf("  Output file               : %s\n", res.OutputPath)
	fmt.Printf("%s\n\n", rule)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "tripstats: "+format+"\n", args...)
	os.Exit(1)
}
