// Package pipeline sequences the threshold-and-filter query pipeline:
// locate the dataset file, compute the distance threshold, extract and
// export the qualifying trips.
//
// The source is queried twice, once per pass; no raw rows are cached in
// between, so memory use stays independent of the dataset size.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adelamch/tripstats/internal/config"
	"github.com/adelamch/tripstats/internal/dataset"
	"github.com/adelamch/tripstats/internal/engine"
	"github.com/adelamch/tripstats/internal/errors"
	"github.com/adelamch/tripstats/internal/export"
	"github.com/adelamch/tripstats/internal/logging"
	"github.com/adelamch/tripstats/internal/quantile"
)

// Result summarizes a successful run.
type Result struct {
	Source     string
	Threshold  float64
	RowCount   int64
	OutputPath string
}

// Pipeline runs one locate → threshold → extract execution.
type Pipeline struct {
	cfg    *config.Config
	engine *engine.Engine
	log    *slog.Logger
	state  State

	// now is injectable for availability-window tests.
	now func() time.Time
}

// New creates a pipeline over an open engine.
func New(cfg *config.Config, e *engine.Engine) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		engine: e,
		log:    logging.Component("pipeline"),
		state:  StateIdle,
		now:    time.Now,
	}
}

// State returns the stage the last Run reached.
func (p *Pipeline) State() State {
	return p.state
}

// OutputPath returns the result file path for a period, for example
// output/trips_above_p90_2024-01.parquet.
func (p *Pipeline) OutputPath(ref dataset.Reference) string {
	pct := math.Round(p.cfg.Percentile*100*1e6) / 1e6
	name := fmt.Sprintf("trips_above_p%s_%s.parquet",
		strconv.FormatFloat(pct, 'f', -1, 64), ref)
	return filepath.Join(p.cfg.OutputDir, name)
}

// Run executes the pipeline for one period. On any stage failure it aborts
// immediately and returns an error naming the failed stage; the output
// directory is never touched before the export is about to succeed.
func (p *Pipeline) Run(ctx context.Context, ref dataset.Reference) (*Result, error) {
	p.state = StateLocating
	if err := ref.Validate(p.now()); err != nil {
		return nil, p.fail(err)
	}
	address := ref.URL(p.cfg.BaseURL)
	p.log.Info("located dataset", "period", ref.String(), "address", address)

	if err := p.engine.Prepare(ctx, address); err != nil {
		return nil, p.fail(err)
	}

	p.state = StateComputingThreshold
	threshold, err := quantile.Threshold(ctx, p.engine, address, p.cfg.Percentile)
	if err != nil {
		return nil, p.fail(err)
	}

	p.state = StateExtracting
	outputPath := p.OutputPath(ref)
	count, err := export.New(p.engine, p.cfg.Columns).Export(ctx, address, threshold, outputPath)
	if err != nil {
		return nil, p.fail(err)
	}

	p.state = StateDone
	p.log.Info("run complete", "period", ref.String(), "threshold", threshold, "rows", count)

	return &Result{
		Source:     address,
		Threshold:  threshold,
		RowCount:   count,
		OutputPath: outputPath,
	}, nil
}

// fail records the failed stage and wraps the error with its name.
func (p *Pipeline) fail(err error) error {
	stage := p.state
	p.state = StateFailed
	p.log.Error("stage failed", "stage", stage.String(), "error", err)
	return errors.Wrapf(err, "stage %s", stage)
}
