// Package zonalstats computes per-polygon raster statistics for batches
// of vector files.
//
// Example usage:
//
//	cfg := zonalstats.DefaultConfig()
//	cfg.OHMRaster = "/data/ohm.tif"
//	cfg.SlopeRaster = "/data/slope.tif"
//	cfg.InputFolder = "/data/parcels"
//	cfg.OutputFolder = "/data/results"
//	summary, err := zonalstats.Run(context.Background(), cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(summary.SuccessRate())
package zonalstats

import (
	"context"

	"github.com/geotala/zonalstats/pkg/zonalstats"
)

// Config holds the configuration for a batch run.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = zonalstats.Config

// Summary reports the per-file outcome tally of a finished run.
type Summary = zonalstats.Summary

// Option configures optional runner behavior such as logging, progress
// reporting, and plugins.
type Option = zonalstats.Option

// Runner drives batch passes and exposes lifecycle control. Use New and
// Start for watch mode; use Run for one-shot processing.
type Runner = zonalstats.Runner

// Run executes one batch pass with the given configuration.
// It blocks until the pass finishes or the context is cancelled.
func Run(ctx context.Context, cfg Config, opts ...Option) (Summary, error) {
	return zonalstats.Run(ctx, cfg, opts...)
}

// New creates a Runner for the given configuration.
func New(cfg Config, opts ...Option) (*Runner, error) {
	return zonalstats.New(cfg, opts...)
}

// DefaultConfig returns a Config with sensible default values.
// At minimum, you must set OHMRaster, SlopeRaster and InputFolder.
func DefaultConfig() Config {
	return zonalstats.DefaultConfig()
}

// WithLogger sets the structured logger the pipeline reports through.
func WithLogger(l zonalstats.Logger) Option {
	return zonalstats.WithLogger(l)
}
