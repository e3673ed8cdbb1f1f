package zonal

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/geotala/zonalstats/internal/domain"
	"github.com/geotala/zonalstats/internal/ports"
	"github.com/geotala/zonalstats/pkg/progress"
)

// Config holds the batch pipeline parameters.
type Config struct {
	OHMRaster   string
	SlopeRaster string
	InputDir    string
	OutputDir   string

	// EPSG is the authority code declared on every output collection.
	EPSG int

	// Nodata is the raster sentinel excluded from aggregation.
	Nodata float64

	// MinFileBytes excludes smaller input files from the run entirely.
	MinFileBytes int64

	// Recursive controls whether discovery descends into subfolders.
	Recursive bool
}

// FileState tracks one file's position in the pipeline state machine.
type FileState int

const (
	StateDiscovered FileState = iota
	StateCRSAligned
	StateAggregatedOHM
	StateAggregatedSlope
	StateMerged
	StatePersisted
	StateFailed
)

// String returns a human-readable representation of the state.
func (s FileState) String() string {
	switch s {
	case StateDiscovered:
		return "Discovered"
	case StateCRSAligned:
		return "CRSAligned"
	case StateAggregatedOHM:
		return "AggregatedOHM"
	case StateAggregatedSlope:
		return "AggregatedSlope"
	case StateMerged:
		return "Merged"
	case StatePersisted:
		return "Persisted"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Pipeline orchestrates the batch: discover input files, run the per-file
// pipeline (reconcile, aggregate twice, merge, persist) and keep the
// tally. One file's failure never stops the batch.
type Pipeline struct {
	cfg     Config
	vectors ports.VectorReader
	recon   *Reconciler
	agg     *Aggregator
	persist *Persister
	log     ports.Logger
	events  *progress.Queue
}

// New creates a pipeline. events may be nil when no front end is polling.
func New(
	cfg Config,
	vectors ports.VectorReader,
	raster ports.RasterProvider,
	reproj ports.Reprojector,
	logger ports.Logger,
	events *progress.Queue,
) *Pipeline {
	if cfg.Nodata == 0 {
		cfg.Nodata = domain.DefaultNodata
	}
	if cfg.MinFileBytes == 0 {
		cfg.MinFileBytes = DefaultMinFileBytes
	}
	return &Pipeline{
		cfg:     cfg,
		vectors: vectors,
		recon:   NewReconciler(raster, reproj, logger),
		agg:     NewAggregator(raster, cfg.Nodata, logger),
		persist: NewPersister(cfg.OutputDir, cfg.EPSG, logger),
		log:     logger,
		events:  events,
	}
}

// Run processes every discovered file sequentially and writes the run
// summary. Cancellation is cooperative and honored only at file
// boundaries; the current file always finishes its pipeline.
//
// The returned summary counts the files that entered the pipeline; on an
// uncancelled run that is every discovered file that passed the size
// filter.
func (p *Pipeline) Run(ctx context.Context) (domain.RunSummary, error) {
	p.log.Info("starting batch processing")

	files, err := DiscoverFiles(p.cfg.InputDir, p.cfg.Recursive, p.log)
	if err != nil {
		return domain.RunSummary{}, fmt.Errorf("discover input files: %w", err)
	}
	files = FilterBySize(files, p.cfg.MinFileBytes, p.log)

	var summary domain.RunSummary
	for i, path := range files {
		if ctx.Err() != nil {
			p.log.Info("stop requested, ending batch at file boundary")
			break
		}

		name := filepath.Base(path)
		p.log.Info("processing file",
			ports.Int("index", i+1),
			ports.Int("total", len(files)),
			ports.String("file", name),
		)
		p.publish(progress.Event{
			Stage: progress.StageDiscover,
			File:  name,
			Index: i + 1,
			Total: len(files),
		})

		err := p.processFile(ctx, path)
		summary.Record(err == nil)
		if err != nil {
			p.log.Error("file failed", ports.String("file", name), ports.Err(err))
			p.publish(progress.Event{
				Stage: progress.StagePersist,
				File:  name,
				Index: i + 1,
				Total: len(files),
				Err:   err,
			})
			continue
		}
		p.log.Info("successfully processed", ports.String("file", name))
	}

	if _, err := p.persist.SaveSummary(summary); err != nil {
		p.log.Error("cannot save run summary", ports.Err(err))
	}
	p.publish(progress.Event{
		Stage:   progress.StageSummary,
		Message: fmt.Sprintf("%d/%d files processed successfully", summary.Succeeded, summary.Total),
	})
	p.log.Info("batch processing completed",
		ports.Int("succeeded", summary.Succeeded),
		ports.Int("total", summary.Total),
		ports.String("success_rate", summary.SuccessRate()),
	)
	return summary, nil
}

// processFile runs one file through the state machine. Any error,
// classified or not, is that file's failure; a panic inside a step is
// caught here at the file boundary so the batch can continue.
func (p *Pipeline) processFile(ctx context.Context, path string) (err error) {
	state := StateDiscovered
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in state %s: %v", state, r)
		}
	}()

	zones, err := p.vectors.ReadGeometries(path)
	if err != nil {
		return fmt.Errorf("read vector file: %w", err)
	}

	// CRS alignment uses the OHM raster; the two rasters of a run are
	// expected to share one grid definition.
	zones, err = p.recon.Reconcile(zones, p.cfg.OHMRaster)
	if err != nil {
		return err
	}
	state = StateCRSAligned

	ohm, err := p.agg.Aggregate(ctx, zones, p.cfg.OHMRaster, "ohm")
	if err != nil {
		return err
	}
	state = StateAggregatedOHM

	slope, err := p.agg.Aggregate(ctx, zones, p.cfg.SlopeRaster, "slope")
	if err != nil {
		return err
	}
	state = StateAggregatedSlope

	merged, err := Merge(ohm, slope)
	if err != nil {
		return err
	}
	state = StateMerged

	if _, err := p.persist.SaveResults(merged, path); err != nil {
		return err
	}
	state = StatePersisted
	return nil
}

func (p *Pipeline) publish(ev progress.Event) {
	if p.events != nil {
		p.events.Publish(ev)
	}
}
