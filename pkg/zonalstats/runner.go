// Package zonalstats provides an embeddable runner for batch zonal
// statistics processing.
//
// The runner executes the whole sequential pipeline on one background
// goroutine while a front end, if any, polls a progress queue on its own
// interval. Stopping is cooperative: the stop signal is honored at the
// next file boundary, never mid-file.
package zonalstats

import (
	"context"
	"fmt"
	"sync"

	gdaladapter "github.com/geotala/zonalstats/internal/adapters/gdal"
	"github.com/geotala/zonalstats/internal/adapters/geovec"
	"github.com/geotala/zonalstats/internal/domain"
	"github.com/geotala/zonalstats/internal/zonal"
	"github.com/geotala/zonalstats/pkg/log"
)

// Config holds the runner configuration.
type Config struct {
	// OHMRaster and SlopeRaster are the two raster surfaces of a run.
	OHMRaster   string
	SlopeRaster string

	// InputFolder is searched for vector files; OutputFolder receives
	// one artifact per successful file plus the run summary.
	InputFolder  string
	OutputFolder string

	// EPSG is the authority code declared on output collections.
	EPSG int

	// Nodata is the raster sentinel excluded from aggregation.
	Nodata float64

	// MinFileBytes excludes smaller input files from the run entirely.
	MinFileBytes int64

	// Recursive controls whether discovery descends into subfolders.
	Recursive bool

	// Watch keeps the runner alive after a pass, waiting for plugins to
	// request another one.
	Watch bool
}

// DefaultConfig returns a Config with sensible defaults. OHMRaster,
// SlopeRaster, InputFolder and OutputFolder must still be set.
func DefaultConfig() Config {
	return Config{
		EPSG:         32748,
		Nodata:       domain.DefaultNodata,
		MinFileBytes: zonal.DefaultMinFileBytes,
		Recursive:    true,
	}
}

// Summary is the batch tally of one finished pass.
type Summary = domain.RunSummary

// Runner executes batch passes and tracks their lifecycle.
// Use New to create one, Start to begin processing.
type Runner struct {
	cfg  Config
	opts options
	lc   lifecycle

	trigger chan struct{}

	mu        sync.Mutex
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	summary   domain.RunSummary
	summaryOK bool
}

// New creates a Runner in StateStopped.
func New(cfg Config, opts ...Option) (*Runner, error) {
	applyConfigDefaults(&cfg)
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Runner{
		cfg:     cfg,
		opts:    o,
		trigger: make(chan struct{}, 1),
	}, nil
}

// Start validates the inputs, initializes plugins and begins processing
// on a background goroutine. It returns domain.ErrValidation (wrapped)
// without starting when the inputs are unusable.
func (r *Runner) Start(ctx context.Context) error {
	if !r.lc.compareAndSwap(StateStarting, StateStopped, StateCrashed) {
		return domain.ErrAlreadyRunning
	}

	if err := zonal.ValidateInputs(r.pipelineConfig(), r.opts.logger); err != nil {
		r.lc.set(StateStopped)
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()

	pluginCfg := PluginConfig{
		InputFolder: r.cfg.InputFolder,
		Logger:      r.opts.logger,
		RequestRun:  r.RequestRun,
	}
	for _, p := range r.opts.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			cancel()
			r.lc.set(StateStopped)
			return fmt.Errorf("initialize plugin %s: %w", p.Name(), err)
		}
	}

	r.lc.set(StateRunning)
	r.wg.Add(1)
	go r.loop(runCtx)
	return nil
}

// Stop requests a cooperative stop and waits for the current file to
// finish. Plugins are shut down before Stop returns.
func (r *Runner) Stop() error {
	if !r.lc.compareAndSwap(StateStopping, StateStarting, StateRunning) {
		return domain.ErrNotRunning
	}

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()
	r.wg.Wait()

	for _, p := range r.opts.plugins {
		if err := p.Shutdown(context.Background()); err != nil {
			r.opts.logger.Warn("plugin shutdown failed", log.Err(err))
		}
	}
	r.lc.set(StateStopped)
	return nil
}

// Status returns the current lifecycle state.
func (r *Runner) Status() State {
	return r.lc.get()
}

// Summary returns the tally of the most recently finished pass.
// ok is false before the first pass completes.
func (r *Runner) Summary() (s Summary, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.summary, r.summaryOK
}

// RequestRun asks for another batch pass. Only honored in watch mode;
// never blocks.
func (r *Runner) RequestRun() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// loop runs batch passes until the context is canceled or, outside watch
// mode, after the first pass.
func (r *Runner) loop(ctx context.Context) {
	defer r.wg.Done()

	for {
		pipeline := zonal.New(
			r.pipelineConfig(),
			geovec.NewReader(gdaladapter.NewVectorSource(r.opts.logger)),
			gdaladapter.NewProvider(r.opts.logger),
			gdaladapter.NewReprojector(),
			r.opts.logger,
			r.opts.events,
		)
		summary, err := pipeline.Run(ctx)
		if err != nil {
			r.opts.logger.Error("batch run failed", log.Err(err))
			r.lc.set(StateCrashed)
			return
		}

		r.mu.Lock()
		r.summary = summary
		r.summaryOK = true
		r.mu.Unlock()

		if !r.cfg.Watch {
			r.lc.compareAndSwap(StateStopped, StateRunning)
			return
		}
		select {
		case <-ctx.Done():
			r.lc.compareAndSwap(StateStopped, StateRunning)
			return
		case <-r.trigger:
		}
	}
}

func (r *Runner) pipelineConfig() zonal.Config {
	return zonal.Config{
		OHMRaster:    r.cfg.OHMRaster,
		SlopeRaster:  r.cfg.SlopeRaster,
		InputDir:     r.cfg.InputFolder,
		OutputDir:    r.cfg.OutputFolder,
		EPSG:         r.cfg.EPSG,
		Nodata:       r.cfg.Nodata,
		MinFileBytes: r.cfg.MinFileBytes,
		Recursive:    r.cfg.Recursive,
	}
}

// Run executes one synchronous batch pass without the runner lifecycle.
// It validates inputs, processes every discovered file and returns the
// tally. This is what the CLI uses outside watch mode.
func Run(ctx context.Context, cfg Config, opts ...Option) (Summary, error) {
	applyConfigDefaults(&cfg)
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Runner{cfg: cfg, opts: o}
	if err := zonal.ValidateInputs(r.pipelineConfig(), o.logger); err != nil {
		return Summary{}, err
	}
	pipeline := zonal.New(
		r.pipelineConfig(),
		geovec.NewReader(gdaladapter.NewVectorSource(o.logger)),
		gdaladapter.NewProvider(o.logger),
		gdaladapter.NewReprojector(),
		o.logger,
		o.events,
	)
	return pipeline.Run(ctx)
}

func applyConfigDefaults(cfg *Config) {
	if cfg.EPSG == 0 {
		cfg.EPSG = 32748
	}
	if cfg.Nodata == 0 {
		cfg.Nodata = domain.DefaultNodata
	}
	if cfg.MinFileBytes == 0 {
		cfg.MinFileBytes = zonal.DefaultMinFileBytes
	}
}

