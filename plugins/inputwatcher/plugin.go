// Package inputwatcher provides input folder monitoring for zonalstats.
// When enabled, it watches the input folder for new or modified vector
// files and requests a new processing run when they appear.
package inputwatcher

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/geotala/zonalstats/pkg/zonalstats"
)

// watchedExtensions lists the vector file suffixes that trigger a rerun.
var watchedExtensions = map[string]bool{
	".geojson": true,
	".gpkg":    true,
	".shp":     true,
	".kml":     true,
	".gml":     true,
	".json":    true,
}

// Plugin implements input folder watching. It monitors the batch input
// folder and requests a fresh run from the runner when vector files are
// created, written, or renamed into place.
type Plugin struct {
	mu sync.Mutex

	// Configuration
	debounceDelay time.Duration

	// Runtime state
	inputFolder string
	logger      zonalstats.Logger
	requestRun  func()
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	debounce    *time.Timer
}

// Config holds configuration options for the input watcher plugin.
type Config struct {
	// DebounceDelay is the delay to wait after a file change before
	// requesting a run. Bulk copies into the input folder produce many
	// events; the delay collapses them into a single run.
	// Default: 2 seconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 2 * time.Second,
	}
}

// New creates a new input watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 2 * time.Second
	}
	return &Plugin{
		debounceDelay: cfg.DebounceDelay,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "inputwatcher"
}

// Initialize sets up the plugin and starts the folder watcher.
func (p *Plugin) Initialize(ctx context.Context, cfg zonalstats.PluginConfig) error {
	p.mu.Lock()
	p.inputFolder = cfg.InputFolder
	p.logger = cfg.Logger
	p.requestRun = cfg.RequestRun
	p.mu.Unlock()

	if p.inputFolder == "" || p.requestRun == nil {
		p.logger.Warn("Input watcher disabled: input folder or run trigger not configured")
		return nil
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("Input watcher plugin initialized",
		zonalstats.String("folder", p.inputFolder))

	p.wg.Add(1)
	go p.watchLoop(watchCtx)

	return nil
}

// Shutdown stops the folder watcher.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()

	p.mu.Lock()
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()

	return nil
}

// watchLoop watches the input folder for vector file changes.
func (p *Plugin) watchLoop(ctx context.Context) {
	defer p.wg.Done()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.logger.Error("Input watcher: failed to create watcher", zonalstats.Err(err))
		return
	}
	defer watcher.Close()

	if err := watcher.Add(p.inputFolder); err != nil {
		p.logger.Error("Input watcher: failed to watch folder", zonalstats.Err(err))
		return
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !watchedExtensions[strings.ToLower(filepath.Ext(event.Name))] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			p.logger.Debug("Input watcher: vector file changed",
				zonalstats.String("file", filepath.Base(event.Name)))
			p.debounceRun()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("Input watcher: watcher error", zonalstats.Err(err))
		}
	}
}

func (p *Plugin) debounceRun() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}

	p.debounce = time.AfterFunc(p.debounceDelay, func() {
		p.logger.Info("Input watcher: requesting processing run")
		p.requestRun()
	})
}

// Ensure Plugin implements zonalstats.Plugin.
var _ zonalstats.Plugin = (*Plugin)(nil)
