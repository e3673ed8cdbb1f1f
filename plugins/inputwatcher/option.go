package inputwatcher

import "github.com/geotala/zonalstats/pkg/zonalstats"

// WithInputWatcher returns a zonalstats Option that enables input folder
// watching. When enabled, the plugin monitors the input folder for vector
// files and requests a new run when they change.
//
// Usage:
//
//	r, err := zonalstats.New(cfg,
//	    inputwatcher.WithInputWatcher(inputwatcher.Config{
//	        DebounceDelay: 2 * time.Second,
//	    }),
//	)
func WithInputWatcher(cfg Config) zonalstats.Option {
	plugin := New(cfg)
	return zonalstats.WithPlugin(plugin)
}

// WithDefaultInputWatcher returns a zonalstats Option that enables input
// folder watching with default settings (debounce 2s).
//
// Usage:
//
//	r, err := zonalstats.New(cfg, inputwatcher.WithDefaultInputWatcher())
func WithDefaultInputWatcher() zonalstats.Option {
	return WithInputWatcher(DefaultConfig())
}
