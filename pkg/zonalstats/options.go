package zonalstats

import (
	"context"

	"github.com/geotala/zonalstats/pkg/log"
	"github.com/geotala/zonalstats/pkg/progress"
)

// Logger is the structured logging interface the runner accepts.
type Logger = log.Logger

// LogField represents a structured log field.
type LogField = log.Field

// String returns a string-valued log field.
func String(key, value string) LogField { return log.String(key, value) }

// Err returns an error-valued log field.
func Err(err error) LogField { return log.Err(err) }

// Option configures optional behavior of a Runner.
type Option func(*options)

// options holds the optional configuration for a Runner instance.
type options struct {
	logger  log.Logger
	events  *progress.Queue
	plugins []Plugin
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
	}
}

// WithLogger sets the structured logger the pipeline reports through.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithProgress attaches a progress queue. The pipeline appends events as
// it works; a front end drains the queue on a fixed polling interval.
func WithProgress(q *progress.Queue) Option {
	return func(o *options) {
		o.events = q
	}
}

// WithPlugin registers a plugin. Plugins are initialized on Start and
// shut down on Stop, in registration order.
func WithPlugin(p Plugin) Option {
	return func(o *options) {
		if p != nil {
			o.plugins = append(o.plugins, p)
		}
	}
}

// Plugin extends a Runner with optional behavior, such as input folder
// watching.
type Plugin interface {
	// Name returns the plugin identifier.
	Name() string

	// Initialize sets up the plugin. It is called once on Start.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown releases plugin resources. It is called once on Stop.
	Shutdown(ctx context.Context) error
}

// PluginConfig is the runner context handed to every plugin.
type PluginConfig struct {
	// InputFolder is the folder the batch reads from.
	InputFolder string

	// Logger is the runner's logger.
	Logger log.Logger

	// RequestRun asks the runner for another batch pass. Only runners
	// created with Config.Watch honor the request; it never blocks.
	RequestRun func()
}
