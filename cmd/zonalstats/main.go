package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/geotala/zonalstats/internal/cliconfig"
	pkglog "github.com/geotala/zonalstats/pkg/log"
	"github.com/geotala/zonalstats/pkg/zonalstats"
	"github.com/geotala/zonalstats/plugins/inputwatcher"
)

const helpDescription = `
Compute per-polygon raster statistics for every vector file in a folder.

Each input file is sampled against an OHM raster and a slope raster;
the per-feature mean, min, max, std and cell count of both surfaces are
merged into one GeoJSON output per file, plus a run summary.

Highlights:
  - Reads GeoJSON, GeoPackage, Shapefile, KML and GML inputs via GDAL.
  - Reprojects inputs whose CRS differs from the rasters before sampling.
  - Per-file isolation: one bad input never stops the rest of the batch.
  - Configure via file, environment, or flags; watch mode reruns on change.
`

var longHelp = strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  zonalstats -o ohm.tif -s slope.tif -i ./parcels --output-folder ./results
  zonalstats --config $HOME/.zonalstats/config.toml --watch
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()
	exitCode := 0

	root := &cobra.Command{
		Use:     "zonalstats",
		Short:   "Batch zonal statistics for vector files against OHM and slope rasters",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.zonalstats/config.toml),
			// then apply env and flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Apply environment variables (ZONALSTATS_*)
			// These override file config but are overridden by flags.
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			// Validate and set derived defaults
			if err := cfg.Validate(); err != nil {
				return err
			}

			if cfg.Verbose {
				log = cliconfig.VerboseLogger()
			}
			log.Info().Interface("config", cfg).Msg("configuration")

			libCfg := zonalstats.Config{
				OHMRaster:    cfg.OHMRaster,
				SlopeRaster:  cfg.SlopeRaster,
				InputFolder:  cfg.InputFolder,
				OutputFolder: cfg.OutputFolder,
				EPSG:         cfg.EPSG,
				Nodata:       cfg.Nodata,
				MinFileBytes: cfg.MinFileBytes,
				Recursive:    cfg.Recursive,
				Watch:        cfg.Watch,
			}

			zerologAdapter := pkglog.NewZerologAdapterWithLogger(log)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			if !cfg.Watch {
				go func() {
					select {
					case <-sigCh:
						log.Info().Msg("received signal, stopping...")
						cancel()
					case <-ctx.Done():
					}
				}()

				summary, err := zonalstats.Run(ctx, libCfg,
					zonalstats.WithLogger(zerologAdapter),
				)
				if err != nil {
					return fmt.Errorf("run zonalstats: %w", err)
				}

				log.Info().
					Int("total", summary.Total).
					Int("successful", summary.Succeeded).
					Int("failed", summary.Failed).
					Str("success_rate", summary.SuccessRate()).
					Msg("run complete")

				if !summary.AllSucceeded() {
					exitCode = 1
				}
				return nil
			}

			// Watch mode: keep a runner alive and rerun when the input
			// folder changes.
			r, err := zonalstats.New(libCfg,
				zonalstats.WithLogger(zerologAdapter),
				inputwatcher.WithDefaultInputWatcher(),
			)
			if err != nil {
				return fmt.Errorf("create zonalstats: %w", err)
			}

			if err := r.Start(ctx); err != nil {
				return fmt.Errorf("start zonalstats: %w", err)
			}

			doneCh := make(chan struct{})
			go func() {
				ticker := time.NewTicker(100 * time.Millisecond)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						status := r.Status()
						if status == zonalstats.StateStopped || status == zonalstats.StateCrashed {
							close(doneCh)
							return
						}
					}
				}
			}()

			select {
			case <-sigCh:
				log.Info().Msg("received signal, stopping...")
			case <-doneCh:
				if r.Status() == zonalstats.StateCrashed {
					log.Error().Msg("zonalstats crashed")
					exitCode = 1
				}
			}

			if err := r.Stop(); err != nil {
				return fmt.Errorf("stop zonalstats: %w", err)
			}
			return nil
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.zonalstats/config.toml)")
	root.Flags().StringVarP(&cfg.OHMRaster, "ohm-raster", "o", cfg.OHMRaster, "OHM raster file (GeoTIFF)")
	root.Flags().StringVarP(&cfg.SlopeRaster, "slope-raster", "s", cfg.SlopeRaster, "slope raster file (GeoTIFF)")
	root.Flags().StringVarP(&cfg.InputFolder, "input-folder", "i", cfg.InputFolder, "folder containing input vector files")
	root.Flags().StringVar(&cfg.OutputFolder, "output-folder", cfg.OutputFolder, "folder for results (defaults to input folder)")

	root.Flags().IntVar(&cfg.EPSG, "epsg", cfg.EPSG, "EPSG code assumed for undeclared inputs and declared on outputs")
	root.Flags().Float64Var(&cfg.Nodata, "nodata", cfg.Nodata, "raster nodata value excluded from statistics")
	root.Flags().Int64Var(&cfg.MinFileBytes, "min-size", cfg.MinFileBytes, "minimum input file size in bytes")
	root.Flags().BoolVar(&cfg.Recursive, "recursive", cfg.Recursive, "descend into subfolders of the input folder")

	root.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "enable debug logging")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "keep running and reprocess when the input folder changes")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("zonalstats")
		os.Exit(1)
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
