package cliconfig

import "os"

// Environment variable names recognized by ApplyEnvConfig.
const (
	EnvOHMRaster    = "ZONALSTATS_OHM_RASTER"
	EnvSlopeRaster  = "ZONALSTATS_SLOPE_RASTER"
	EnvInputFolder  = "ZONALSTATS_INPUT_FOLDER"
	EnvOutputFolder = "ZONALSTATS_OUTPUT_FOLDER"
	EnvEPSG         = "ZONALSTATS_EPSG"
	EnvNodata       = "ZONALSTATS_NODATA"
	EnvMinFileBytes = "ZONALSTATS_MIN_FILE_BYTES"
	EnvRecursive    = "ZONALSTATS_RECURSIVE"
	EnvVerbose      = "ZONALSTATS_VERBOSE"
	EnvWatch        = "ZONALSTATS_WATCH"
)

// ApplyEnvConfig applies ZONALSTATS_* environment variables to the Config.
// Values override file config but are overridden by explicitly set flags
// (tracked through the changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("ohm-raster", os.Getenv(EnvOHMRaster), &cfg.OHMRaster)
	s.setString("slope-raster", os.Getenv(EnvSlopeRaster), &cfg.SlopeRaster)
	s.setString("input-folder", os.Getenv(EnvInputFolder), &cfg.InputFolder)
	s.setString("output-folder", os.Getenv(EnvOutputFolder), &cfg.OutputFolder)

	if err := s.setIntFromString("epsg", os.Getenv(EnvEPSG), &cfg.EPSG); err != nil {
		return err
	}
	if err := s.setFloatFromString("nodata", os.Getenv(EnvNodata), &cfg.Nodata); err != nil {
		return err
	}
	if err := s.setInt64FromString("min-size", os.Getenv(EnvMinFileBytes), &cfg.MinFileBytes); err != nil {
		return err
	}

	s.setBoolFromString("recursive", os.Getenv(EnvRecursive), &cfg.Recursive)
	s.setBoolFromString("verbose", os.Getenv(EnvVerbose), &cfg.Verbose)
	s.setBoolFromString("watch", os.Getenv(EnvWatch), &cfg.Watch)

	return nil
}
