package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML-friendly optional fields.
type FileConfig struct {
	OHMRaster    string  `toml:"ohm_raster"`
	SlopeRaster  string  `toml:"slope_raster"`
	InputFolder  string  `toml:"input_folder"`
	OutputFolder string  `toml:"output_folder"`
	EPSG         int     `toml:"epsg"`
	Nodata       float64 `toml:"nodata"`
	MinFileBytes int64   `toml:"min_file_bytes"`
	Recursive    *bool   `toml:"recursive"`
	Verbose      *bool   `toml:"verbose"`
	Watch        *bool   `toml:"watch"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.zonalstats/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".zonalstats", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("ohm-raster", fc.OHMRaster, &cfg.OHMRaster)
	s.setString("slope-raster", fc.SlopeRaster, &cfg.SlopeRaster)
	s.setString("input-folder", fc.InputFolder, &cfg.InputFolder)
	s.setString("output-folder", fc.OutputFolder, &cfg.OutputFolder)

	s.setInt("epsg", fc.EPSG, &cfg.EPSG)
	s.setFloat("nodata", fc.Nodata, &cfg.Nodata)
	s.setInt64("min-size", fc.MinFileBytes, &cfg.MinFileBytes)

	s.setBool("recursive", fc.Recursive, &cfg.Recursive)
	s.setBool("verbose", fc.Verbose, &cfg.Verbose)
	s.setBool("watch", fc.Watch, &cfg.Watch)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
