package zonal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/geotala/zonalstats/internal/domain"
	"github.com/geotala/zonalstats/internal/ports"
)

// rasterExtensions are the formats raster inputs are expected to use.
// Anything else still runs but gets a warning.
var rasterExtensions = map[string]bool{
	".tif":  true,
	".tiff": true,
	".img":  true,
	".nc":   true,
}

// ValidateInputs checks the run inputs before any file is processed.
// Every failure wraps domain.ErrValidation and is fatal to the run.
func ValidateInputs(cfg Config, logger ports.Logger) error {
	if err := validateRaster(cfg.OHMRaster, "OHM", logger); err != nil {
		return err
	}
	if err := validateRaster(cfg.SlopeRaster, "slope", logger); err != nil {
		return err
	}

	info, err := os.Stat(cfg.InputDir)
	if err != nil {
		return fmt.Errorf("%w: input folder not found: %s", domain.ErrValidation, cfg.InputDir)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: input path is not a directory: %s", domain.ErrValidation, cfg.InputDir)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("%w: cannot create output folder %s: %v", domain.ErrValidation, cfg.OutputDir, err)
	}
	return nil
}

func validateRaster(path, kind string, logger ports.Logger) error {
	if path == "" {
		return fmt.Errorf("%w: %s raster path is required", domain.ErrValidation, kind)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s raster file not found: %s", domain.ErrValidation, kind, path)
	}
	if !rasterExtensions[strings.ToLower(filepath.Ext(path))] {
		logger.Warn("raster may not be a valid format",
			ports.String("kind", kind),
			ports.String("file", path),
		)
	}
	return nil
}
