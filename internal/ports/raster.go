package ports

import (
	"context"

	"github.com/geotala/zonalstats/internal/domain"
)

// RasterProvider exposes a raster grid through its two pipeline-facing
// capabilities: its reference system and its sampling surface. The core
// never owns raster storage; it reads through this reference and the
// provider reopens the raster on every call, so no handle outlives one
// file's aggregation step.
type RasterProvider interface {
	// OpenCRS reads the raster's coordinate reference system.
	// Unreadable or missing reference metadata is an error.
	OpenCRS(path string) (domain.CRS, error)

	// SampleStatistics rasterizes every zone geometry against the raster
	// grid and aggregates the covered cell values, excluding cells equal
	// to the nodata sentinel. The result has exactly one entry per zone,
	// in zone order. A zone with no usable cells yields a zero-count
	// entry, not an error.
	//
	// Cell inclusion follows the any-overlap (all-touched) rule: a cell
	// is covered when its rectangle intersects the zone geometry.
	SampleStatistics(ctx context.Context, path string, zones []domain.Zone, nodata float64) ([]domain.CellStats, error)
}
