// Package gdal adapts the pipeline's ports to GDAL: raster access and
// CRS discovery, OGR vector reading and OSR coordinate transforms.
//
// Every call reopens its dataset and releases it before returning, so no
// raster or vector handle survives a single pipeline step.
package gdal

import (
	"context"
	"fmt"
	"strconv"

	"github.com/lukeroth/gdal"
	geos "github.com/twpayne/go-geos"

	"github.com/geotala/zonalstats/internal/domain"
	"github.com/geotala/zonalstats/internal/ports"
	"github.com/geotala/zonalstats/internal/raster"
	"github.com/geotala/zonalstats/pkg/log"
)

// Provider implements ports.RasterProvider over GDAL raster datasets.
type Provider struct {
	log ports.Logger
}

// NewProvider creates a raster provider.
func NewProvider(logger ports.Logger) *Provider {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Provider{log: logger}
}

// OpenCRS reads the raster's coordinate reference system.
func (p *Provider) OpenCRS(path string) (domain.CRS, error) {
	ds, err := gdal.Open(path, gdal.ReadOnly)
	if err != nil {
		return domain.CRS{}, fmt.Errorf("open raster %s: %w", path, err)
	}
	defer ds.Close()

	wkt := ds.Projection()
	if wkt == "" {
		return domain.CRS{}, fmt.Errorf("raster %s declares no spatial reference", path)
	}
	return crsFromWKT(wkt), nil
}

// SampleStatistics aggregates band 1 cell values per zone under the
// any-overlap coverage rule. See ports.RasterProvider for the contract.
func (p *Provider) SampleStatistics(ctx context.Context, path string, zones []domain.Zone, nodata float64) ([]domain.CellStats, error) {
	ds, err := gdal.Open(path, gdal.ReadOnly)
	if err != nil {
		return nil, fmt.Errorf("open raster %s: %w", path, err)
	}
	defer ds.Close()

	grid := raster.Grid{
		Transform: ds.GeoTransform(),
		Width:     ds.RasterXSize(),
		Height:    ds.RasterYSize(),
	}
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("raster %s: %w", path, err)
	}
	band := ds.RasterBand(1)

	gctx := geos.NewContext()
	out := make([]domain.CellStats, 0, len(zones))
	for i, zone := range zones {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		win, mask, err := raster.Cover(gctx, grid, zone.Geometry)
		if err != nil {
			return nil, fmt.Errorf("raster %s zone %d: %w", path, i, err)
		}
		if len(mask) == 0 {
			// Zone lies entirely outside the grid.
			out = append(out, raster.Summarize(nil, nodata))
			continue
		}
		buf := make([]float64, win.Size())
		if err := band.IO(gdal.Read, win.Col, win.Row, win.Cols, win.Rows, buf, win.Cols, win.Rows, 0, 0); err != nil {
			return nil, fmt.Errorf("raster %s zone %d: read window: %w", path, i, err)
		}
		out = append(out, raster.Summarize(raster.MaskedValues(buf, mask), nodata))
	}
	p.log.Debug("sampled raster",
		ports.String("raster", path),
		ports.Int("zones", len(zones)),
	)
	return out, nil
}

// crsFromWKT wraps a WKT definition and resolves its EPSG authority code
// when GDAL can identify one.
func crsFromWKT(wkt string) domain.CRS {
	sr := gdal.CreateSpatialReference(wkt)
	defer sr.Destroy()

	crs := domain.CRS{WKT: wkt}
	if err := sr.AutoIdentifyEPSG(); err == nil {
		if code, ok := sr.AttrValue("AUTHORITY", 1); ok {
			if n, err := strconv.Atoi(code); err == nil {
				crs.EPSG = n
			}
		}
	}
	return crs
}
