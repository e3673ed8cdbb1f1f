package gdal

import (
	"fmt"

	"github.com/lukeroth/gdal"

	"github.com/geotala/zonalstats/internal/domain"
)

// Reprojector implements ports.Reprojector with OSR coordinate
// transforms. Datum handling is entirely GDAL's; nothing custom here.
type Reprojector struct{}

// NewReprojector creates an OSR-backed reprojector.
func NewReprojector() *Reprojector {
	return &Reprojector{}
}

// Reproject transforms every zone geometry into the target reference
// system. Zone order and attributes are preserved.
func (Reprojector) Reproject(zc domain.ZoneCollection, target domain.CRS) (domain.ZoneCollection, error) {
	src, err := spatialRef(zc.CRS)
	if err != nil {
		return domain.ZoneCollection{}, fmt.Errorf("source CRS: %w", err)
	}
	defer src.Destroy()
	dst, err := spatialRef(target)
	if err != nil {
		return domain.ZoneCollection{}, fmt.Errorf("target CRS: %w", err)
	}
	defer dst.Destroy()

	ct := gdal.CreateCoordinateTransform(src, dst)
	defer ct.Destroy()

	zones := make([]domain.Zone, len(zc.Zones))
	for i, z := range zc.Zones {
		g, err := transformGeometry(z.Geometry, ct)
		if err != nil {
			return domain.ZoneCollection{}, fmt.Errorf("zone %d: %w", i, err)
		}
		zones[i] = domain.Zone{Geometry: g, Attributes: z.Attributes}
	}
	return domain.ZoneCollection{Zones: zones, CRS: target}, nil
}

// spatialRef builds an OSR reference from a CRS value, preferring the
// EPSG code over the WKT definition.
func spatialRef(c domain.CRS) (gdal.SpatialReference, error) {
	if c.EPSG != 0 {
		sr := gdal.CreateSpatialReference("")
		if err := sr.FromEPSG(c.EPSG); err != nil {
			sr.Destroy()
			return gdal.SpatialReference{}, fmt.Errorf("EPSG:%d: %w", c.EPSG, err)
		}
		return sr, nil
	}
	if c.WKT != "" {
		return gdal.CreateSpatialReference(c.WKT), nil
	}
	return gdal.SpatialReference{}, fmt.Errorf("undefined CRS")
}
