// Package geovec reads GeoJSON vector sources without cgo and routes the
// OGR-backed formats to a fallback reader.
package geovec

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulmach/orb/geojson"

	"github.com/geotala/zonalstats/internal/domain"
	"github.com/geotala/zonalstats/internal/ports"
)

// Reader implements ports.VectorReader. GeoJSON files (.geojson, .json)
// are parsed directly; every other extension goes to the fallback reader.
type Reader struct {
	fallback ports.VectorReader
}

// NewReader creates a dispatching vector reader. fallback may be nil, in
// which case non-GeoJSON formats fail with an unsupported-format error.
func NewReader(fallback ports.VectorReader) *Reader {
	return &Reader{fallback: fallback}
}

// ReadGeometries reads one vector file into an ordered zone collection.
func (r *Reader) ReadGeometries(path string) (domain.ZoneCollection, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return readGeoJSON(path)
	default:
		if r.fallback == nil {
			return domain.ZoneCollection{}, fmt.Errorf("unsupported vector format: %s", path)
		}
		return r.fallback.ReadGeometries(path)
	}
}

func readGeoJSON(path string) (domain.ZoneCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ZoneCollection{}, fmt.Errorf("read %s: %w", path, err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return domain.ZoneCollection{}, fmt.Errorf("parse %s: %w", path, err)
	}

	zones := make([]domain.Zone, 0, len(fc.Features))
	for _, f := range fc.Features {
		attrs := make(map[string]interface{}, len(f.Properties))
		for k, v := range f.Properties {
			attrs[k] = v
		}
		zones = append(zones, domain.Zone{Geometry: f.Geometry, Attributes: attrs})
	}
	return domain.ZoneCollection{Zones: zones, CRS: collectionCRS(fc)}, nil
}

// collectionCRS resolves the legacy "crs" member some producers still
// write. Plain RFC 7946 documents carry none; the zero value is returned
// and the pipeline treats the collection as undeclared.
func collectionCRS(fc *geojson.FeatureCollection) domain.CRS {
	raw, ok := fc.ExtraMembers["crs"]
	if !ok {
		return domain.CRS{}
	}
	crsDoc, ok := raw.(map[string]interface{})
	if !ok {
		return domain.CRS{}
	}
	props, ok := crsDoc["properties"].(map[string]interface{})
	if !ok {
		return domain.CRS{}
	}
	name, _ := props["name"].(string)
	return domain.CRS{EPSG: parseEPSG(name)}
}

// parseEPSG extracts the code from "urn:ogc:def:crs:EPSG::32748" or
// "EPSG:32748" forms. Unknown forms yield zero.
func parseEPSG(name string) int {
	for _, prefix := range []string{"urn:ogc:def:crs:EPSG::", "EPSG:"} {
		if strings.HasPrefix(name, prefix) {
			if n, err := strconv.Atoi(strings.TrimPrefix(name, prefix)); err == nil {
				return n
			}
		}
	}
	return 0
}
