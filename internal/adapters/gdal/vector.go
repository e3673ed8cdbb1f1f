package gdal

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lukeroth/gdal"
	"github.com/paulmach/orb/geojson"

	"github.com/geotala/zonalstats/internal/domain"
	"github.com/geotala/zonalstats/internal/ports"
	"github.com/geotala/zonalstats/pkg/log"
)

// VectorSource implements ports.VectorReader through OGR. It handles the
// driver-backed formats (shapefile, GeoPackage, KML, GML); plain GeoJSON
// files are read by the geovec package without cgo.
type VectorSource struct {
	log ports.Logger
}

// NewVectorSource creates an OGR-backed vector reader.
func NewVectorSource(logger ports.Logger) *VectorSource {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &VectorSource{log: logger}
}

// ReadGeometries reads the first layer of the dataset in feature order.
func (s *VectorSource) ReadGeometries(path string) (domain.ZoneCollection, error) {
	if _, err := os.Stat(path); err != nil {
		return domain.ZoneCollection{}, fmt.Errorf("vector source: %w", err)
	}

	ds := gdal.OpenDataSource(path, 0)
	defer ds.Destroy()
	if ds.LayerCount() == 0 {
		return domain.ZoneCollection{}, fmt.Errorf("vector source %s: no vector layers", path)
	}
	layer := ds.LayerByIndex(0)

	var crs domain.CRS
	sr := layer.SpatialReference()
	if wkt, err := sr.ToWKT(); err == nil && wkt != "" {
		crs = crsFromWKT(wkt)
	}

	defn := layer.Definition()
	layer.ResetReading()

	var zones []domain.Zone
	for {
		feat := layer.NextFeature()
		if feat == nil {
			break
		}
		zone, err := featureToZone(defn, feat)
		feat.Destroy()
		if err != nil {
			return domain.ZoneCollection{}, fmt.Errorf("vector source %s feature %d: %w", path, len(zones), err)
		}
		zones = append(zones, zone)
	}

	s.log.Debug("read vector source",
		ports.String("file", path),
		ports.Int("zones", len(zones)),
		ports.String("crs", crs.String()),
	)
	return domain.ZoneCollection{Zones: zones, CRS: crs}, nil
}

// featureToZone converts one OGR feature into a zone. The geometry is
// bridged through its GeoJSON form into the orb model.
func featureToZone(defn gdal.FeatureDefinition, feat *gdal.Feature) (domain.Zone, error) {
	encoded := feat.Geometry().ToJSON()
	if encoded == "" {
		return domain.Zone{}, fmt.Errorf("feature has no geometry")
	}
	g := &geojson.Geometry{}
	if err := json.Unmarshal([]byte(encoded), g); err != nil {
		return domain.Zone{}, fmt.Errorf("decode geometry: %w", err)
	}

	attrs := make(map[string]interface{}, defn.FieldCount())
	for i := 0; i < defn.FieldCount(); i++ {
		fd := defn.FieldDefinition(i)
		switch fd.Type() {
		case gdal.FT_Integer:
			attrs[fd.Name()] = feat.FieldAsInteger(i)
		case gdal.FT_Integer64:
			attrs[fd.Name()] = feat.FieldAsInteger64(i)
		case gdal.FT_Real:
			attrs[fd.Name()] = feat.FieldAsFloat64(i)
		default:
			attrs[fd.Name()] = feat.FieldAsString(i)
		}
	}
	return domain.Zone{Geometry: g.Geometry(), Attributes: attrs}, nil
}
