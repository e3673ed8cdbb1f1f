package zonal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb/geojson"

	"github.com/geotala/zonalstats/internal/domain"
	"github.com/geotala/zonalstats/internal/ports"
)

const (
	// outputSuffix is appended to the input file stem.
	outputSuffix = "_zonal_stats"

	// summaryFileName is the run-level summary artifact.
	summaryFileName = "processing_summary.json"
)

// Persister assembles output feature collections with a declared CRS and
// writes them, plus the run summary, under one output folder.
type Persister struct {
	outDir string
	epsg   int
	log    ports.Logger
}

// NewPersister creates a persister writing to dir with the given EPSG
// authority code declared on every feature collection.
func NewPersister(dir string, epsg int, logger ports.Logger) *Persister {
	return &Persister{outDir: dir, epsg: epsg, log: logger}
}

// SaveResults writes the merged features as a GeoJSON FeatureCollection
// named after the originating file. An empty feature set wraps
// domain.ErrPersistence and writes nothing; empty output is never
// persisted as a valid file. Returns the artifact path.
func (p *Persister) SaveResults(features []domain.Feature, srcPath string) (string, error) {
	if len(features) == 0 {
		return "", fmt.Errorf("%w: no features to save for %s", domain.ErrPersistence, filepath.Base(srcPath))
	}

	fc := geojson.NewFeatureCollection()
	fc.ExtraMembers = geojson.Properties{
		"crs": map[string]interface{}{
			"type": "name",
			"properties": map[string]interface{}{
				"name": fmt.Sprintf("urn:ogc:def:crs:EPSG::%d", p.epsg),
			},
		},
	}
	for _, f := range features {
		gf := geojson.NewFeature(f.Geometry)
		gf.Properties = geojson.Properties(f.Properties)
		fc.Append(gf)
	}

	out := filepath.Join(p.outDir, outputFilename(srcPath))
	if err := p.writeJSON(out, fc); err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrPersistence, out, err)
	}
	p.log.Info("results saved",
		ports.String("file", out),
		ports.Int("features", len(features)),
	)
	return out, nil
}

// SaveSummary writes the run-level summary artifact. Returns its path.
func (p *Persister) SaveSummary(s domain.RunSummary) (string, error) {
	doc := summaryDoc{
		ProcessingSummary: summaryBody{
			TotalFiles:      s.Total,
			SuccessfulFiles: s.Succeeded,
			FailedFiles:     s.Failed,
			SuccessRate:     s.SuccessRate(),
		},
	}
	out := filepath.Join(p.outDir, summaryFileName)
	if err := p.writeJSON(out, doc); err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrPersistence, out, err)
	}
	p.log.Info("processing summary saved", ports.String("file", out))
	return out, nil
}

type summaryDoc struct {
	ProcessingSummary summaryBody `json:"processing_summary"`
}

type summaryBody struct {
	TotalFiles      int    `json:"total_files"`
	SuccessfulFiles int    `json:"successful_files"`
	FailedFiles     int    `json:"failed_files"`
	SuccessRate     string `json:"success_rate"`
}

// writeJSON writes indented JSON through a temp file and an atomic
// rename, so a failed write never leaves a partial artifact behind.
func (p *Persister) writeJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// outputFilename derives "<stem>_zonal_stats.geojson" from the input path.
func outputFilename(srcPath string) string {
	base := filepath.Base(srcPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + outputSuffix + ".geojson"
}
