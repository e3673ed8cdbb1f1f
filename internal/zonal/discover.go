package zonal

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/geotala/zonalstats/internal/ports"
)

// DefaultMinFileBytes is the minimum input file size. Smaller files are
// structurally invalid (likely empty or truncated) and never enter the
// run at all.
const DefaultMinFileBytes = 100

// supportedExtensions are the vector formats the pipeline accepts.
var supportedExtensions = map[string]bool{
	".geojson": true,
	".gpkg":    true,
	".shp":     true,
	".kml":     true,
	".gml":     true,
	".json":    true,
}

// DiscoverFiles finds vector files under root, recursively by default.
// The result is sorted and deduplicated so batch runs over a fixed input
// snapshot are reproducible.
func DiscoverFiles(root string, recursive bool, logger ports.Logger) ([]string, error) {
	var found []string

	if recursive {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && supportedExtensions[strings.ToLower(filepath.Ext(path))] {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && supportedExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
				found = append(found, filepath.Join(root, e.Name()))
			}
		}
	}

	sort.Strings(found)
	found = dedup(found)

	logger.Info("found vector files",
		ports.Int("count", len(found)),
		ports.String("folder", root),
	)
	if len(found) == 0 {
		logger.Warn("no vector files found", ports.String("folder", root))
	}
	return found, nil
}

// FilterBySize drops files below minBytes before any pipeline step. They
// do not count toward the run total. Unreadable files are dropped too.
func FilterBySize(paths []string, minBytes int64, logger ports.Logger) []string {
	filtered := paths[:0]
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			logger.Warn("cannot access file, skipping",
				ports.String("file", filepath.Base(path)),
				ports.Err(err),
			)
			continue
		}
		if info.Size() < minBytes {
			logger.Warn("skipping small file (likely empty)",
				ports.String("file", filepath.Base(path)),
			)
			continue
		}
		filtered = append(filtered, path)
	}
	return filtered
}

func dedup(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
