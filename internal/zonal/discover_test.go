package zonal

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/geotala/zonalstats/pkg/log"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDiscoverFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.geojson"), 200)
	writeFile(t, filepath.Join(dir, "a.gpkg"), 200)
	writeFile(t, filepath.Join(dir, "c.SHP"), 200)
	writeFile(t, filepath.Join(dir, "notes.txt"), 200)
	writeFile(t, filepath.Join(dir, "nested", "d.kml"), 200)

	files, err := DiscoverFiles(dir, true, log.NewNoopLogger())
	if err != nil {
		t.Fatalf("DiscoverFiles() error = %v", err)
	}
	if len(files) != 4 {
		t.Fatalf("found %d files, want 4: %v", len(files), files)
	}
	if !sort.StringsAreSorted(files) {
		t.Errorf("files not sorted: %v", files)
	}
	for _, f := range files {
		if filepath.Base(f) == "notes.txt" {
			t.Errorf("unsupported file discovered: %v", f)
		}
	}
}

func TestDiscoverFiles_NonRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.geojson"), 200)
	writeFile(t, filepath.Join(dir, "nested", "b.geojson"), 200)

	files, err := DiscoverFiles(dir, false, log.NewNoopLogger())
	if err != nil {
		t.Fatalf("DiscoverFiles() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("found %d files, want 1: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "a.geojson" {
		t.Errorf("found %v, want a.geojson", files[0])
	}
}

func TestDiscoverFiles_EmptyFolder(t *testing.T) {
	files, err := DiscoverFiles(t.TempDir(), true, log.NewNoopLogger())
	if err != nil {
		t.Fatalf("DiscoverFiles() error = %v", err)
	}
	if len(files) != 0 {
		t.Errorf("found %d files in empty folder, want 0", len(files))
	}
}

func TestDiscoverFiles_MissingFolder(t *testing.T) {
	_, err := DiscoverFiles(filepath.Join(t.TempDir(), "absent"), true, log.NewNoopLogger())
	if err == nil {
		t.Fatal("DiscoverFiles() expected error for missing folder")
	}
}

func TestFilterBySize(t *testing.T) {
	dir := t.TempDir()
	big := filepath.Join(dir, "big.geojson")
	small := filepath.Join(dir, "small.geojson")
	empty := filepath.Join(dir, "empty.geojson")
	writeFile(t, big, 200)
	writeFile(t, small, 40)
	writeFile(t, empty, 0)

	got := FilterBySize([]string{big, small, empty}, DefaultMinFileBytes, log.NewNoopLogger())
	if len(got) != 1 || got[0] != big {
		t.Errorf("FilterBySize() = %v, want [%s]", got, big)
	}
}

func TestFilterBySize_UnreadableDropped(t *testing.T) {
	dir := t.TempDir()
	got := FilterBySize([]string{filepath.Join(dir, "gone.geojson")}, DefaultMinFileBytes, log.NewNoopLogger())
	if len(got) != 0 {
		t.Errorf("FilterBySize() = %v, want empty", got)
	}
}
