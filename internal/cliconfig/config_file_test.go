package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true
	falseVal := false

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				OHMRaster:    "/data/ohm.tif",
				SlopeRaster:  "/data/slope.tif",
				InputFolder:  "/data/parcels",
				OutputFolder: "/data/out",
				EPSG:         4326,
				Nodata:       -32768,
				MinFileBytes: 200,
				Watch:        &trueVal,
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				OHMRaster:    "/data/ohm.tif",
				SlopeRaster:  "/data/slope.tif",
				InputFolder:  "/data/parcels",
				OutputFolder: "/data/out",
				EPSG:         4326,
				Nodata:       -32768,
				MinFileBytes: 200,
				Watch:        true,
			},
			wantErr: false,
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				InputFolder: "/config/parcels",
				EPSG:        4326,
			},
			changed: map[string]bool{"input-folder": true},
			initial: Config{
				InputFolder: "/flag/parcels",
				EPSG:        32748,
			},
			expected: Config{
				InputFolder: "/flag/parcels", // unchanged because flag was set
				EPSG:        4326,
			},
			wantErr: false,
		},
		{
			name: "ignores zero and empty values",
			fileConfig: FileConfig{
				OHMRaster: "",
				EPSG:      0,
			},
			changed: map[string]bool{},
			initial: Config{
				OHMRaster: "/keep/ohm.tif",
				EPSG:      32748,
			},
			expected: Config{
				OHMRaster: "/keep/ohm.tif",
				EPSG:      32748,
			},
			wantErr: false,
		},
		{
			name: "bool pointer false overrides default true",
			fileConfig: FileConfig{
				Recursive: &falseVal,
			},
			changed: map[string]bool{},
			initial: Config{
				Recursive: true,
			},
			expected: Config{
				Recursive: false,
			},
			wantErr: false,
		},
		{
			name: "nil bool pointer leaves default alone",
			fileConfig: FileConfig{},
			changed:    map[string]bool{},
			initial: Config{
				Recursive: true,
			},
			expected: Config{
				Recursive: true,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyFileConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if cfg != tt.expected {
				t.Errorf("ApplyFileConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
ohm_raster = "/data/ohm.tif"
slope_raster = "/data/slope.tif"
input_folder = "/data/parcels"
epsg = 32748
min_file_bytes = 150
recursive = false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}

	if fc.OHMRaster != "/data/ohm.tif" {
		t.Errorf("OHMRaster = %v, want /data/ohm.tif", fc.OHMRaster)
	}
	if fc.SlopeRaster != "/data/slope.tif" {
		t.Errorf("SlopeRaster = %v, want /data/slope.tif", fc.SlopeRaster)
	}
	if fc.EPSG != 32748 {
		t.Errorf("EPSG = %v, want 32748", fc.EPSG)
	}
	if fc.MinFileBytes != 150 {
		t.Errorf("MinFileBytes = %v, want 150", fc.MinFileBytes)
	}
	if fc.Recursive == nil || *fc.Recursive {
		t.Errorf("Recursive = %v, want false", fc.Recursive)
	}
}

func TestLoadFileConfig_MissingFile(t *testing.T) {
	_, err := LoadFileConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("LoadFileConfig() expected error for missing file")
	}
}

func TestLoadFileConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("epsg = [not toml"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := LoadFileConfig(path)
	if err == nil {
		t.Fatal("LoadFileConfig() expected error for invalid TOML")
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present.toml")
	if err := os.WriteFile(path, []byte("epsg = 1"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if !FileExists(path) {
		t.Error("FileExists() = false for existing file")
	}
	if FileExists(filepath.Join(dir, "absent.toml")) {
		t.Error("FileExists() = true for missing file")
	}
}
