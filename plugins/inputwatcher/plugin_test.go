package inputwatcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/geotala/zonalstats/pkg/zonalstats"
)

func TestPlugin_Name(t *testing.T) {
	plugin := New(DefaultConfig())
	if plugin.Name() != "inputwatcher" {
		t.Errorf("Name() = %v, want inputwatcher", plugin.Name())
	}
}

func TestPlugin_RequestsRunOnVectorFile(t *testing.T) {
	tmpDir := t.TempDir()

	var mu sync.Mutex
	var runCount int

	plugin := New(Config{DebounceDelay: 20 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := plugin.Initialize(ctx, zonalstats.PluginConfig{
		InputFolder: tmpDir,
		Logger:      &noopLogger{},
		RequestRun: func() {
			mu.Lock()
			runCount++
			mu.Unlock()
		},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(tmpDir, "parcels.geojson")
	if err := os.WriteFile(path, []byte(`{"type":"FeatureCollection","features":[]}`), 0644); err != nil {
		t.Fatalf("Failed to create vector file: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		count := runCount
		mu.Unlock()
		if count > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("RequestRun was never called after vector file creation")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := plugin.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

func TestPlugin_IgnoresUnrelatedFiles(t *testing.T) {
	tmpDir := t.TempDir()

	var mu sync.Mutex
	var runCount int

	plugin := New(Config{DebounceDelay: 20 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := plugin.Initialize(ctx, zonalstats.PluginConfig{
		InputFolder: tmpDir,
		Logger:      &noopLogger{},
		RequestRun: func() {
			mu.Lock()
			runCount++
			mu.Unlock()
		},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(tmpDir, "notes.txt")
	if err := os.WriteFile(path, []byte("not a vector file"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	count := runCount
	mu.Unlock()

	if count != 0 {
		t.Errorf("Expected 0 run requests for unrelated file, got %d", count)
	}

	if err := plugin.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

func TestPlugin_DebounceCollapsesBurst(t *testing.T) {
	tmpDir := t.TempDir()

	var mu sync.Mutex
	var runCount int

	plugin := New(Config{DebounceDelay: 150 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := plugin.Initialize(ctx, zonalstats.PluginConfig{
		InputFolder: tmpDir,
		Logger:      &noopLogger{},
		RequestRun: func() {
			mu.Lock()
			runCount++
			mu.Unlock()
		},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 5; i++ {
		name := filepath.Join(tmpDir, "batch.geojson")
		if err := os.WriteFile(name, []byte(`{}`), 0644); err != nil {
			t.Fatalf("Failed to write vector file: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	time.Sleep(500 * time.Millisecond)

	mu.Lock()
	count := runCount
	mu.Unlock()

	if count != 1 {
		t.Errorf("Expected burst of writes to collapse into 1 run request, got %d", count)
	}

	if err := plugin.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

func TestPlugin_DisabledWhenFolderEmpty(t *testing.T) {
	plugin := New(DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := plugin.Initialize(ctx, zonalstats.PluginConfig{
		InputFolder: "",
		Logger:      &noopLogger{},
		RequestRun:  func() {},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if err := plugin.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

// noopLogger implements zonalstats.Logger for testing
type noopLogger struct{}

func (noopLogger) Debug(msg string, fields ...zonalstats.LogField) {}
func (noopLogger) Info(msg string, fields ...zonalstats.LogField)  {}
func (noopLogger) Warn(msg string, fields ...zonalstats.LogField)  {}
func (noopLogger) Error(msg string, fields ...zonalstats.LogField) {}
