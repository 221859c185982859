package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vango-dev/vtree/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics.Namespace = %q", cfg.Metrics.Namespace)
	}
	if cfg.DebounceDuration() != 100*time.Millisecond {
		t.Errorf("DebounceDuration() = %v", cfg.DebounceDuration())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Test loading non-existent config
	_, err := Load(tmpDir)
	if !errors.HasCode(err, "E141") {
		t.Errorf("error = %v, want E141", err)
	}

	configPath := filepath.Join(tmpDir, ConfigFileName)
	configJSON := `{
  "log": {"level": "debug", "format": "json"},
  "metrics": {"enabled": true},
  "server": {"port": 8080, "host": "0.0.0.0"},
  "watch": {"debounce": "250ms"},
  "s3": {"region": "eu-west-1", "endpoint": "http://localhost:9000", "pathStyle": true}
}
`
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Address() != "0.0.0.0:8080" {
		t.Errorf("Address() = %q", cfg.Address())
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("LogLevel() = %v", cfg.LogLevel())
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if cfg.DebounceDuration() != 250*time.Millisecond {
		t.Errorf("DebounceDuration() = %v", cfg.DebounceDuration())
	}
	if cfg.S3.Region != "eu-west-1" || !cfg.S3.PathStyle {
		t.Errorf("S3 = %+v", cfg.S3)
	}
	if cfg.Path() != configPath || cfg.Dir() != tmpDir {
		t.Errorf("Path() = %q, Dir() = %q", cfg.Path(), cfg.Dir())
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		json string
		code string
	}{
		{"malformed", `{"server": `, "E120"},
		{"port", `{"server": {"port": 70000}}`, "E122"},
		{"level", `{"log": {"level": "loud"}}`, "E120"},
		{"format", `{"log": {"format": "xml"}}`, "E120"},
		{"debounce", `{"watch": {"debounce": "soon"}}`, "E120"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigFileName)
			if err := os.WriteFile(path, []byte(tt.json), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFile(path)
			if !errors.HasCode(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	cfg := New()
	cfg.Server.Port = 9000
	cfg.Tracing.Enabled = true
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if loaded.Server.Port != 9000 || !loaded.Tracing.Enabled {
		t.Errorf("loaded = %+v", loaded)
	}

	loaded.Log.Level = "warn"
	if err := loaded.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	again, _ := LoadFile(path)
	if again.LogLevel() != slog.LevelWarn {
		t.Errorf("LogLevel() = %v", again.LogLevel())
	}
}

func TestSaveWithoutPath(t *testing.T) {
	if err := New().Save(); err == nil {
		t.Error("Save() without a path should fail")
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := FindProjectRoot(nested); !errors.HasCode(err, "E141") {
		t.Errorf("error = %v, want E141", err)
	}

	if err := New().SaveTo(filepath.Join(root, ConfigFileName)); err != nil {
		t.Fatal(err)
	}
	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatal(err)
	}
	if got != root {
		t.Errorf("FindProjectRoot() = %q, want %q", got, root)
	}
	if !Exists(root) || Exists(nested) {
		t.Error("Exists mismatch")
	}
}
