package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestGetConfigDir(t *testing.T) {
	if runtime.GOOS == "linux" {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	}

	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if filepath.Base(configDir) != "mvg" {
		t.Errorf("GetConfigDir() = %v, should end in 'mvg'", configDir)
	}
	if runtime.GOOS == "linux" && configDir != filepath.Join("/tmp/xdg", "mvg") {
		t.Errorf("GetConfigDir() = %v, want XDG_CONFIG_HOME/mvg", configDir)
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}

	logPath, err := GetLogPath()
	if err != nil {
		t.Fatalf("GetLogPath() error = %v", err)
	}
	if filepath.Dir(logPath) != filepath.Dir(configPath) {
		t.Errorf("GetLogPath() = %v, want next to %v", logPath, configPath)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %v, want %v", cfg.Version, CurrentVersion)
	}
	if cfg.API.RequestTimeout != 20*time.Second {
		t.Errorf("API.RequestTimeout = %v, want 20s", cfg.API.RequestTimeout)
	}
	if cfg.API.RetryDelay != 500*time.Millisecond {
		t.Errorf("API.RetryDelay = %v, want 500ms", cfg.API.RetryDelay)
	}
	if !cfg.Defaults.Ubahn || !cfg.Defaults.Sbahn || !cfg.Defaults.Tram || !cfg.Defaults.Bus {
		t.Error("every transport mode should be enabled by default")
	}
	if cfg.Defaults.Arrival {
		t.Error("searches should be by departure by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("NewConfig().Validate() error = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != NewConfig().API.BaseURL {
		t.Errorf("API.BaseURL = %v, want default", cfg.API.BaseURL)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `version: 1
api:
  base_url: http://127.0.0.1:8080
  request_timeout: 5s
  retry_delay: 1s
defaults:
  bus: false
  arrival: true
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "http://127.0.0.1:8080" {
		t.Errorf("API.BaseURL = %v", cfg.API.BaseURL)
	}
	if cfg.API.RequestTimeout != 5*time.Second {
		t.Errorf("API.RequestTimeout = %v, want 5s", cfg.API.RequestTimeout)
	}
	if cfg.API.RetryDelay != time.Second {
		t.Errorf("API.RetryDelay = %v, want 1s", cfg.API.RetryDelay)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("API.Timeout = %v, want default 10s", cfg.API.Timeout)
	}
	if cfg.Defaults.Bus || !cfg.Defaults.Arrival || !cfg.Defaults.Ubahn {
		t.Errorf("Defaults = %+v, want bus off, arrival on, rest default", cfg.Defaults)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"version", "version: 2\n", "unsupported config version"},
		{"url", "version: 1\napi:\n  base_url: ftp://example\n", "api.base_url"},
		{"timeout", "version: 1\napi:\n  timeout: -1s\n", "api.timeout"},
		{"retry delay", "version: 1\napi:\n  retry_delay: -1s\n", "api.retry_delay"},
		{"poll", "version: 1\nui:\n  poll_interval: 5s\n", "ui.poll_interval"},
		{"level", "version: 1\nlog:\n  level: loud\n", "log.level"},
		{"yaml", "version: [", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0600); err != nil {
				t.Fatal(err)
			}

			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := NewConfig()
	cfg.API.MaxRetries = 4
	cfg.UI.PollInterval = 100 * time.Millisecond
	cfg.Defaults.Tram = false

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should be gone after Save()")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# MVG route planner configuration") {
		t.Error("saved file should start with the header comment")
	}
	if !strings.Contains(string(data), "poll_interval: 100ms") {
		t.Errorf("durations should be written in Go syntax:\n%s", data)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.API.MaxRetries != 4 || loaded.UI.PollInterval != 100*time.Millisecond || loaded.Defaults.Tram {
		t.Errorf("Load() = %+v, want saved values", loaded)
	}
}
