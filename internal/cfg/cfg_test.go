package cfg

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"flight-delay-api/internal/common"
)

func setEnv(t *testing.T, envVars map[string]string) {
	t.Helper()
	keys := []string{
		common.EnvConfigFile, common.EnvPort, common.EnvMetricsPort,
		common.EnvDataSource, common.EnvDataPath, common.EnvHTTPTimeout,
		common.EnvLogLevel, common.EnvTrainHoldout,
	}
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	for k, v := range envVars {
		t.Setenv(k, v)
	}
}

func TestLoadFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		wantErr  bool
		validate func(t *testing.T, settings Settings)
	}{
		{
			name: "valid config with required fields",
			envVars: map[string]string{
				common.EnvDataSource: "data/data.csv",
			},
			wantErr: false,
			validate: func(t *testing.T, settings Settings) {
				if settings.DataSource != "data/data.csv" {
					t.Errorf("expected DataSource to be 'data/data.csv', got %s", settings.DataSource)
				}
				// Test defaults
				if settings.Port != common.DefaultPort {
					t.Errorf("expected default port %d, got %d", common.DefaultPort, settings.Port)
				}
				if settings.MetricsPort != common.DefaultMetricsPort {
					t.Errorf("expected default metrics port %d, got %d", common.DefaultMetricsPort, settings.MetricsPort)
				}
				if settings.HTTPTimeout != 30*time.Second {
					t.Errorf("expected default HTTPTimeout 30s, got %v", settings.HTTPTimeout)
				}
				if settings.LogLevel != "info" {
					t.Errorf("expected default LogLevel info, got %s", settings.LogLevel)
				}
				if settings.TrainHoldout != 0 {
					t.Errorf("expected default TrainHoldout 0, got %f", settings.TrainHoldout)
				}
			},
		},
		{
			name: "custom settings",
			envVars: map[string]string{
				common.EnvDataSource:   "https://example.com/data.csv",
				common.EnvPort:         "9000",
				common.EnvMetricsPort:  "9090",
				common.EnvHTTPTimeout:  "10s",
				common.EnvLogLevel:     "debug",
				common.EnvTrainHoldout: "0.2",
				common.EnvDataPath:     "/var/lib/delay",
			},
			wantErr: false,
			validate: func(t *testing.T, settings Settings) {
				if settings.Port != 9000 {
					t.Errorf("expected port 9000, got %d", settings.Port)
				}
				if settings.MetricsPort != 9090 {
					t.Errorf("expected metrics port 9090, got %d", settings.MetricsPort)
				}
				if settings.HTTPTimeout != 10*time.Second {
					t.Errorf("expected HTTPTimeout 10s, got %v", settings.HTTPTimeout)
				}
				if settings.TrainHoldout != 0.2 {
					t.Errorf("expected TrainHoldout 0.2, got %f", settings.TrainHoldout)
				}
				if settings.DataPath != "/var/lib/delay" {
					t.Errorf("expected DataPath /var/lib/delay, got %s", settings.DataPath)
				}
			},
		},
		{
			name:    "missing data source",
			envVars: map[string]string{},
			wantErr: true,
		},
		{
			name: "same API and metrics port",
			envVars: map[string]string{
				common.EnvDataSource:  "data.csv",
				common.EnvPort:        "8080",
				common.EnvMetricsPort: "8080",
			},
			wantErr: true,
		},
		{
			name: "holdout out of range",
			envVars: map[string]string{
				common.EnvDataSource:   "data.csv",
				common.EnvTrainHoldout: "0.95",
			},
			wantErr: true,
		},
		{
			name: "port out of range",
			envVars: map[string]string{
				common.EnvDataSource: "data.csv",
				common.EnvPort:       "80",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.envVars)

			settings, err := Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.validate != nil {
				tt.validate(t, settings)
			}
		})
	}
}

func TestLoadFromYAML(t *testing.T) {
	content := `
server:
  port: 9100
  metricsPort: 9101
data:
  source: data/flights.csv
  path: /tmp/delay-data
training:
  holdout: 0.15
system:
  httpTimeout: 45s
  logLevel: warn
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	setEnv(t, map[string]string{common.EnvConfigFile: path})

	settings, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if settings.Port != 9100 {
		t.Errorf("expected port 9100, got %d", settings.Port)
	}
	if settings.MetricsPort != 9101 {
		t.Errorf("expected metrics port 9101, got %d", settings.MetricsPort)
	}
	if settings.DataSource != "data/flights.csv" {
		t.Errorf("expected source data/flights.csv, got %s", settings.DataSource)
	}
	if settings.HTTPTimeout != 45*time.Second {
		t.Errorf("expected timeout 45s, got %v", settings.HTTPTimeout)
	}
	if settings.LogLevel != "warn" {
		t.Errorf("expected log level warn, got %s", settings.LogLevel)
	}
	if settings.TrainHoldout != 0.15 {
		t.Errorf("expected holdout 0.15, got %f", settings.TrainHoldout)
	}
}

func TestLoadFromYAML_EnvOverrides(t *testing.T) {
	content := `
data:
  source: data/flights.csv
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	setEnv(t, map[string]string{
		common.EnvConfigFile: path,
		common.EnvDataSource: "override.csv",
		common.EnvPort:       "9500",
	})

	settings, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if settings.DataSource != "override.csv" {
		t.Errorf("expected env to override source, got %s", settings.DataSource)
	}
	if settings.Port != 9500 {
		t.Errorf("expected env port 9500, got %d", settings.Port)
	}
	// Unset values fall back to defaults.
	if settings.MetricsPort != common.DefaultMetricsPort {
		t.Errorf("expected default metrics port, got %d", settings.MetricsPort)
	}
}

func TestLoadFromYAML_MissingFile(t *testing.T) {
	setEnv(t, map[string]string{common.EnvConfigFile: "/nonexistent/config.yaml"})

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
