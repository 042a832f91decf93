package cfg

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"flight-delay-api/internal/common"
)

type Settings struct {
	Port         int
	MetricsPort  int
	DataSource   string
	DataPath     string
	HTTPTimeout  time.Duration
	LogLevel     string
	TrainHoldout float64
}

type ConfigFile struct {
	Server struct {
		Port        int `yaml:"port"`
		MetricsPort int `yaml:"metricsPort"`
	} `yaml:"server"`

	Data struct {
		Source string `yaml:"source"`
		Path   string `yaml:"path"`
	} `yaml:"data"`

	Training struct {
		Holdout float64 `yaml:"holdout"`
	} `yaml:"training"`

	System struct {
		HTTPTimeout string `yaml:"httpTimeout"`
		LogLevel    string `yaml:"logLevel"`
	} `yaml:"system"`
}

func Load() (Settings, error) {
	// Try to load from YAML file first
	if configPath := os.Getenv(common.EnvConfigFile); configPath != "" {
		return loadFromYAML(configPath)
	}

	// Fallback to environment variables
	return loadFromEnv()
}

func loadFromYAML(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Settings{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	httpTimeout, err := time.ParseDuration(config.System.HTTPTimeout)
	if err != nil {
		httpTimeout = 30 * time.Second
	}

	settings := Settings{
		Port:         getIntFromEnvOrConfig(common.EnvPort, config.Server.Port),
		MetricsPort:  getIntFromEnvOrConfig(common.EnvMetricsPort, config.Server.MetricsPort),
		DataSource:   getEnvOrDefault(common.EnvDataSource, config.Data.Source),
		DataPath:     getEnvOrDefault(common.EnvDataPath, config.Data.Path),
		HTTPTimeout:  getDurationOrDefault(common.EnvHTTPTimeout, httpTimeout),
		LogLevel:     getEnvOrDefault(common.EnvLogLevel, config.System.LogLevel),
		TrainHoldout: getFloatFromEnvOrConfig(common.EnvTrainHoldout, config.Training.Holdout),
	}
	applyDefaults(&settings)

	if err := validateSettings(&settings); err != nil {
		return Settings{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	return settings, nil
}

func loadFromEnv() (Settings, error) {
	source, err := getEnvRequired(common.EnvDataSource)
	if err != nil {
		return Settings{}, err
	}

	settings := Settings{
		Port:         getIntOrDefault(common.EnvPort, common.DefaultPort),
		MetricsPort:  getIntOrDefault(common.EnvMetricsPort, common.DefaultMetricsPort),
		DataSource:   source,
		DataPath:     os.Getenv(common.EnvDataPath), // optional
		HTTPTimeout:  getDurationOrDefault(common.EnvHTTPTimeout, 30*time.Second),
		LogLevel:     getEnvOrDefault(common.EnvLogLevel, common.DefaultLogLevel),
		TrainHoldout: getFloatOrDefault(common.EnvTrainHoldout, common.DefaultTrainHoldout),
	}

	if err := validateSettings(&settings); err != nil {
		return Settings{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	return settings, nil
}

func applyDefaults(settings *Settings) {
	if settings.Port == 0 {
		settings.Port = common.DefaultPort
	}
	if settings.MetricsPort == 0 {
		settings.MetricsPort = common.DefaultMetricsPort
	}
	if settings.HTTPTimeout == 0 {
		settings.HTTPTimeout = 30 * time.Second
	}
	if settings.LogLevel == "" {
		settings.LogLevel = common.DefaultLogLevel
	}
}

func getEnvRequired(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("required environment variable %s is missing", key)
	}
	return v, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getIntFromEnvOrConfig(key string, configValue int) int {
	if env := os.Getenv(key); env != "" {
		if val, err := strconv.Atoi(env); err == nil {
			return val
		}
	}
	return configValue
}

func getFloatFromEnvOrConfig(key string, configValue float64) float64 {
	if env := os.Getenv(key); env != "" {
		if val, err := strconv.ParseFloat(env, 64); err == nil {
			return val
		}
	}
	return configValue
}

// validateSettings performs validation of configuration values
func validateSettings(settings *Settings) error {
	if settings.DataSource == "" {
		return fmt.Errorf("%s", common.ErrMsgDataSourceRequired)
	}

	if settings.Port < common.MinPort || settings.Port > common.MaxPort {
		return fmt.Errorf("API port must be between %d and %d, got %d", common.MinPort, common.MaxPort, settings.Port)
	}
	if settings.MetricsPort < common.MinPort || settings.MetricsPort > common.MaxPort {
		return fmt.Errorf("metrics port must be between %d and %d, got %d", common.MinPort, common.MaxPort, settings.MetricsPort)
	}
	if settings.Port == settings.MetricsPort {
		return fmt.Errorf("%s", common.ErrMsgPortsMustDiffer)
	}

	if settings.HTTPTimeout < time.Second || settings.HTTPTimeout > 5*time.Minute {
		return fmt.Errorf("HTTP timeout must be between 1s and 5m, got %v", settings.HTTPTimeout)
	}

	if settings.TrainHoldout < 0 || settings.TrainHoldout > common.MaxTrainHoldout {
		return fmt.Errorf("training holdout must be between 0 and %.1f, got %f", common.MaxTrainHoldout, settings.TrainHoldout)
	}

	return nil
}
