// Package project persists application configuration and packing projects.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/piwi3910/binpack/internal/model"
)

// EnvPrefix is prepended to config keys when reading overrides from the
// environment, e.g. BINPACK_DEFAULT_COOLING_RATE.
const EnvPrefix = "BINPACK"

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.binpack/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".binpack")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path in the format its
// extension selects, the same one LoadAppConfig reads: .yaml/.yml and .toml
// go through viper, anything else is written as indented JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if typ := configType(path); typ != "json" {
		v := viper.New()
		setDefaults(v, config)
		v.SetConfigType(typ)
		if err := v.WriteConfigAs(path); err != nil {
			return fmt.Errorf("write config %s: %w", path, err)
		}
		return nil
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path. The format follows
// the extension (.yaml/.yml, .toml, otherwise JSON). Environment variables
// prefixed with EnvPrefix override file values. If the file does not exist,
// defaults plus environment overrides are returned with no error. The result
// is validated before it is returned.
func LoadAppConfig(path string) (model.AppConfig, error) {
	v := viper.New()
	setDefaults(v, model.DefaultAppConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType(configType(path))
			if err := v.ReadInConfig(); err != nil {
				return model.AppConfig{}, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return model.AppConfig{}, err
		}
	}

	var config model.AppConfig
	if err := v.Unmarshal(&config); err != nil {
		return model.AppConfig{}, fmt.Errorf("decode config: %w", err)
	}
	// Ensure RecentFiles is never nil
	if config.RecentFiles == nil {
		config.RecentFiles = []string{}
	}

	if err := ValidateAppConfig(config); err != nil {
		return model.AppConfig{}, err
	}
	return config, nil
}

// ValidateAppConfig checks the struct tags on model.AppConfig.
func ValidateAppConfig(config model.AppConfig) error {
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func configType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return "json"
	}
}

// setDefaults registers every AppConfig key so that environment overrides
// apply even when the file does not mention the key.
func setDefaults(v *viper.Viper, d model.AppConfig) {
	v.SetDefault("default_initial_temperature", d.DefaultInitialTemperature)
	v.SetDefault("default_cooling_rate", d.DefaultCoolingRate)
	v.SetDefault("default_max_iterations", d.DefaultMaxIterations)
	v.SetDefault("max_bootstrap_attempts", d.MaxBootstrapAttempts)
	v.SetDefault("strict_bootstrap", d.StrictBootstrap)
	v.SetDefault("report_interval", d.ReportInterval)
	v.SetDefault("exact_time_limit_seconds", d.ExactTimeLimitSeconds)
	v.SetDefault("bench_workers", d.BenchWorkers)
	v.SetDefault("recent_files", d.RecentFiles)
	v.SetDefault("log_level", d.LogLevel)
}
