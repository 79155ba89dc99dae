package model

// AppConfig holds application-wide preferences and default solver settings.
type AppConfig struct {
	// Annealing defaults applied to new runs
	DefaultInitialTemperature float64 `json:"default_initial_temperature" mapstructure:"default_initial_temperature" validate:"gt=0"`
	DefaultCoolingRate        float64 `json:"default_cooling_rate" mapstructure:"default_cooling_rate" validate:"gt=0,lt=1"`
	DefaultMaxIterations      int     `json:"default_max_iterations" mapstructure:"default_max_iterations" validate:"gte=0"`
	MaxBootstrapAttempts      int     `json:"max_bootstrap_attempts" mapstructure:"max_bootstrap_attempts" validate:"gte=0"`
	StrictBootstrap           bool    `json:"strict_bootstrap" mapstructure:"strict_bootstrap"`
	ReportInterval            int     `json:"report_interval" mapstructure:"report_interval" validate:"gte=0"` // iterations, 0 = disabled

	// Exact solver and bench harness
	ExactTimeLimitSeconds int `json:"exact_time_limit_seconds" mapstructure:"exact_time_limit_seconds" validate:"gte=0"` // 0 = unlimited
	BenchWorkers          int `json:"bench_workers" mapstructure:"bench_workers" validate:"gte=0"`

	// Application preferences
	RecentFiles []string `json:"recent_files" mapstructure:"recent_files"`
	LogLevel    string   `json:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"` // "debug", "info", "warn", "error"
}

// DefaultAppConfig returns an AppConfig populated with the stock annealing
// schedule: T0=1000, alpha=0.95, 100000 iterations, progress every 100.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultInitialTemperature: 1000,
		DefaultCoolingRate:        0.95,
		DefaultMaxIterations:      100000,
		MaxBootstrapAttempts:      100000,
		ReportInterval:            100,
		ExactTimeLimitSeconds:     30,
		BenchWorkers:              4,
		RecentFiles:               []string{},
		LogLevel:                  "info",
	}
}

// AddRecentFile pushes path to the front of RecentFiles, removing duplicates
// and keeping at most limit entries.
func (c *AppConfig) AddRecentFile(path string, limit int) {
	out := []string{path}
	for _, p := range c.RecentFiles {
		if p != path {
			out = append(out, p)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	c.RecentFiles = out
}
