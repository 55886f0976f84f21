package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete pipeline configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Report  ReportConfig  `yaml:"report" envconfig:"REPORT"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
}

// ReportConfig contains report-generation options.
type ReportConfig struct {
	// TopLocations is the number of ranked locations in the text summary.
	TopLocations int `yaml:"top_locations" envconfig:"TOP_LOCATIONS" default:"10" validate:"gte=1,lte=100"`

	// PickupBinHours is the histogram bin width for the pickup
	// time-of-day chart, in hours.
	PickupBinHours float64 `yaml:"pickup_bin_hours" envconfig:"PICKUP_BIN_HOURS" default:"1" validate:"gt=0"`

	// DistanceBinMiles is the histogram bin width for the trip-distance
	// chart, in miles.
	DistanceBinMiles float64 `yaml:"distance_bin_miles" envconfig:"DISTANCE_BIN_MILES" default:"1" validate:"gt=0"`

	// RatePerHourBin is the histogram bin width for the
	// deliveries-per-hour chart.
	RatePerHourBin float64 `yaml:"rate_per_hour_bin" envconfig:"RATE_PER_HOUR_BIN" default:"0.5" validate:"gt=0"`
}

// Load loads configuration from environment variables and, if present, the
// dashpulse.yaml file next to the executable. Environment variables win.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("DASH", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile, err := configFilePath()
	if err == nil {
		if _, statErr := os.Stat(configFile); statErr == nil {
			fileCfg, loadErr := loadFromFile(configFile)
			if loadErr != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", loadErr)
			}
			cfg = merge(*fileCfg, cfg)
		}
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// merge overlays env config on file config; zero env fields fall back to
// the file values.
func merge(fileCfg, envCfg Config) Config {
	if envCfg.Logging.Level == "" {
		envCfg.Logging.Level = fileCfg.Logging.Level
	}
	if envCfg.Logging.Format == "" {
		envCfg.Logging.Format = fileCfg.Logging.Format
	}
	if envCfg.Report.TopLocations == 0 {
		envCfg.Report.TopLocations = fileCfg.Report.TopLocations
	}
	if envCfg.Report.PickupBinHours == 0 {
		envCfg.Report.PickupBinHours = fileCfg.Report.PickupBinHours
	}
	if envCfg.Report.DistanceBinMiles == 0 {
		envCfg.Report.DistanceBinMiles = fileCfg.Report.DistanceBinMiles
	}
	if envCfg.Report.RatePerHourBin == 0 {
		envCfg.Report.RatePerHourBin = fileCfg.Report.RatePerHourBin
	}
	return envCfg
}

func configFilePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(exe), "dashpulse.yaml"), nil
}
