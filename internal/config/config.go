// Package config provides configuration loading and validation for hllcount.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidPrecision = errors.New("precision must be in [4, 16]")
	ErrInvalidWorkers   = errors.New("workers must be positive")
	ErrInvalidBatchSize = errors.New("batch size must be positive")
	ErrInvalidLogLevel  = errors.New("unknown log level")
	ErrInvalidLogFormat = errors.New("unknown log format")
)

// Default configuration values.
const (
	DefaultPrecision = 14
	DefaultWorkers   = 4
	DefaultBatchSize = 1024

	minPrecision = 4
	maxPrecision = 16
)

// Config holds all configuration for hllcount.
type Config struct {
	Estimator EstimatorConfig `mapstructure:"estimator"`
	Ingest    IngestConfig    `mapstructure:"ingest"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// EstimatorConfig holds estimator construction settings.
type EstimatorConfig struct {
	Precision int `mapstructure:"precision"`
}

// IngestConfig holds input canonicalization and sharding settings.
type IngestConfig struct {
	Workers   int  `mapstructure:"workers"`
	BatchSize int  `mapstructure:"batch_size"`
	Trim      bool `mapstructure:"trim"`
	Lower     bool `mapstructure:"lower"`
	SkipEmpty bool `mapstructure:"skip_empty"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig loads configuration from file and environment variables.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("hllcount")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("$HOME/.config/hllcount")
	}

	viperCfg.SetEnvPrefix("HLLCOUNT")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := Validate(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("estimator.precision", DefaultPrecision)

	viperCfg.SetDefault("ingest.workers", DefaultWorkers)
	viperCfg.SetDefault("ingest.batch_size", DefaultBatchSize)
	viperCfg.SetDefault("ingest.trim", false)
	viperCfg.SetDefault("ingest.lower", false)
	viperCfg.SetDefault("ingest.skip_empty", false)

	viperCfg.SetDefault("logging.level", "info")
	viperCfg.SetDefault("logging.format", "text")
}

// Validate checks the configuration.
func Validate(config *Config) error {
	if config.Estimator.Precision < minPrecision || config.Estimator.Precision > maxPrecision {
		return fmt.Errorf("%w: %d", ErrInvalidPrecision, config.Estimator.Precision)
	}

	if config.Ingest.Workers <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, config.Ingest.Workers)
	}

	if config.Ingest.BatchSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBatchSize, config.Ingest.BatchSize)
	}

	switch strings.ToLower(config.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, config.Logging.Level)
	}

	switch strings.ToLower(config.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Logging.Format)
	}

	return nil
}
