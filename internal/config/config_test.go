package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarkduvall/hyperloglog/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "hllcount.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultPrecision, cfg.Estimator.Precision)
	assert.Equal(t, config.DefaultWorkers, cfg.Ingest.Workers)
	assert.Equal(t, config.DefaultBatchSize, cfg.Ingest.BatchSize)
	assert.False(t, cfg.Ingest.Trim)
	assert.False(t, cfg.Ingest.Lower)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
estimator:
  precision: 12

ingest:
  workers: 8
  trim: true
  lower: true

logging:
  level: debug
  format: json
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Estimator.Precision)
	assert.Equal(t, 8, cfg.Ingest.Workers)
	assert.Equal(t, config.DefaultBatchSize, cfg.Ingest.BatchSize)
	assert.True(t, cfg.Ingest.Trim)
	assert.True(t, cfg.Ingest.Lower)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("HLLCOUNT_ESTIMATOR_PRECISION", "10")
	t.Setenv("HLLCOUNT_INGEST_WORKERS", "2")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Estimator.Precision)
	assert.Equal(t, 2, cfg.Ingest.Workers)
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"precision_low", "estimator:\n  precision: 3\n", config.ErrInvalidPrecision},
		{"precision_high", "estimator:\n  precision: 17\n", config.ErrInvalidPrecision},
		{"workers", "ingest:\n  workers: 0\n", config.ErrInvalidWorkers},
		{"batch_size", "ingest:\n  batch_size: -1\n", config.ErrInvalidBatchSize},
		{"log_level", "logging:\n  level: chatty\n", config.ErrInvalidLogLevel},
		{"log_format", "logging:\n  format: xml\n", config.ErrInvalidLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.LoadConfig(writeConfig(t, tt.content))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Estimator: config.EstimatorConfig{Precision: 16},
		Ingest:    config.IngestConfig{Workers: 1, BatchSize: 1},
		Logging:   config.LoggingConfig{Level: "WARN", Format: "JSON"},
	}
	require.NoError(t, config.Validate(cfg))

	cfg.Estimator.Precision = 4
	require.NoError(t, config.Validate(cfg))

	cfg.Estimator.Precision = 0
	require.ErrorIs(t, config.Validate(cfg), config.ErrInvalidPrecision)
}
