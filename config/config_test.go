package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"synth911/config"
	customerrors "synth911/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	settings, err := config.Load(config.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 10000, settings.NumRecords)
	assert.Equal(t, "2024-01-01", settings.StartDate)
	assert.Equal(t, "2024-12-31", settings.EndDate)
	assert.Equal(t, 8, settings.NumNames)
	assert.Equal(t, "en_US", settings.Locale)
	assert.Equal(t, "computer_aided_dispatch.csv", settings.Output)
	assert.Equal(t, "csv", settings.Format)
	assert.Equal(t, "info", settings.LogLevel)
	assert.Equal(t, 8911, settings.Port)
	assert.Empty(t, settings.Seed)
}

func TestLoad_Layers(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
num_records: 500
locale: de_DE
agencies: LAW,EMS
format: JSON
`), 0o644))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SYNTH911_NUM_NAMES=3\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("SYNTH911_NUM_NAMES") })

	t.Setenv("SYNTH911_NUM_RECORDS", "42")

	settings, err := config.Load(config.New(), path)
	require.NoError(t, err)

	// environment beats the file
	assert.Equal(t, 42, settings.NumRecords)
	// file beats defaults
	assert.Equal(t, "de_DE", settings.Locale)
	assert.Equal(t, "LAW,EMS", settings.Agencies)
	assert.Equal(t, "json", settings.Format)
	// .env values reach the environment layer
	assert.Equal(t, 3, settings.NumNames)
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]struct {
		file     string
		expected error
	}{
		"InvalidFormat": {
			file:     "format: parquet\n",
			expected: customerrors.ErrInvalidFormat,
		},
		"InvalidPort": {
			file:     "port: 70000\n",
			expected: customerrors.ErrInvalidPort,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)
			path := filepath.Join(dir, "synth911.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.file), 0o644))

			_, err := config.Load(config.New(), "")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected))

			var cfgErr *customerrors.ConfigurationError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := config.Load(config.New(), "does-not-exist.yaml")
	assert.Error(t, err)
}

func TestGenerationConfig(t *testing.T) {
	tests := map[string]struct {
		settings      config.Settings
		agencies      []string
		probabilities []float64
		seed          *uint64
		expectedError error
	}{
		"Empty": {
			settings: config.Settings{NumRecords: 10},
		},
		"AgenciesAndProbabilities": {
			settings:      config.Settings{Agencies: " LAW, EMS ,,", AgencyProbabilities: "0.6, 0.4"},
			agencies:      []string{"LAW", "EMS"},
			probabilities: []float64{0.6, 0.4},
		},
		"Seed": {
			settings: config.Settings{Seed: "1234"},
			seed:     func() *uint64 { v := uint64(1234); return &v }(),
		},
		"MalformedProbability": {
			settings:      config.Settings{Agencies: "LAW,EMS", AgencyProbabilities: "0.6,abc"},
			expectedError: customerrors.ErrInvalidProbability,
		},
		"NegativeSeed": {
			settings:      config.Settings{Seed: "-1"},
			expectedError: customerrors.ErrInvalidSeed,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := tt.settings.GenerationConfig()
			if tt.expectedError != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedError))
				var cfgErr *customerrors.ConfigurationError
				assert.True(t, errors.As(err, &cfgErr))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.agencies, cfg.Agencies)
			assert.Equal(t, tt.probabilities, cfg.AgencyProbabilities)
			assert.Equal(t, tt.seed, cfg.Seed)
			assert.Equal(t, tt.settings.NumRecords, cfg.NumRecords)
		})
	}
}
