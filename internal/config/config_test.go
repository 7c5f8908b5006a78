package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		fileContent string
		wantErr     bool
		errContains string
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no file and no env",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, DefaultTimestampLayout, cfg.Cleaning.TimestampLayout)
				assert.Equal(t, DefaultIDPrefix, cfg.Cleaning.IDPrefix)
				assert.Equal(t, DefaultIDDigits, cfg.Cleaning.IDDigits)
				assert.Equal(t, 1, cfg.Cleaning.Workers)
				assert.Equal(t, DefaultMaxRepetitionRatio, cfg.Cleaning.Spam.MaxRepetitionRatio)
				assert.Contains(t, cfg.Cleaning.Spam.Tokens, "this is spam")
				assert.False(t, cfg.Cleaning.FillCategoricalDefaults)
			},
		},
		{
			name: "file overrides defaults",
			fileContent: `
logging:
  level: debug
cleaning:
  id_prefix: S
  id_digits: 7
  fill_categorical_defaults: true
  spam:
    tokens: ["lorem ipsum"]
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "S", cfg.Cleaning.IDPrefix)
				assert.Equal(t, 7, cfg.Cleaning.IDDigits)
				assert.True(t, cfg.Cleaning.FillCategoricalDefaults)
				assert.Equal(t, []string{"lorem ipsum"}, cfg.Cleaning.Spam.Tokens)
				// untouched sections keep defaults
				assert.Equal(t, DefaultMaxEditDistance, cfg.Cleaning.MaxEditDistance)
			},
		},
		{
			name: "env overrides file",
			env: map[string]string{
				"SURVEY_LOGGING_LEVEL":              "WARN",
				"SURVEY_CLEANING_WORKERS":           "4",
				"SURVEY_CLEANING_SPAM_TOKENS":       "spam one,spam two",
				"SURVEY_TELEMETRY_METRICS_FILE":     "metrics/run.prom",
				"SURVEY_CLEANING_MAX_EDIT_DISTANCE": "1",
			},
			fileContent: `
logging:
  level: debug
cleaning:
  workers: 2
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, 4, cfg.Cleaning.Workers)
				assert.Equal(t, 1, cfg.Cleaning.MaxEditDistance)
				assert.Equal(t, []string{"spam one", "spam two"}, cfg.Cleaning.Spam.Tokens)
				assert.Equal(t, "metrics/run.prom", cfg.Telemetry.MetricsFile)
			},
		},
		{
			name: "invalid log level",
			env: map[string]string{
				"SURVEY_LOGGING_LEVEL": "verbose",
			},
			wantErr:     true,
			errContains: "Level",
		},
		{
			name: "invalid repetition ratio",
			fileContent: `
cleaning:
  spam:
    max_repetition_ratio: 1.5
`,
			wantErr:     true,
			errContains: "MaxRepetitionRatio",
		},
		{
			name: "non alphabetic id prefix",
			env: map[string]string{
				"SURVEY_CLEANING_ID_PREFIX": "S-1",
			},
			wantErr:     true,
			errContains: "IDPrefix",
		},
		{
			name:        "malformed yaml",
			fileContent: "logging: [unclosed",
			wantErr:     true,
			errContains: "failed to load config from file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			configFile := ""
			if tt.fileContent != "" {
				configFile = filepath.Join(t.TempDir(), "surveyclean.yaml")
				require.NoError(t, os.WriteFile(configFile, []byte(tt.fileContent), 0644))
			}

			cfg, err := Load(configFile)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestConfig_LogFileDefaultedForFileOutput(t *testing.T) {
	cfg := Default()
	cfg.Logging.Output = "file"
	cfg.Logging.FilePath = ""

	require.NoError(t, cfg.validate())
	assert.Equal(t, DefaultLogFile, cfg.Logging.FilePath)
}

func TestGetPaths(t *testing.T) {
	base := t.TempDir()
	cfg := Default()
	cfg.Paths.BaseDir = base
	cfg.Paths.Report = "/abs/report.json"
	cfg.Paths.Quarantine = ""
	cfg.Telemetry.MetricsFile = "metrics/run.prom"

	paths, err := cfg.GetPaths()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, DefaultInputFile), paths.InputFile)
	assert.Equal(t, filepath.Join(base, DefaultCleanedCSV), paths.CleanedCSV)
	assert.Equal(t, "/abs/report.json", paths.ReportJSON)
	assert.Empty(t, paths.Quarantine)
	assert.Equal(t, filepath.Join(base, "metrics/run.prom"), paths.MetricsFile)

	dirs := paths.OutputDirs()
	assert.Contains(t, dirs, filepath.Join(base, "data/cleaned"))
	assert.Contains(t, dirs, "/abs")
	assert.Contains(t, dirs, filepath.Join(base, "metrics"))
	assert.Len(t, dirs, 3)
}

func TestLoad_ExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "surveyclean.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Cleaning.Workers)
	assert.Equal(t, DefaultCleanedExcel, cfg.Paths.OutputExcel)
	assert.Len(t, cfg.Cleaning.Spam.Tokens, 5)
}
