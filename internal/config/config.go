package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces all environment variables, e.g. SURVEY_LOGGING_LEVEL
const EnvPrefix = "SURVEY"

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Cleaning  CleaningConfig  `yaml:"cleaning" envconfig:"CLEANING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// PathsConfig contains input and output locations. Relative paths are
// resolved against BaseDir.
type PathsConfig struct {
	BaseDir     string `yaml:"base_dir" envconfig:"BASE_DIR"`
	Input       string `yaml:"input" envconfig:"INPUT" validate:"required"`
	Sheet       string `yaml:"sheet" envconfig:"SHEET"`
	OutputCSV   string `yaml:"output_csv" envconfig:"OUTPUT_CSV" validate:"required"`
	OutputExcel string `yaml:"output_excel" envconfig:"OUTPUT_EXCEL"`
	Report      string `yaml:"report" envconfig:"REPORT"`
	Quarantine  string `yaml:"quarantine" envconfig:"QUARANTINE"`
	LogsDir     string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// CleaningConfig tunes the cleaning rules
type CleaningConfig struct {
	TimestampLayout         string     `yaml:"timestamp_layout" envconfig:"TIMESTAMP_LAYOUT" validate:"required"`
	IDPrefix                string     `yaml:"id_prefix" envconfig:"ID_PREFIX" validate:"required,alpha"`
	IDDigits                int        `yaml:"id_digits" envconfig:"ID_DIGITS" validate:"min=1,max=18"`
	MaxEditDistance         int        `yaml:"max_edit_distance" envconfig:"MAX_EDIT_DISTANCE" validate:"min=0,max=5"`
	ImputePrecision         int        `yaml:"impute_precision" envconfig:"IMPUTE_PRECISION" validate:"min=0,max=6"`
	FillCategoricalDefaults bool       `yaml:"fill_categorical_defaults" envconfig:"FILL_CATEGORICAL_DEFAULTS"`
	Workers                 int        `yaml:"workers" envconfig:"WORKERS" validate:"min=1,max=64"`
	Spam                    SpamConfig `yaml:"spam" envconfig:"SPAM"`
}

// SpamConfig contains the comment spam heuristics
type SpamConfig struct {
	MaxRepetitionRatio     float64  `yaml:"max_repetition_ratio" envconfig:"MAX_REPETITION_RATIO" validate:"gt=0,lte=1"`
	MinAlphaRatio          float64  `yaml:"min_alpha_ratio" envconfig:"MIN_ALPHA_RATIO" validate:"gte=0,lte=1"`
	MinRepetitionLength    int      `yaml:"min_repetition_length" envconfig:"MIN_REPETITION_LENGTH" validate:"min=1"`
	MinTokensForRepetition int      `yaml:"min_tokens_for_repetition" envconfig:"MIN_TOKENS_FOR_REPETITION" validate:"min=2"`
	Tokens                 []string `yaml:"tokens" envconfig:"TOKENS"`
}

// TelemetryConfig controls tracing and the metrics textfile
type TelemetryConfig struct {
	Tracing     bool   `yaml:"tracing" envconfig:"TRACING"`
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, in increasing order of precedence. An empty
// configFile triggers a lookup in the usual locations.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Fields carry no default tags, so unset variables leave file and
	// default values in place.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays a YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate normalizes and validates the configuration
func (c *Config) validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Output = strings.ToLower(c.Logging.Output)

	// Always JSON
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}

	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	v := validator.New()
	if err := v.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(fields, "; "))
		}
		return err
	}

	return nil
}

// getConfigFilePath returns the first config file found in the usual
// locations, or "" when there is none
func getConfigFilePath() string {
	locations := []string{
		"surveyclean.yaml",
		"configs/surveyclean.yaml",
		"../configs/surveyclean.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "both",
			FilePath: DefaultLogFile,
		},
		Paths: PathsConfig{
			Input:       DefaultInputFile,
			OutputCSV:   DefaultCleanedCSV,
			OutputExcel: DefaultCleanedExcel,
			Report:      DefaultReportFile,
			Quarantine:  DefaultQuarantineFile,
			LogsDir:     DefaultLogsDir,
		},
		Cleaning: CleaningConfig{
			TimestampLayout: DefaultTimestampLayout,
			IDPrefix:        DefaultIDPrefix,
			IDDigits:        DefaultIDDigits,
			MaxEditDistance: DefaultMaxEditDistance,
			ImputePrecision: DefaultImputePrecision,
			Workers:         1,
			Spam: SpamConfig{
				MaxRepetitionRatio:     DefaultMaxRepetitionRatio,
				MinAlphaRatio:          DefaultMinAlphaRatio,
				MinRepetitionLength:    DefaultMinRepetitionLength,
				MinTokensForRepetition: DefaultMinTokensForRepetition,
				Tokens:                 append([]string(nil), DefaultSpamTokens...),
			},
		},
	}
}
