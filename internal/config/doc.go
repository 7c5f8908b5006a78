// Package config provides centralized configuration management for surveyclean.
// It handles loading configuration from multiple sources, validation, and path
// resolution for the input export and every generated output.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern SURVEY_<SECTION>_<FIELD>:
//
//	SURVEY_LOGGING_LEVEL=debug
//	SURVEY_PATHS_INPUT=data/raw/forms_responses_12955.csv
//	SURVEY_CLEANING_MAX_EDIT_DISTANCE=1
//	SURVEY_CLEANING_SPAM_TOKENS="this is spam,click here"
//	SURVEY_TELEMETRY_METRICS_FILE=metrics/surveyclean.prom
//
// # Validation
//
// The merged configuration is validated with go-playground/validator struct
// tags; Load returns an error listing every failing field.
package config
