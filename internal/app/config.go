package app

import "fmt"

// DefaultParamsFile is read when -P is not given.
const DefaultParamsFile = "comet.params"

// Overrides are command-line values applied on top of the parameter file.
// Nil fields were not given.
type Overrides struct {
	Database    string
	FirstScan   *int
	LastScan    *int
	BatchSize   *int
	CreateIndex bool
}

// Config holds all the necessary configuration for one run.
type Config struct {
	ParamsFile  string
	PrintParams bool
	BaseName    string
	Inputs      []string
	Overrides   Overrides

	// WorkDir receives the template written by PrintParams.
	WorkDir string

	LogFormat string
	LogLevel  string

	// Warnings collected while parsing the command line, logged once the
	// logger exists.
	Warnings []string
}

// NewConfig fills defaults and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ParamsFile == "" {
		cfg.ParamsFile = DefaultParamsFile
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	return &cfg, nil
}
