package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/nibzard/tasklist/internal/datadir"
)

// Environment variables read by loadFromEnv.
const (
	EnvBackend        = "TASKLIST_BACKEND"
	EnvDataDir        = datadir.EnvDir
	EnvValidateSchema = "TASKLIST_VALIDATE_SCHEMA"
	EnvTheme          = "TASKLIST_THEME"
	EnvTitle          = "TASKLIST_TITLE"
	EnvLogLevel       = "TASKLIST_LOG_LEVEL"
	EnvLogFormat      = "TASKLIST_LOG_FORMAT"
	EnvLogTimestamps  = "TASKLIST_LOG_TIMESTAMPS"
	EnvLogCaller      = "TASKLIST_LOG_CALLER"
)

// loadFromEnvWithSources loads environment variables and updates source
// tracking when sources is non-nil.
func loadFromEnvWithSources(cfg *Config, sources map[string]ConfigSource) error {
	mark := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}
	setString := func(env, field string, target *string) {
		if v := os.Getenv(env); v != "" {
			*target = v
			mark(field)
		}
	}
	setBool := func(env, field string, target *bool) error {
		v := os.Getenv(env)
		if v == "" {
			return nil
		}
		b, err := boolFromString(v)
		if err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
		*target = b
		mark(field)
		return nil
	}

	setString(EnvBackend, "backend", &cfg.Backend)
	setString(EnvDataDir, "data_dir", &cfg.DataDir)
	setString(EnvTheme, "theme", &cfg.Theme)
	setString(EnvTitle, "title", &cfg.Title)
	setString(EnvLogLevel, "log_level", &cfg.LogLevel)
	setString(EnvLogFormat, "log_format", &cfg.LogFormat)

	if err := setBool(EnvValidateSchema, "validate_schema", &cfg.ValidateSchema); err != nil {
		return err
	}
	if err := setBool(EnvLogTimestamps, "log_timestamps", &cfg.LogTimestamps); err != nil {
		return err
	}
	return setBool(EnvLogCaller, "log_caller", &cfg.LogCaller)
}

// boolFromString parses the boolean spellings accepted in the environment.
func boolFromString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", s)
	}
}
