package config

import (
	"flag"
)

// flagFields maps flag names to the config fields they set.
var flagFields = map[string]string{
	"backend":         "backend",
	"data-dir":        "data_dir",
	"validate-schema": "validate_schema",
	"theme":           "theme",
	"title":           "title",
	"log-level":       "log_level",
	"log-format":      "log_format",
	"log-timestamps":  "log_timestamps",
	"log-caller":      "log_caller",
}

// parseFlagsWithSources binds config flags on fs, parses args, and marks
// every flag that was set explicitly.
func parseFlagsWithSources(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("tasklist", flag.ContinueOnError)
	}
	BindFlags(fs, cfg)

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagFields[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}

// BindFlags defines the config flags on fs, writing into cfg.
func BindFlags(fs *flag.FlagSet, cfg *Config) {
	// Storage
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "Storage backend (file|sqlite|memory)")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Data directory")
	fs.BoolVar(&cfg.ValidateSchema, "validate-schema", cfg.ValidateSchema, "Validate stored tasks against the JSON Schema")

	// Screen
	fs.StringVar(&cfg.Theme, "theme", cfg.Theme, "Theme (dark|light|system)")
	fs.StringVar(&cfg.Title, "title", cfg.Title, "Title shown above the list")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log output")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller file:line in log output")
}
