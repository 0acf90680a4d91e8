package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/nibzard/tasklist/internal/datadir"
)

// findProjectConfigFile looks for a config file in the current directory.
func findProjectConfigFile() string {
	names := []string{datadir.ConfigFile, "." + datadir.ConfigFile}
	for _, name := range names {
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file.
// Checks the data dir (~/.tasklist/tasklist.toml unless TASKLIST_DATA_DIR
// is set) first, then falls back to OS-specific config directories.
func findUserConfigFile() string {
	userConfigPath := datadir.ConfigPath(datadir.Default())
	if info, err := os.Stat(userConfigPath); err == nil && !info.IsDir() {
		return userConfigPath
	}

	if cfgDir := osUserConfigDir(); cfgDir != "" {
		userConfigPath := filepath.Join(cfgDir, "tasklist", datadir.ConfigFile)
		if info, err := os.Stat(userConfigPath); err == nil && !info.IsDir() {
			return userConfigPath
		}
	}

	return ""
}

// osUserConfigDir returns the OS-specific user config directory.
// Returns empty string if the directory cannot be determined.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return appdata
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.Backend = DefaultBackend
	cfg.DataDir = datadir.Home()
	cfg.ValidateSchema = DefaultValidateSchema
	cfg.Theme = DefaultTheme
	cfg.Title = DefaultTitle
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
}

// GetConfigFile returns the highest-priority config file that was read.
func (cws *ConfigWithSources) GetConfigFile() string {
	if len(cws.Files) == 0 {
		return ""
	}
	return cws.Files[len(cws.Files)-1]
}

// Value returns the effective value of a field for display.
func (c *Config) Value(field string) string {
	switch field {
	case "backend":
		return c.Backend
	case "data_dir":
		return c.DataDir
	case "validate_schema":
		return formatBool(c.ValidateSchema)
	case "theme":
		return c.Theme
	case "title":
		return c.Title
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return formatBool(c.LogTimestamps)
	case "log_caller":
		return formatBool(c.LogCaller)
	default:
		return ""
	}
}

// LogsDir returns the directory for per-run log files.
func (c *Config) LogsDir() string {
	return datadir.LogsPath(c.DataDir)
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
