// Package datadir provides constants and utilities for the tasklist state directory.
package datadir

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// Dir is the name of the tasklist state directory under the home directory.
	Dir = ".tasklist"

	// EnvDir overrides the state directory location.
	EnvDir = "TASKLIST_DATA_DIR"

	// DBFile is the sqlite database file name (inside the state directory).
	DBFile = "tasklist.db"

	// ConfigFile is the config file name (inside the state directory).
	ConfigFile = "tasklist.toml"

	// LockFile serializes writers of the file backend.
	LockFile = ".lock"

	// LogsDir holds per-run log files.
	LogsDir = "logs"
)

// Default returns the state directory: $TASKLIST_DATA_DIR (expanded) if set,
// otherwise ~/.tasklist. Falls back to a relative .tasklist when the home
// directory cannot be determined.
func Default() string {
	if dir := os.Getenv(EnvDir); dir != "" {
		return Expand(dir)
	}
	return Home()
}

// Expand substitutes $VAR references and a leading ~ in a data dir path.
func Expand(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

// Home returns ~/.tasklist, ignoring $TASKLIST_DATA_DIR.
func Home() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return Dir
	}
	return filepath.Join(home, Dir)
}

// DBPath returns the full path to the sqlite database within a state directory.
func DBPath(dir string) string {
	return filepath.Join(dir, DBFile)
}

// ConfigPath returns the full path to the config file within a state directory.
func ConfigPath(dir string) string {
	return filepath.Join(dir, ConfigFile)
}

// LockPath returns the full path to the writer lock file.
func LockPath(dir string) string {
	return filepath.Join(dir, LockFile)
}

// LogsPath returns the directory holding run logs.
func LogsPath(dir string) string {
	return filepath.Join(dir, LogsDir)
}

// KeyPath returns the file that stores the value of a key, e.g. "@tasks"
// maps to <dir>/tasks.json.
func KeyPath(dir, key string) string {
	return filepath.Join(dir, SanitizeKey(key)+".json")
}

// SanitizeKey maps a storage key to a safe file name stem.
func SanitizeKey(input string) string {
	if strings.TrimSpace(input) == "" {
		return "value"
	}

	var b strings.Builder
	for i := 0; i < len(input); i++ {
		c := input[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '_' || c == '-'
		if !valid {
			b.WriteByte('_')
			continue
		}
		b.WriteByte(c)
	}

	key := strings.Trim(b.String(), "_")
	if key == "" {
		return "value"
	}
	return key
}
