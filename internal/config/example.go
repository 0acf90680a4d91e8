package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasklist configuration file
# Values can be overridden by TASKLIST_* environment variables or CLI flags

# Storage backend: file, sqlite or memory
backend = "file"

# Data directory (supports ~ expansion and %VAR% on Windows)
data_dir = "~/.tasklist"

# Check stored tasks against the JSON Schema when loading
validate_schema = true

# Theme: dark, light or system
theme = "system"

# Title shown above the list
title = "My Tasks"

# Logging
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
