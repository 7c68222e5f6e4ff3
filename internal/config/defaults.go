package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Tools ToolsConfig `json:"tools"`
	Index IndexConfig `json:"index"`
}

type ToolsConfig struct {
	// File Operations
	MaxFileSize int64 `json:"max_file_size"` // Default: 20 * 1024 * 1024 (20MB)

	// Find File
	DefaultSearchLimit int `json:"default_search_limit"` // Default: 100
	MaxSearchLimit     int `json:"max_search_limit"`     // Default: 1000

	// Git
	DefaultGitLogLimit int `json:"default_git_log_limit"` // Default: 20
	MaxGitLogLimit     int `json:"max_git_log_limit"`     // Default: 200

	// Todo Scan
	MaxTodoResults int `json:"max_todo_results"` // Default: 500
}

type IndexConfig struct {
	// Files larger than this are left out of the index.
	MaxFileSize int64 `json:"max_file_size"` // Default: 2 * 1024 * 1024 (2MB)

	// Emit a progress log entry every N files during a build.
	ProgressInterval int `json:"progress_interval"` // Default: 1000
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Tools: ToolsConfig{
			MaxFileSize:        20 * 1024 * 1024,
			DefaultSearchLimit: 100,
			MaxSearchLimit:     1000,
			DefaultGitLogLimit: 20,
			MaxGitLogLimit:     200,
			MaxTodoResults:     500,
		},
		Index: IndexConfig{
			MaxFileSize:      2 * 1024 * 1024,
			ProgressInterval: 1000,
		},
	}
}
