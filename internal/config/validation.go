package config

import (
	"fmt"
)

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	// Tools validation
	if c.Tools.MaxFileSize < 1 {
		errs = append(errs, "tools.max_file_size must be >= 1")
	}
	if c.Tools.DefaultSearchLimit < 1 {
		errs = append(errs, "tools.default_search_limit must be >= 1")
	}
	if c.Tools.MaxSearchLimit < 1 {
		errs = append(errs, "tools.max_search_limit must be >= 1")
	}
	if c.Tools.DefaultGitLogLimit < 1 {
		errs = append(errs, "tools.default_git_log_limit must be >= 1")
	}
	if c.Tools.MaxGitLogLimit < 1 {
		errs = append(errs, "tools.max_git_log_limit must be >= 1")
	}
	if c.Tools.MaxTodoResults < 1 {
		errs = append(errs, "tools.max_todo_results must be >= 1")
	}

	// Semantic validation: Default <= Max constraints
	if c.Tools.DefaultSearchLimit > c.Tools.MaxSearchLimit {
		errs = append(errs, "tools.default_search_limit must be <= tools.max_search_limit")
	}
	if c.Tools.DefaultGitLogLimit > c.Tools.MaxGitLogLimit {
		errs = append(errs, "tools.default_git_log_limit must be <= tools.max_git_log_limit")
	}

	// Index validation
	if c.Index.MaxFileSize < 1 {
		errs = append(errs, "index.max_file_size must be >= 1")
	}
	if c.Index.ProgressInterval < 1 {
		errs = append(errs, "index.progress_interval must be >= 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
