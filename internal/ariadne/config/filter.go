package config

import "github.com/bmatcuk/doublestar/v4"

// ShouldIndex reports whether a project-root-relative path should be
// parsed, given this config's include/exclude patterns — exclusion wins,
// an empty include list means "everything", matching the teacher's
// FileScanner.shouldExcludeFast/shouldIncludeFast pair
// (internal/indexing/pipeline_types.go).
func (c *Config) ShouldIndex(relPath string) bool {
	for _, pattern := range c.Exclude {
		if matched, err := doublestar.Match(pattern, relPath); err == nil && matched {
			return false
		}
	}
	if len(c.Include) == 0 {
		return true
	}
	for _, pattern := range c.Include {
		if matched, err := doublestar.Match(pattern, relPath); err == nil && matched {
			return true
		}
	}
	return false
}
