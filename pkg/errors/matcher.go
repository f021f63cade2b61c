package errors

import "strings"

// PatternMatcher matches error messages to categories using string patterns.
type PatternMatcher interface {
	Match(errorMsg string) ErrorCategory
}

// NewPatternMatcher creates a new PatternMatcher with predefined patterns.
// Categories are checked in order; the underlying OS reason (permission,
// disk space, missing path) wins over the operation that surfaced it.
func NewPatternMatcher() PatternMatcher {
	return &patternMatcher{
		patterns: []categoryPatterns{
			{CategoryPermission, []string{
				"permission denied",
				"access denied",
				"operation not permitted",
			}},
			{CategoryDiskSpace, []string{
				"no space left on device",
				"disk full",
				"quota exceeded",
			}},
			{CategoryPath, []string{
				"no such file or directory",
				"file not found",
				"path does not exist",
			}},
			{CategoryConnection, []string{
				"connection refused",
				"connection reset",
				"broken pipe",
				"failed to connect",
				"handshake failed",
			}},
			{CategoryArchive, []string{
				"failed to finish archive",
				"failed to compress",
				"failed to add",
			}},
			{CategoryMove, []string{
				"failed to rename",
				"failed to move",
				"cross-device link",
				"directory not empty",
			}},
		},
	}
}

type categoryPatterns struct {
	category ErrorCategory
	patterns []string
}

// patternMatcher is the concrete implementation of PatternMatcher.
type patternMatcher struct {
	patterns []categoryPatterns
}

// Match returns the error category based on pattern matching.
func (m *patternMatcher) Match(errorMsg string) ErrorCategory {
	lowerMsg := strings.ToLower(errorMsg)

	for _, entry := range m.patterns {
		for _, pattern := range entry.patterns {
			if strings.Contains(lowerMsg, pattern) {
				return entry.category
			}
		}
	}

	return CategoryUnknown
}
