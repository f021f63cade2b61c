package errors

import (
	"errors"
	"regexp"
	"strings"
)

// Enricher enriches standard errors with actionable suggestions.
type Enricher interface {
	Enrich(err error, affectedPath string) error
}

// NewEnricher creates a new Enricher with default pattern matcher and suggestion generator.
func NewEnricher() Enricher {
	return &enricher{
		matcher:   NewPatternMatcher(),
		generator: NewSuggestionGenerator(),
	}
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Compiled regexes shared across all enricher instances
	pathExtractionPatterns = []*regexp.Regexp{
		// Unix paths, absolute and relative
		regexp.MustCompile(`\b\w+\s+([./][^\s:]+):`),
		// Windows paths with backslashes
		regexp.MustCompile(`\b\w+\s+([A-Za-z]:\\[^\s:]+):`),
		// Windows paths with forward slashes
		regexp.MustCompile(`\b\w+\s+([A-Za-z]:/[^\s:]+):`),
	}
)

// enricher is the concrete implementation of Enricher.
type enricher struct {
	matcher   PatternMatcher
	generator SuggestionGenerator
}

// Enrich takes a standard error and adds a category and actionable
// suggestions. An error that is already actionable is returned unchanged.
// If affectedPath is empty, a path is extracted from the message when the
// message follows the usual Go "op /path: reason" shape.
func (e *enricher) Enrich(err error, affectedPath string) error {
	var actionableErr ActionableError
	if errors.As(err, &actionableErr) {
		return actionableErr
	}

	errMsg := err.Error()

	if affectedPath == "" {
		affectedPath = extractPath(errMsg)
	}

	category := e.matcher.Match(errMsg)
	suggestions := e.generator.Generate(category, affectedPath)

	return NewActionableError(
		errMsg,
		category,
		suggestions,
		affectedPath,
	)
}

// extractPath pulls a file path out of common Go error message formats like
// "rename /a/b /a/c: permission denied" or "stat /x: no such file or
// directory". Returns empty string if no path is found.
func extractPath(errorMsg string) string {
	for _, pattern := range pathExtractionPatterns {
		if matches := pattern.FindStringSubmatch(errorMsg); len(matches) > 1 {
			path := strings.TrimSpace(matches[1])
			if path != "" {
				return path
			}
		}
	}

	return ""
}
