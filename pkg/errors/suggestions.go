package errors

import "fmt"

// SuggestionGenerator generates actionable suggestions based on error category.
type SuggestionGenerator interface {
	Generate(category ErrorCategory, affectedPath string) []string
}

// NewSuggestionGenerator creates a new SuggestionGenerator.
func NewSuggestionGenerator() SuggestionGenerator {
	return &suggestionGenerator{}
}

// suggestionGenerator is the concrete implementation of SuggestionGenerator.
type suggestionGenerator struct{}

// Generate returns actionable suggestions based on the error category and affected path.
func (g *suggestionGenerator) Generate(category ErrorCategory, affectedPath string) []string {
	switch category {
	case CategoryPermission:
		return g.generatePermissionSuggestions(affectedPath)
	case CategoryDiskSpace:
		return g.generateDiskSpaceSuggestions(affectedPath)
	case CategoryPath:
		return g.generatePathSuggestions(affectedPath)
	case CategoryConnection:
		return g.generateConnectionSuggestions()
	case CategoryArchive:
		return g.generateArchiveSuggestions()
	case CategoryMove:
		return g.generateMoveSuggestions(affectedPath)
	default:
		return g.generateUnknownSuggestions()
	}
}

func (g *suggestionGenerator) generatePermissionSuggestions(path string) []string {
	suggestions := []string{
		"Check that you own the folders being merged",
	}

	if path != "" {
		suggestions = append(suggestions, fmt.Sprintf("Inspect permissions with 'ls -la %s'", path))
	}

	suggestions = append(suggestions,
		"A dry run (the default) needs only read access; a live run needs write access to the whole tree",
	)

	return suggestions
}

func (g *suggestionGenerator) generateDiskSpaceSuggestions(path string) []string {
	suggestions := []string{
		"Free up space on the device; cross-volume moves and backups both need room",
		"Check available space with 'df -h'",
	}

	if path != "" {
		suggestions = append(suggestions, "Verify disk usage for the filesystem containing "+path)
	}

	suggestions = append(suggestions, "Skip the backup (--backup off) if the tree is large")

	return suggestions
}

func (g *suggestionGenerator) generatePathSuggestions(path string) []string {
	suggestions := []string{
		"Verify the root path exists and is spelled correctly",
	}

	if path != "" {
		suggestions = append(suggestions, fmt.Sprintf("Check that %s still exists", path))
	}

	suggestions = append(suggestions,
		"If something else is changing the tree, re-run; vanished folders are skipped, not fatal",
	)

	return suggestions
}

func (g *suggestionGenerator) generateConnectionSuggestions() []string {
	return []string{
		"Check the SFTP URL: sftp://user@host[:port]/path",
		"Verify the host is reachable and sshd is running",
		"Make sure your SSH agent or ~/.ssh keys can log in to the host",
		"Try the operation again - the connection may have dropped mid-run",
	}
}

func (g *suggestionGenerator) generateArchiveSuggestions() []string {
	return []string{
		"Check there is enough space next to the root for the backup zip",
		"Verify nothing is deleting files out from under the archive walk",
		"The merge can run without a backup; drop --backup to proceed",
	}
}

func (g *suggestionGenerator) generateMoveSuggestions(path string) []string {
	suggestions := []string{
		"Check that no other program holds the files open",
	}

	if path != "" {
		suggestions = append(suggestions, fmt.Sprintf("List what was left behind with 'ls -la %s'", path))
	}

	suggestions = append(suggestions,
		"Already-applied moves are kept; fix the cause and re-run to finish the rest",
	)

	return suggestions
}

func (g *suggestionGenerator) generateUnknownSuggestions() []string {
	return []string{
		"Try the operation again",
		"Re-run as a dry run first to see what would happen",
		"Check the log output for the last action before the failure",
	}
}
