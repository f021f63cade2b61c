package mergeengine

import "fmt"

// Stats holds the counters describing one run's outcome. All counters only
// ever increase during a run. The OpContext that created a Stats owns it;
// callers get a copy via OpContext.Stats when the run is done.
type Stats struct {
	FoldersPlanned int
	FoldersMerged  int
	FoldersRenamed int
	FilesMoved     int
	ItemsSkipped   int
	NameConflicts  int
	DirsDeleted    int
	BackupsCreated int
}

// Summary returns human-readable lines describing the run outcome.
func (s Stats) Summary() []string {
	return []string{
		fmt.Sprintf("Folders planned:  %d", s.FoldersPlanned),
		fmt.Sprintf("Folders merged:   %d", s.FoldersMerged),
		fmt.Sprintf("Folders renamed:  %d", s.FoldersRenamed),
		fmt.Sprintf("Files moved:      %d", s.FilesMoved),
		fmt.Sprintf("Name conflicts:   %d", s.NameConflicts),
		fmt.Sprintf("Items skipped:    %d", s.ItemsSkipped),
		fmt.Sprintf("Dirs deleted:     %d", s.DirsDeleted),
		fmt.Sprintf("Backups created:  %d", s.BackupsCreated),
	}
}
