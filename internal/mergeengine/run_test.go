//nolint:varnamelen // Test files use idiomatic short variable names (t, tt, etc.)
package mergeengine_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ade/merge-folders/internal/config"
	"github.com/ade/merge-folders/internal/mergeengine"
	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers
)

func newRunner(t *testing.T, cfg *config.Config, notifier mergeengine.Notifier) *mergeengine.Runner {
	t.Helper()
	g := NewWithT(t)

	runner, err := mergeengine.NewRunner(cfg, notifier)
	g.Expect(err).NotTo(HaveOccurred())
	t.Cleanup(runner.Close)

	return runner
}

func TestRunLiveMergesAndReportsSummary(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Project_old", "notes.txt"), "old notes")
	mkdirAll(t, filepath.Join(root, "Project"))

	notifier := &recordingNotifier{}
	cfg := &config.Config{Root: root, Suffix: "_old", Live: true, Conflict: config.Rename}

	result, err := newRunner(t, cfg, notifier).Run()

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result.Stats.FoldersPlanned).To(Equal(1))
	g.Expect(result.Stats.FoldersMerged).To(Equal(1))
	g.Expect(result.Stats.FilesMoved).To(Equal(1))
	g.Expect(result.Stats.DirsDeleted).To(Equal(1))
	g.Expect(result.BackupPath).To(BeEmpty())

	g.Expect(filepath.Join(root, "Project", "notes.txt")).To(BeARegularFile())
	g.Expect(filepath.Join(root, "Project_old")).NotTo(BeADirectory())

	g.Expect(notifier.statuses).To(Equal([]string{"planning", "merging", "complete"}))
	g.Expect(notifier.logContaining("planned 1 folder merge(s)")).To(BeTrue())
	g.Expect(notifier.logContaining("Files moved:      1")).To(BeTrue())
}

func TestRunDryRunLeavesTreeUnchanged(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Project_old", "notes.txt"), "old notes")
	mkdirAll(t, filepath.Join(root, "Project"))

	notifier := &recordingNotifier{}
	cfg := &config.Config{Root: root, Suffix: "_old", Live: false, Conflict: config.Rename}

	result, err := newRunner(t, cfg, notifier).Run()

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result.Stats.FoldersMerged).To(Equal(1))
	g.Expect(result.Stats.FilesMoved).To(Equal(1))

	g.Expect(filepath.Join(root, "Project_old", "notes.txt")).To(BeARegularFile())
	g.Expect(filepath.Join(root, "Project")).To(BeADirectory())
	g.Expect(notifier.logContaining("[dry] moving")).To(BeTrue())
}

func TestRunWithBackupArchivesRootFirst(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	parent := t.TempDir()
	root := filepath.Join(parent, "work")
	writeFile(t, filepath.Join(root, "Project_old", "notes.txt"), "old notes")
	mkdirAll(t, filepath.Join(root, "Project"))

	notifier := &recordingNotifier{}
	cfg := &config.Config{Root: root, Suffix: "_old", Live: true, Backup: true, Conflict: config.Rename}

	result, err := newRunner(t, cfg, notifier).Run()

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result.BackupPath).NotTo(BeEmpty())
	g.Expect(result.BackupPath).To(BeARegularFile())
	g.Expect(result.Stats.BackupsCreated).To(Equal(1))
	g.Expect(notifier.statuses).To(Equal([]string{"planning", "backing up", "merging", "complete"}))
}

func TestRunNothingToDoCompletesImmediately(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := t.TempDir()
	mkdirAll(t, filepath.Join(root, "Project"))

	notifier := &recordingNotifier{}
	cfg := &config.Config{Root: root, Suffix: "_old", Live: true, Conflict: config.Rename}

	result, err := newRunner(t, cfg, notifier).Run()

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result.Stats).To(Equal(mergeengine.Stats{}))
	g.Expect(notifier.logContaining("nothing to do")).To(BeTrue())
	g.Expect(notifier.progress).To(Equal([]float64{1.0}))
	g.Expect(notifier.statuses).To(Equal([]string{"planning", "complete"}))
}

func TestRunCancelledBeforeStartTouchesNothing(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Project_old", "notes.txt"), "old notes")
	mkdirAll(t, filepath.Join(root, "Project"))

	cfg := &config.Config{Root: root, Suffix: "_old", Live: true, Conflict: config.Rename}
	runner := newRunner(t, cfg, nil)
	runner.Cancel()
	runner.Cancel() // safe to call again

	result, err := runner.Run()

	g.Expect(err).To(MatchError(mergeengine.ErrMergeCancelled))
	g.Expect(result.Stats.FoldersPlanned).To(Equal(1))
	g.Expect(result.Stats.FilesMoved).To(BeZero())
	g.Expect(filepath.Join(root, "Project_old", "notes.txt")).To(BeARegularFile())
}

func TestNewRunnerRejectsEmptySuffix(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Project_old", "notes.txt"), "old notes")

	cfg := &config.Config{Root: root, Live: true, Conflict: config.Rename}

	// An empty suffix must fail construction, not run as a silent no-op.
	runner, err := mergeengine.NewRunner(cfg, nil)

	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("suffix"))
	g.Expect(runner).To(BeNil())
}

func TestRunReturnsErrorForVanishedRoot(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := filepath.Join(t.TempDir(), "gone")
	cfg := &config.Config{Root: root, Suffix: "_old", Live: true, Conflict: config.Rename}

	runner := newRunner(t, cfg, nil)
	g.Expect(os.RemoveAll(root)).To(Succeed())

	_, err := runner.Run()
	g.Expect(err).To(HaveOccurred())
}
