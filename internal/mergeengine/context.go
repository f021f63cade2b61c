package mergeengine

import (
	"fmt"
	"io"
	"os"

	"github.com/ade/merge-folders/internal/config"
	"github.com/ade/merge-folders/pkg/fsys"
)

const dirPerm os.FileMode = 0o755

// OpContext mediates every side effect of one run. It owns the run's Stats,
// the conflict policy, and the notifier, and it is the only thing that
// touches the filesystem during execution. For a dry run the caller hands it
// a simulated filesystem, so the same code paths produce the same log and
// counter output without changing anything on disk.
type OpContext struct {
	fs       fsys.Filesystem
	conflict config.ConflictMode
	dryRun   bool
	notifier Notifier
	stats    Stats
}

// NewOpContext creates the context for a single run. notifier may be nil.
func NewOpContext(fs fsys.Filesystem, conflict config.ConflictMode, dryRun bool, notifier Notifier) *OpContext {
	if notifier == nil {
		notifier = NopNotifier{}
	}

	return &OpContext{
		fs:       fs,
		conflict: conflict,
		dryRun:   dryRun,
		notifier: notifier,
	}
}

// Stats returns a snapshot of the run's counters.
func (c *OpContext) Stats() Stats {
	return c.stats
}

// Log sends one line to the notifier, marked when simulating.
func (c *OpContext) Log(message string) {
	if c.dryRun {
		message = "[dry] " + message
	}

	c.notifier.Log(message)
}

// SetProgress reports overall completion to the notifier.
func (c *OpContext) SetProgress(value float64) {
	c.notifier.SetProgress(value)
}

// SetStatus reports the current phase to the notifier.
func (c *OpContext) SetStatus(text string) {
	c.notifier.SetStatus(text)
}

// GenerateUniquePath returns a path inside dir that does not exist yet,
// formed by appending an incrementing " (n)" counter to name ahead of its
// extension. The count starts at 1 and the result is deterministic for a
// given tree state.
func (c *OpContext) GenerateUniquePath(dir, name string) string {
	stem, ext := splitExt(name)

	for n := 1; ; n++ {
		candidate := c.fs.Join(dir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
		if !fsys.Exists(c.fs, candidate) {
			return candidate
		}
	}
}

// ResolveConflict decides where an incoming item heading for dstPath should
// land. When nothing is in the way the path comes back unchanged. Otherwise
// the configured mode applies: Skip returns ok=false and the item stays
// where it is; Overwrite removes the existing target and reuses the path;
// Rename picks a fresh numbered name inside dstDir.
func (c *OpContext) ResolveConflict(dstDir, dstPath string) (string, bool) {
	if !fsys.Exists(c.fs, dstPath) {
		return dstPath, true
	}

	switch c.conflict {
	case config.Skip:
		c.Log("conflict, skipping: " + dstPath)
		c.stats.ItemsSkipped++
		c.stats.NameConflicts++

		return "", false
	case config.Overwrite:
		c.Log("conflict, overwriting: " + dstPath)
		c.stats.NameConflicts++

		if err := c.fs.Remove(dstPath); err != nil {
			c.Log("could not remove existing target: " + err.Error())
		}

		return dstPath, true
	default: // config.Rename
		unique := c.GenerateUniquePath(dstDir, c.fs.Base(dstPath))
		c.Log(fmt.Sprintf("conflict, renaming: %s -> %s", dstPath, unique))
		c.stats.NameConflicts++

		return unique, true
	}
}

// MkdirAll creates path and any missing ancestors.
func (c *OpContext) MkdirAll(path string) error {
	c.Log("creating directory: " + path)

	if err := c.fs.MkdirAll(path, dirPerm); err != nil {
		return err
	}

	return nil
}

// Move relocates src to dst, creating missing ancestors of dst first.
// File moves are counted here; directory moves are counted by the caller,
// which knows whether the move was a merge or a rename.
func (c *OpContext) Move(src, dst string, isDir bool) error {
	c.Log(fmt.Sprintf("moving: %s -> %s", src, dst))

	if err := c.relocate(src, dst, isDir); err != nil {
		return err
	}

	if !isDir {
		c.stats.FilesMoved++
	}

	return nil
}

// RenameDir renames a directory in place, creating missing ancestors of dst.
func (c *OpContext) RenameDir(src, dst string) error {
	c.Log(fmt.Sprintf("renaming folder: %s -> %s", src, dst))

	if err := c.relocate(src, dst, true); err != nil {
		return err
	}

	c.stats.FoldersRenamed++

	return nil
}

// RemoveDir removes an empty directory. A directory that is not empty, or
// cannot be removed for any other reason, is left in place and reported as
// false. That is an expected outcome, not a failure.
func (c *OpContext) RemoveDir(path string) bool {
	if c.dryRun {
		c.Log("removing directory: " + path)
		c.stats.DirsDeleted++

		return true
	}

	entries, err := c.fs.ReadDir(path)
	if err != nil || len(entries) > 0 {
		return false
	}

	if err := c.fs.Remove(path); err != nil {
		return false
	}

	c.Log("removing directory: " + path)
	c.stats.DirsDeleted++

	return true
}

// relocate renames src to dst, falling back to copy+delete when the rename
// fails (cross-volume moves).
func (c *OpContext) relocate(src, dst string, isDir bool) error {
	if err := c.fs.MkdirAll(c.fs.Dir(dst), dirPerm); err != nil {
		return err
	}

	if err := c.fs.Rename(src, dst); err == nil {
		return nil
	}

	if isDir {
		return c.copyTreeAndDelete(src, dst)
	}

	return c.copyFileAndDelete(src, dst)
}

func (c *OpContext) copyFileAndDelete(src, dst string) error {
	in, err := c.fs.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := c.fs.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to finish writing %s: %w", dst, err)
	}

	return c.fs.Remove(src)
}

func (c *OpContext) copyTreeAndDelete(src, dst string) error {
	if err := c.fs.MkdirAll(dst, dirPerm); err != nil {
		return err
	}

	entries, err := c.fs.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := c.fs.Join(src, entry.Name())
		dstPath := c.fs.Join(dst, entry.Name())

		if entry.IsDir() {
			err = c.copyTreeAndDelete(srcPath, dstPath)
		} else {
			err = c.copyFileAndDelete(srcPath, dstPath)
		}

		if err != nil {
			return err
		}
	}

	return c.fs.Remove(src)
}

// splitExt splits a file name into stem and extension. A name whose only
// dot is the leading one (like ".config") has no extension for our
// purposes; the counter goes after the whole name.
func splitExt(name string) (string, string) {
	for i := len(name) - 1; i > 0; i-- {
		if name[i] == '.' {
			return name[:i], name[i:]
		}
	}

	return name, ""
}
