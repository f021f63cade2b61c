package mergeengine

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"
	"time"

	krfs "github.com/kr/fs"

	"github.com/ade/merge-folders/pkg/fsys"
)

const backupTimestampLayout = "20060102_150405"

// BackupManager archives the root tree to a zip before the merge touches
// it. Backups are advisory: a failure here is logged and the merge goes
// ahead anyway.
type BackupManager struct {
	fs fsys.Filesystem
}

// NewBackupManager creates a backup manager writing through the given
// filesystem. Pass the real filesystem, not the simulator; dry runs are
// handled by the context's flag and never write anything.
func NewBackupManager(fs fsys.Filesystem) *BackupManager {
	return &BackupManager{fs: fs}
}

// CreateArchive compresses the whole tree under root into a zip named
// "{base}_backup_{timestamp}.zip" in root's parent directory. It returns
// the archive path, or "" when nothing was (or would be) written. In a dry
// run the would-be path is returned without creating anything. Failures are
// logged and swallowed; the caller proceeds either way.
func (b *BackupManager) CreateArchive(root string, ctx *OpContext) string {
	if !fsys.IsDir(b.fs, root) {
		ctx.Log("backup skipped, not a directory: " + root)
		return ""
	}

	timestamp := time.Now().Format(backupTimestampLayout)
	name := fmt.Sprintf("%s_backup_%s.zip", b.fs.Base(root), timestamp)
	archivePath := b.fs.Join(b.fs.Dir(root), name)

	if ctx.dryRun {
		ctx.Log("would create backup: " + archivePath)
		return archivePath
	}

	ctx.Log("creating backup: " + archivePath)

	if err := b.writeArchive(root, archivePath); err != nil {
		ctx.Log("backup failed: " + err.Error())
		_ = b.fs.Remove(archivePath)

		return ""
	}

	ctx.stats.BackupsCreated++
	ctx.Log("backup created: " + archivePath)

	return archivePath
}

func (b *BackupManager) writeArchive(root, archivePath string) error {
	out, err := b.fs.Create(archivePath)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	zw := zip.NewWriter(out)

	walker := krfs.WalkFS(root, &walkAdapter{fs: b.fs})
	for walker.Step() {
		if err := walker.Err(); err != nil {
			return fmt.Errorf("failed to walk %s: %w", walker.Path(), err)
		}

		if walker.Stat().IsDir() {
			continue
		}

		if err := b.addFile(zw, root, walker.Path()); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive %s: %w", archivePath, err)
	}

	return out.Close()
}

func (b *BackupManager) addFile(zw *zip.Writer, root, path string) error {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return fmt.Errorf("failed to relativize %s: %w", path, err)
	}

	w, err := zw.Create(filepath.ToSlash(rel))
	if err != nil {
		return fmt.Errorf("failed to add %s to archive: %w", rel, err)
	}

	in, err := b.fs.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("failed to compress %s: %w", rel, err)
	}

	return nil
}
