package fsys

import (
	"fmt"
	"os"
	"path"
)

// SFTP implements Filesystem over an SFTP connection, so merges can run
// against a remote tree the same way they run against a local one.
type SFTP struct {
	conn *SFTPConnection
}

// NewSFTP creates a Filesystem backed by the given connection.
func NewSFTP(conn *SFTPConnection) *SFTP {
	return &SFTP{conn: conn}
}

// Stat returns file information for a remote path.
func (fs *SFTP) Stat(path string) (os.FileInfo, error) {
	info, err := fs.conn.Client().Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return info, nil
}

// ReadDir lists the entries of a remote directory.
func (fs *SFTP) ReadDir(path string) ([]os.FileInfo, error) {
	infos, err := fs.conn.Client().ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	return infos, nil
}

// Open opens a remote file for reading.
func (fs *SFTP) Open(path string) (File, error) {
	file, err := fs.conn.Client().Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	return file, nil
}

// Create creates a remote file for writing.
func (fs *SFTP) Create(path string) (File, error) {
	file, err := fs.conn.Client().Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	return file, nil
}

// MkdirAll creates a remote directory and all necessary parents.
func (fs *SFTP) MkdirAll(path string, _ os.FileMode) error {
	// SFTP uses server defaults for permissions.
	err := fs.conn.Client().MkdirAll(path)
	if err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}

	return nil
}

// Rename moves a remote file or directory.
func (fs *SFTP) Rename(oldPath, newPath string) error {
	// PosixRename overwrites like os.Rename; plain SFTP rename refuses.
	err := fs.conn.Client().PosixRename(oldPath, newPath)
	if err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", oldPath, newPath, err)
	}

	return nil
}

// Remove removes a remote file or empty directory.
func (fs *SFTP) Remove(path string) error {
	err := fs.conn.Client().Remove(path)
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	return nil
}

// Join joins path elements with forward slashes, which SFTP always uses.
func (fs *SFTP) Join(elem ...string) string {
	return path.Join(elem...)
}

// Dir returns all but the last element of a slash-separated path.
func (fs *SFTP) Dir(p string) string {
	return path.Dir(p)
}

// Base returns the last element of a slash-separated path.
func (fs *SFTP) Base(p string) string {
	return path.Base(p)
}
