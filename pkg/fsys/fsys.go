// Package fsys provides an abstraction layer for filesystem side effects
// so the merge engine can run against local disks, remote SFTP trees, and a
// mutation-free simulator without changing its logic.
package fsys

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// File is an interface that abstracts an open file handle.
type File interface {
	io.Reader
	io.Writer
	io.Closer
	Stat() (os.FileInfo, error)
}

// Filesystem is the capability interface for every filesystem side effect
// performed by the engine. Implementations exist for the local OS, SFTP, and
// a read-through simulator used for dry runs.
type Filesystem interface {
	Stat(path string) (os.FileInfo, error)
	ReadDir(path string) ([]os.FileInfo, error)
	Open(path string) (File, error)
	Create(path string) (File, error)
	MkdirAll(path string, perm os.FileMode) error
	Rename(oldPath, newPath string) error
	Remove(path string) error
	Join(elem ...string) string
	Dir(path string) string
	Base(path string) string
}

// Exists reports whether path exists on the given filesystem.
func Exists(fsys Filesystem, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(fsys Filesystem, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}

// Local implements Filesystem using actual os/filepath functions.
type Local struct{}

// NewLocal creates a new local filesystem.
func NewLocal() *Local {
	return &Local{}
}

// Stat returns file information.
func (fs *Local) Stat(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return info, nil
}

// ReadDir lists the entries of a directory.
func (fs *Local) ReadDir(path string) ([]os.FileInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	infos := make([]os.FileInfo, 0, len(entries))

	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat entry %s: %w", entry.Name(), err)
		}

		infos = append(infos, info)
	}

	return infos, nil
}

// Open opens a file for reading.
func (fs *Local) Open(path string) (File, error) {
	file, err := os.Open(path) // #nosec G304 - file path is controlled by caller
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	return file, nil
}

// Create creates a file for writing.
func (fs *Local) Create(path string) (File, error) {
	file, err := os.Create(path) // #nosec G304 - file path is controlled by caller
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	return file, nil
}

// MkdirAll creates a directory and all necessary parents.
func (fs *Local) MkdirAll(path string, perm os.FileMode) error {
	err := os.MkdirAll(path, perm)
	if err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}

	return nil
}

// Rename moves src to dst. Within a volume this is the atomic OS rename.
func (fs *Local) Rename(oldPath, newPath string) error {
	err := os.Rename(oldPath, newPath)
	if err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", oldPath, newPath, err)
	}

	return nil
}

// Remove removes a file or empty directory.
func (fs *Local) Remove(path string) error {
	err := os.Remove(path)
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	return nil
}

// Join joins path elements using the OS separator.
func (fs *Local) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// Dir returns all but the last element of path.
func (fs *Local) Dir(path string) string {
	return filepath.Dir(path)
}

// Base returns the last element of path.
func (fs *Local) Base(path string) string {
	return filepath.Base(path)
}
