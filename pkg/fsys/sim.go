package fsys

import (
	"errors"
	"os"
)

// ErrSimulated is returned by operations the simulator refuses to perform.
var ErrSimulated = errors.New("operation not available on simulated filesystem")

// Simulated wraps another Filesystem and turns every mutation into a no-op
// while delegating all reads. Injecting it into the engine yields a dry run:
// the engine follows its normal code paths, logs and counts every action,
// and the tree underneath never changes. Reads therefore keep seeing the
// pre-run state, which is exactly the contract of a simulated run.
type Simulated struct {
	inner Filesystem
}

// NewSimulated creates a simulator over the given filesystem.
func NewSimulated(inner Filesystem) *Simulated {
	return &Simulated{inner: inner}
}

// Stat returns file information from the underlying filesystem.
func (fs *Simulated) Stat(path string) (os.FileInfo, error) {
	return fs.inner.Stat(path)
}

// ReadDir lists the entries of a directory on the underlying filesystem.
func (fs *Simulated) ReadDir(path string) ([]os.FileInfo, error) {
	return fs.inner.ReadDir(path)
}

// Open opens a file for reading on the underlying filesystem.
func (fs *Simulated) Open(path string) (File, error) {
	return fs.inner.Open(path)
}

// Create always fails; nothing may be written during a simulation.
func (fs *Simulated) Create(_ string) (File, error) {
	return nil, ErrSimulated
}

// MkdirAll is a no-op.
func (fs *Simulated) MkdirAll(_ string, _ os.FileMode) error {
	return nil
}

// Rename is a no-op.
func (fs *Simulated) Rename(_, _ string) error {
	return nil
}

// Remove is a no-op.
func (fs *Simulated) Remove(_ string) error {
	return nil
}

// Join delegates to the underlying filesystem's path rules.
func (fs *Simulated) Join(elem ...string) string {
	return fs.inner.Join(elem...)
}

// Dir delegates to the underlying filesystem's path rules.
func (fs *Simulated) Dir(path string) string {
	return fs.inner.Dir(path)
}

// Base delegates to the underlying filesystem's path rules.
func (fs *Simulated) Base(path string) string {
	return fs.inner.Base(path)
}
