package fsys

import (
	"fmt"
)

// New builds a Filesystem for the given path.
// Returns (filesystem, basePath, closer, error).
// - filesystem: the Filesystem to use for operations
// - basePath: the actual path to use with the filesystem (stripped of URL prefix)
// - closer: a function to call when done (closes SFTP connections), or nil for local
func New(pathStr string) (Filesystem, string, func(), error) {
	parsed, err := ParsePath(pathStr)
	if err != nil {
		return nil, "", nil, err
	}

	if !parsed.IsRemote {
		return NewLocal(), parsed.LocalPath, nil, nil
	}

	conn, err := Connect(parsed.Host, parsed.Port, parsed.User)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to connect to %s@%s:%d: %w",
			parsed.User, parsed.Host, parsed.Port, err)
	}

	fs := NewSFTP(conn)
	closer := func() {
		_ = conn.Close()
	}

	return fs, parsed.Path, closer, nil
}
