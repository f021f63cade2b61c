package fsys

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// DefaultSFTPPort is used when an SFTP URL does not specify a port.
const DefaultSFTPPort = 22

// ParsedPath represents either a local path or an SFTP URL.
type ParsedPath struct {
	IsRemote bool

	// For local paths
	LocalPath string

	// For SFTP paths
	Host string
	Port int
	User string
	Path string // Remote path
}

// ParsePath parses a path string, detecting whether it's a local path or SFTP URL.
// SFTP URLs have the format: sftp://user@host:port/path/to/dir
// Port is optional (defaults to 22)
// Examples:
//   - sftp://ade@myserver.com/home/ade/projects
//   - sftp://ade@myserver.com:2222/archive
//   - /local/path/to/folders (local path)
func ParsePath(path string) (*ParsedPath, error) {
	if strings.HasPrefix(path, "sftp://") {
		return parseSFTPURL(path)
	}

	return &ParsedPath{
		IsRemote:  false,
		LocalPath: path,
	}, nil
}

func parseSFTPURL(sftpURL string) (*ParsedPath, error) {
	parsed, err := url.Parse(sftpURL)
	if err != nil {
		return nil, fmt.Errorf("invalid SFTP URL: %w", err)
	}

	if parsed.Scheme != "sftp" {
		return nil, fmt.Errorf("expected sftp:// scheme, got %s://", parsed.Scheme)
	}

	if parsed.User == nil || parsed.User.Username() == "" {
		return nil, fmt.Errorf("SFTP URL must include username (sftp://user@host/path)")
	}
	user := parsed.User.Username()

	host := parsed.Hostname()
	if host == "" {
		return nil, fmt.Errorf("SFTP URL must include host")
	}

	port := DefaultSFTPPort
	if portStr := parsed.Port(); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid port number: %w", err)
		}
		port = p
	}

	// SFTP path convention:
	//   sftp://user@host/path  → relative to home directory (strip leading /)
	//   sftp://user@host//path → absolute path /path (strip one /)
	//   sftp://user@host       → home directory (.)
	remotePath := parsed.Path
	if remotePath == "" || remotePath == "/" {
		remotePath = "."
	} else if strings.HasPrefix(remotePath, "//") {
		remotePath = remotePath[1:]
	} else {
		remotePath = strings.TrimPrefix(remotePath, "/")
	}

	return &ParsedPath{
		IsRemote: true,
		Host:     host,
		Port:     port,
		User:     user,
		Path:     remotePath,
	}, nil
}
