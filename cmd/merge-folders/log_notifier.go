package main

import (
	"fmt"
	"os"
	"time"
)

// fileNotifier appends run output to a log file, alongside whatever other
// notifier is active.
type fileNotifier struct {
	file *os.File
}

func newFileNotifier(path string) (*fileNotifier, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) // #nosec G304 - path comes from the user's own flag
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	n := &fileNotifier{file: file}
	n.writeLine(fmt.Sprintf("=== Merge Log Started: %s ===", time.Now().Format(time.RFC3339)))

	return n, nil
}

func (n *fileNotifier) Log(message string) {
	n.writeLine(message)
}

func (n *fileNotifier) SetProgress(float64) {}

func (n *fileNotifier) SetStatus(text string) {
	n.writeLine("-- " + text)
}

// Close writes the trailer and closes the file.
func (n *fileNotifier) Close() {
	n.writeLine(fmt.Sprintf("=== Merge Log Ended: %s ===", time.Now().Format(time.RFC3339)))
	_ = n.file.Close()
}

func (n *fileNotifier) writeLine(line string) {
	_, _ = fmt.Fprintln(n.file, line)
}
