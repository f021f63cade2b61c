package mergeengine_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// recordingNotifier captures everything the engine reports for assertions.
type recordingNotifier struct {
	logs     []string
	progress []float64
	statuses []string
}

func (n *recordingNotifier) Log(message string) {
	n.logs = append(n.logs, message)
}

func (n *recordingNotifier) SetProgress(value float64) {
	n.progress = append(n.progress, value)
}

func (n *recordingNotifier) SetStatus(text string) {
	n.statuses = append(n.statuses, text)
}

func (n *recordingNotifier) logContaining(substr string) bool {
	for _, line := range n.logs {
		if strings.Contains(line, substr) {
			return true
		}
	}

	return false
}

func mkdirAll(t *testing.T, path string) {
	t.Helper()

	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	mkdirAll(t, filepath.Dir(path))

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path) // #nosec G304 - test paths
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}

	return string(content)
}
