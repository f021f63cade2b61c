//nolint:varnamelen // Test files use idiomatic short variable names (t, tt, etc.)
package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers
)

func TestFileNotifierWritesSessionMarkers(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := filepath.Join(t.TempDir(), "merge.log")

	notifier, err := newFileNotifier(path)
	g.Expect(err).NotTo(HaveOccurred())

	notifier.Log("moving: a.txt")
	notifier.SetStatus("merging")
	notifier.Close()

	data, err := os.ReadFile(path)
	g.Expect(err).NotTo(HaveOccurred())

	content := string(data)
	g.Expect(content).To(ContainSubstring("=== Merge Log Started:"))
	g.Expect(content).To(ContainSubstring("moving: a.txt"))
	g.Expect(content).To(ContainSubstring("-- merging"))
	g.Expect(content).To(ContainSubstring("=== Merge Log Ended:"))
}

func TestFileNotifierAppendsAcrossSessions(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := filepath.Join(t.TempDir(), "merge.log")

	for i := 0; i < 2; i++ {
		notifier, err := newFileNotifier(path)
		g.Expect(err).NotTo(HaveOccurred())
		notifier.Log("run")
		notifier.Close()
	}

	data, err := os.ReadFile(path)
	g.Expect(err).NotTo(HaveOccurred())

	// Both sessions' markers survive; nothing was truncated.
	g.Expect(strings.Count(string(data), "=== Merge Log Started:")).To(Equal(2))
	g.Expect(strings.Count(string(data), "=== Merge Log Ended:")).To(Equal(2))
}
