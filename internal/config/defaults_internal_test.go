package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers
)

func TestApplyFileDefaultsMissingFileIsFine(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	cfg := &Config{}

	g.Expect(applyFileDefaults(cfg, filepath.Join(t.TempDir(), "nope.yaml"))).To(Succeed())
	g.Expect(cfg.Suffix).To(BeEmpty())
}

func TestApplyFileDefaultsLoadsValues(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("suffix: _bak\nignore_case: true\nconflict: skip\nexclude:\n  - \"**/.git/**\"\nbackup: true\n")
	g.Expect(os.WriteFile(path, content, 0o600)).To(Succeed())

	cfg := &Config{}

	g.Expect(applyFileDefaults(cfg, path)).To(Succeed())
	g.Expect(cfg.Suffix).To(Equal("_bak"))
	g.Expect(cfg.IgnoreCase).To(BeTrue())
	g.Expect(cfg.Backup).To(BeTrue())
	g.Expect(cfg.Conflict).To(Equal(Skip))
	g.Expect(cfg.Exclude).To(ConsistOf("**/.git/**"))
}

func TestApplyFileDefaultsRejectsBadConflict(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	g.Expect(os.WriteFile(path, []byte("conflict: clobber\n"), 0o600)).To(Succeed())

	err := applyFileDefaults(&Config{}, path)

	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("invalid config file"))
}

func TestApplyFileDefaultsRejectsBadYAML(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	g.Expect(os.WriteFile(path, []byte("suffix: [unclosed\n"), 0o600)).To(Succeed())

	g.Expect(applyFileDefaults(&Config{}, path)).NotTo(Succeed())
}
