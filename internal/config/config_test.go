//nolint:varnamelen // Test files use idiomatic short variable names (t, tt, etc.)
package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ade/merge-folders/internal/config"
	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers
)

func TestConflictModeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cm       config.ConflictMode
		expected string
	}{
		{config.Rename, "rename"},
		{config.Overwrite, "overwrite"},
		{config.Skip, "skip"},
		{config.ConflictMode(999), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.cm.String(); got != tt.expected {
			t.Errorf("ConflictMode(%d).String() = %q, want %q", tt.cm, got, tt.expected)
		}
	}
}

func TestConflictModeUnmarshalText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected config.ConflictMode
		wantErr  bool
	}{
		{"rename", config.Rename, false},
		{"overwrite", config.Overwrite, false},
		{"skip", config.Skip, false},
		{"SKIP", config.Skip, false},
		{"invalid", config.Rename, true},
	}

	for _, tt := range tests {
		var cm config.ConflictMode

		err := cm.UnmarshalText([]byte(tt.input))
		if (err != nil) != tt.wantErr {
			t.Errorf("UnmarshalText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}

		if !tt.wantErr && cm != tt.expected {
			t.Errorf("UnmarshalText(%q) = %v, want %v", tt.input, cm, tt.expected)
		}
	}
}

func TestPostProcessConfigDefaultsSuffix(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	cfg, err := config.PostProcessConfig(&config.Config{})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.Suffix).To(Equal(config.DefaultSuffix))
}

func TestPostProcessConfigKeepsExplicitSuffix(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	cfg, err := config.PostProcessConfig(&config.Config{Suffix: "_bak"})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.Suffix).To(Equal("_bak"))
}

func TestValidateRootMissingPath(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	cfg := &config.Config{Root: filepath.Join(t.TempDir(), "does-not-exist")}

	err := cfg.ValidateRoot()

	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("does not exist"))
}

func TestValidateRootNotADirectory(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	file := filepath.Join(t.TempDir(), "plain.txt")
	g.Expect(os.WriteFile(file, []byte("x"), 0o600)).To(Succeed())

	cfg := &config.Config{Root: file}

	err := cfg.ValidateRoot()

	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("not a directory"))
}

func TestValidateRootExistingDirectory(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	cfg := &config.Config{Root: t.TempDir()}

	g.Expect(cfg.ValidateRoot()).To(Succeed())
}

func TestValidateRootEmpty(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	cfg := &config.Config{}

	err := cfg.ValidateRoot()

	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("required"))
}

func TestValidateSuffixEmpty(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	cfg := &config.Config{Root: t.TempDir()}

	err := cfg.ValidateSuffix()

	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("suffix"))
}

func TestValidateSuffixSet(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	cfg := &config.Config{Suffix: "_old"}

	g.Expect(cfg.ValidateSuffix()).To(Succeed())
}

func TestValidateRootRemoteDeferred(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	// Remote roots cannot be checked without connecting; validation passes
	// and the connect step reports real problems.
	cfg := &config.Config{Root: "sftp://ade@example.com/archive"}

	g.Expect(cfg.ValidateRoot()).To(Succeed())
}
