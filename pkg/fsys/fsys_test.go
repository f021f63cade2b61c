//nolint:varnamelen // Test files use idiomatic short variable names (t, tt, etc.)
package fsys_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ade/merge-folders/pkg/fsys"
	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers
)

func TestLocalRoundTrip(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	local := fsys.NewLocal()
	dir := t.TempDir()

	sub := local.Join(dir, "a", "b")
	g.Expect(local.MkdirAll(sub, 0o755)).To(Succeed())
	g.Expect(fsys.IsDir(local, sub)).To(BeTrue())

	file := local.Join(sub, "note.txt")
	out, err := local.Create(file)
	g.Expect(err).NotTo(HaveOccurred())
	_, err = out.Write([]byte("hello"))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out.Close()).To(Succeed())

	in, err := local.Open(file)
	g.Expect(err).NotTo(HaveOccurred())
	content, err := io.ReadAll(in)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(in.Close()).To(Succeed())
	g.Expect(string(content)).To(Equal("hello"))

	moved := local.Join(sub, "moved.txt")
	g.Expect(local.Rename(file, moved)).To(Succeed())
	g.Expect(fsys.Exists(local, file)).To(BeFalse())
	g.Expect(fsys.Exists(local, moved)).To(BeTrue())

	entries, err := local.ReadDir(sub)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(entries).To(HaveLen(1))
	g.Expect(entries[0].Name()).To(Equal("moved.txt"))

	g.Expect(local.Remove(moved)).To(Succeed())
	g.Expect(fsys.Exists(local, moved)).To(BeFalse())
}

func TestLocalPathHelpers(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	local := fsys.NewLocal()

	g.Expect(local.Dir(filepath.Join("a", "b", "c"))).To(Equal(filepath.Join("a", "b")))
	g.Expect(local.Base(filepath.Join("a", "b", "c"))).To(Equal("c"))
}

func TestSimulatedReadsDelegateMutationsDoNot(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "keep.txt")
	g.Expect(os.WriteFile(file, []byte("keep"), 0o600)).To(Succeed())

	sim := fsys.NewSimulated(fsys.NewLocal())

	// Reads see the real tree.
	g.Expect(fsys.Exists(sim, file)).To(BeTrue())
	entries, err := sim.ReadDir(dir)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(entries).To(HaveLen(1))

	// Mutations succeed without changing anything.
	g.Expect(sim.Rename(file, filepath.Join(dir, "gone.txt"))).To(Succeed())
	g.Expect(sim.Remove(file)).To(Succeed())
	g.Expect(sim.MkdirAll(filepath.Join(dir, "new"), 0o755)).To(Succeed())

	g.Expect(fsys.Exists(sim, file)).To(BeTrue())
	g.Expect(fsys.Exists(sim, filepath.Join(dir, "gone.txt"))).To(BeFalse())
	g.Expect(fsys.Exists(sim, filepath.Join(dir, "new"))).To(BeFalse())

	// Writing is refused outright.
	_, err = sim.Create(filepath.Join(dir, "out.txt"))
	g.Expect(err).To(MatchError(fsys.ErrSimulated))
}
