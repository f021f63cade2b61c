package mergeengine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	krfs "github.com/kr/fs"

	"github.com/ade/merge-folders/pkg/fsys"
)

// PlanStep is one pending merge: move the contents of Source into Dest.
// Both are sibling paths under the same parent directory.
type PlanStep struct {
	Source string
	Dest   string
}

// Plan is the ordered list of merges for one run. Deeper directories come
// first, so a suffixed folder nested inside another suffixed folder is
// merged before its ancestor is touched.
type Plan []PlanStep

// Planner finds the suffixed/unsuffixed sibling pairs under a root.
type Planner struct {
	fs         fsys.Filesystem
	suffix     string
	ignoreCase bool
	exclude    []string
}

// NewPlanner creates a planner for the given suffix. Paths matching any of
// the exclude globs (relative to the scan root) are left alone entirely.
func NewPlanner(fs fsys.Filesystem, suffix string, ignoreCase bool, exclude []string) *Planner {
	return &Planner{
		fs:         fs,
		suffix:     suffix,
		ignoreCase: ignoreCase,
		exclude:    exclude,
	}
}

// BuildPlan walks the tree under root and returns the merge plan. The walk
// itself is read-only. An empty suffix yields an empty plan.
func (p *Planner) BuildPlan(root string) (Plan, error) {
	if p.suffix == "" {
		return nil, nil
	}

	var plan Plan

	walker := krfs.WalkFS(root, &walkAdapter{fs: p.fs})
	for walker.Step() {
		if err := walker.Err(); err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", walker.Path(), err)
		}

		path := walker.Path()
		if path == root || !walker.Stat().IsDir() {
			continue
		}

		if p.isExcluded(root, path) {
			walker.SkipDir()
			continue
		}

		base, ok := p.stripSuffix(walker.Stat().Name())
		if !ok {
			continue
		}

		plan = append(plan, PlanStep{
			Source: path,
			Dest:   p.fs.Join(p.fs.Dir(path), base),
		})
	}

	// The walk visits parents before children; merging must go the other
	// way so nested matches cascade correctly.
	reverse(plan)

	return plan, nil
}

// stripSuffix returns the directory name with the suffix removed, or false
// when the name does not end in the suffix. A name that is nothing but the
// suffix never matches; removing it would leave no name at all.
func (p *Planner) stripSuffix(name string) (string, bool) {
	if len(name) <= len(p.suffix) {
		return "", false
	}

	tail := name[len(name)-len(p.suffix):]
	if p.ignoreCase {
		if !strings.EqualFold(tail, p.suffix) {
			return "", false
		}
	} else if tail != p.suffix {
		return "", false
	}

	return name[:len(name)-len(p.suffix)], true
}

func (p *Planner) isExcluded(root, path string) bool {
	if len(p.exclude) == 0 {
		return false
	}

	rel := strings.TrimPrefix(path, root)
	rel = strings.TrimLeft(rel, "/\\")
	rel = filepath.ToSlash(rel)

	for _, pattern := range p.exclude {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}

	return false
}

func reverse(plan Plan) {
	for i, j := 0, len(plan)-1; i < j; i, j = i+1, j-1 {
		plan[i], plan[j] = plan[j], plan[i]
	}
}

// walkAdapter bridges fsys.Filesystem to the walker's expectations.
type walkAdapter struct {
	fs fsys.Filesystem
}

func (a *walkAdapter) ReadDir(dirname string) ([]os.FileInfo, error) {
	return a.fs.ReadDir(dirname)
}

func (a *walkAdapter) Lstat(name string) (os.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *walkAdapter) Join(elem ...string) string {
	return a.fs.Join(elem...)
}
