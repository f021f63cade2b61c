package mergeengine

import (
	"errors"
	"fmt"

	"github.com/ade/merge-folders/internal/config"
	"github.com/ade/merge-folders/pkg/fsys"
)

// ErrMergeCancelled is returned when Cancel is called during execution.
var ErrMergeCancelled = errors.New("merge cancelled")

// Executor consumes a plan and performs the actual merges, delegating every
// filesystem mutation and every conflict decision to its OpContext.
type Executor struct {
	ctx        *OpContext
	cancelChan chan struct{}
}

// NewExecutor creates an executor around the given context. cancelChan is
// checked between plan items and may be nil when cancellation is not needed.
func NewExecutor(ctx *OpContext, cancelChan chan struct{}) *Executor {
	return &Executor{ctx: ctx, cancelChan: cancelChan}
}

// Execute walks the plan in order. A source that vanished since planning is
// logged and skipped; the tree is not locked between the two passes, so
// that is a tolerated race, not an error. Progress goes out after every
// item, reaching 1.0 at the end even for an empty plan.
func (e *Executor) Execute(plan Plan) error {
	if len(plan) == 0 {
		e.ctx.SetProgress(1.0)
		return nil
	}

	total := len(plan)

	for i, step := range plan {
		if err := e.checkCancellation(); err != nil {
			return err
		}

		if err := e.executeStep(step); err != nil {
			return err
		}

		e.ctx.SetProgress(float64(i+1) / float64(total))
	}

	return nil
}

func (e *Executor) executeStep(step PlanStep) error {
	if !fsys.Exists(e.ctx.fs, step.Source) {
		e.ctx.Log("not found, skipping: " + step.Source)
		return nil
	}

	if fsys.Exists(e.ctx.fs, step.Dest) {
		e.ctx.stats.FoldersMerged++
		return e.mergeTrees(step.Source, step.Dest)
	}

	return e.ctx.RenameDir(step.Source, step.Dest)
}

// mergeTrees empties src into dst, entry by entry, recursing where both
// sides have a directory of the same name. When everything has been moved
// out, the drained src is removed; if a skip left something behind the
// removal quietly fails and src stays.
func (e *Executor) mergeTrees(src, dst string) error {
	if !fsys.Exists(e.ctx.fs, dst) {
		if err := e.ctx.MkdirAll(dst); err != nil {
			return err
		}
	}

	entries, err := e.ctx.fs.ReadDir(src)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", src, err)
	}

	for _, entry := range entries {
		srcPath := e.ctx.fs.Join(src, entry.Name())
		dstPath := e.ctx.fs.Join(dst, entry.Name())

		if err := e.mergeEntry(entry.IsDir(), srcPath, dst, dstPath); err != nil {
			return err
		}
	}

	e.ctx.RemoveDir(src)

	return nil
}

func (e *Executor) mergeEntry(srcIsDir bool, srcPath, dstDir, dstPath string) error {
	dstInfo, err := e.ctx.fs.Stat(dstPath)
	dstExists := err == nil

	switch {
	case srcIsDir && dstExists && dstInfo.IsDir():
		// Same-named directories on both sides: merge them too.
		e.ctx.stats.FoldersMerged++
		return e.mergeTrees(srcPath, dstPath)

	case srcIsDir && dstExists:
		return e.handleTypeConflict(srcPath, dstDir, true)

	case srcIsDir:
		// Nothing in the way: take the whole subtree in one move.
		e.ctx.stats.FoldersMerged++
		return e.ctx.Move(srcPath, dstPath, true)

	case dstExists && dstInfo.IsDir():
		return e.handleTypeConflict(srcPath, dstDir, false)

	case dstExists:
		resolved, ok := e.ctx.ResolveConflict(dstDir, dstPath)
		if !ok {
			return nil
		}

		return e.ctx.Move(srcPath, resolved, false)

	default:
		return e.ctx.Move(srcPath, dstPath, false)
	}
}

// handleTypeConflict deals with a file colliding with a directory (either
// way around). Overwrite is not honored across types; other than Skip, the
// incoming item always gets a fresh numbered name next to the existing one.
func (e *Executor) handleTypeConflict(srcPath, dstDir string, srcIsDir bool) error {
	if e.ctx.conflict == config.Skip {
		e.ctx.Log("type conflict, skipping: " + srcPath)
		e.ctx.stats.ItemsSkipped++
		e.ctx.stats.NameConflicts++

		return nil
	}

	unique := e.ctx.GenerateUniquePath(dstDir, e.ctx.fs.Base(srcPath))
	e.ctx.Log(fmt.Sprintf("type conflict, renaming: %s -> %s", srcPath, unique))
	e.ctx.stats.NameConflicts++

	return e.ctx.Move(srcPath, unique, srcIsDir)
}

func (e *Executor) checkCancellation() error {
	if e.cancelChan == nil {
		return nil
	}

	select {
	case <-e.cancelChan:
		return ErrMergeCancelled
	default:
		return nil
	}
}
