// Package mergeengine finds sibling directory pairs that differ only by a
// name suffix (Project_old next to Project) and merges the suffixed one
// into its sibling: plan construction, recursive tree merge with conflict
// resolution, dry-run simulation, and archival backup.
package mergeengine

import (
	"fmt"
	"sync"

	"github.com/ade/merge-folders/internal/config"
	"github.com/ade/merge-folders/pkg/fsys"
)

// Result is what a run hands back to the host: the final counters, the
// configuration that produced them, and the backup path if one was made.
type Result struct {
	Stats      Stats
	Config     *config.Config
	BackupPath string
}

// Runner drives one complete merge run: plan, optional backup, execute.
// It is meant to run on a single dedicated goroutine; the host watches
// through the Notifier and reads the Result when Run returns. A Runner is
// single-use; each run owns its own context and stats.
type Runner struct {
	cfg      *config.Config
	notifier Notifier

	fs        fsys.Filesystem
	root      string
	closeFunc func()

	cancelChan chan struct{}
	cancelOnce sync.Once
}

// NewRunner sets up a run against cfg.Root, which may be a local path or an
// SFTP URL. notifier may be nil.
func NewRunner(cfg *config.Config, notifier Notifier) (*Runner, error) {
	if err := cfg.ValidateSuffix(); err != nil {
		return nil, err
	}

	fs, root, closer, err := fsys.New(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to open root filesystem: %w", err)
	}

	if notifier == nil {
		notifier = NopNotifier{}
	}

	return &Runner{
		cfg:        cfg,
		notifier:   notifier,
		fs:         fs,
		root:       root,
		closeFunc:  closer,
		cancelChan: make(chan struct{}),
	}, nil
}

// Cancel stops the run before the next plan item. Safe to call more than
// once and from any goroutine.
func (r *Runner) Cancel() {
	r.cancelOnce.Do(func() {
		close(r.cancelChan)
	})
}

// Close releases any remote connections. Call it when done with the runner.
func (r *Runner) Close() {
	if r.closeFunc != nil {
		r.closeFunc()
	}
}

// Run performs the whole operation and returns the final counters. On
// error the returned Result still carries the counters accumulated so far;
// moves already applied are not rolled back.
func (r *Runner) Run() (*Result, error) {
	dryRun := !r.cfg.Live

	mode := "live"
	if dryRun {
		mode = "dry run"
	}
	r.notifier.Log(fmt.Sprintf("merging '%s' folders under %s (%s, conflicts: %s)",
		r.cfg.Suffix, r.cfg.Root, mode, r.cfg.Conflict))

	opFS := r.fs
	if dryRun {
		opFS = fsys.NewSimulated(r.fs)
	}

	ctx := NewOpContext(opFS, r.cfg.Conflict, dryRun, r.notifier)
	result := &Result{Config: r.cfg}

	r.notifier.SetStatus("planning")

	planner := NewPlanner(r.fs, r.cfg.Suffix, r.cfg.IgnoreCase, r.cfg.Exclude)

	plan, err := planner.BuildPlan(r.root)
	if err != nil {
		result.Stats = ctx.Stats()
		return result, err
	}

	ctx.stats.FoldersPlanned = len(plan)
	r.notifier.Log(fmt.Sprintf("planned %d folder merge(s)", len(plan)))

	if len(plan) == 0 {
		r.notifier.Log("nothing to do")
		r.notifier.SetProgress(1.0)
		r.notifier.SetStatus("complete")
		result.Stats = ctx.Stats()

		return result, nil
	}

	if r.cfg.Backup {
		r.notifier.SetStatus("backing up")
		result.BackupPath = NewBackupManager(r.fs).CreateArchive(r.root, ctx)
	}

	r.notifier.SetStatus("merging")

	if err := NewExecutor(ctx, r.cancelChan).Execute(plan); err != nil {
		result.Stats = ctx.Stats()
		return result, err
	}

	r.notifier.SetStatus("complete")

	result.Stats = ctx.Stats()
	for _, line := range result.Stats.Summary() {
		r.notifier.Log(line)
	}

	return result, nil
}
