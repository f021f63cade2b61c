// Package main is the entry point for the merge-folders application.
package main

import (
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term" //nolint:depguard // Required for TTY detection

	"github.com/ade/merge-folders/internal/config"
	"github.com/ade/merge-folders/internal/mergeengine"
	"github.com/ade/merge-folders/internal/tui"
	apperrors "github.com/ade/merge-folders/pkg/errors"
)

func main() {
	// os.Exit skips deferred cleanup, so everything that needs it (the
	// log trailer in particular) lives in run.
	os.Exit(run())
}

func run() int {
	cfg, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	var extra mergeengine.Notifier

	if cfg.LogFile != "" {
		fileNotifier, err := newFileNotifier(cfg.LogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer fileNotifier.Close()

		extra = fileNotifier
	}

	// The interactive UI needs a terminal; fall back to plain output when
	// stdout is redirected.
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if cfg.NoTUI || !isTTY {
		return runHeadless(cfg, extra)
	}

	model := tui.NewModel(cfg, extra)

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if m, ok := finalModel.(tui.Model); ok && m.Err() != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", m.Err())
		return 1
	}

	return 0
}

func runHeadless(cfg *config.Config, extra mergeengine.Notifier) int {
	if cfg.Root == "" {
		fmt.Fprintln(os.Stderr, "Error: root path is required when running without the UI")
		return 1
	}

	notifier := mergeengine.Notifier(consoleNotifier{})
	if extra != nil {
		notifier = mergeengine.MultiNotifier{consoleNotifier{}, extra}
	}

	runner, err := mergeengine.NewRunner(cfg, notifier)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer runner.Close()

	// A first interrupt stops the run between plan items; a second one is
	// the default hard kill.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)

	go func() {
		<-interrupts
		signal.Stop(interrupts)
		runner.Cancel()
	}()

	_, err = runner.Run()
	if err != nil {
		reportError(err)
		return 1
	}

	return 0
}

func reportError(err error) {
	enriched := apperrors.NewEnricher().Enrich(err, "")
	fmt.Fprintf(os.Stderr, "Error: %v\n", enriched)

	if suggestions := apperrors.FormatSuggestions(enriched); suggestions != "" {
		fmt.Fprintln(os.Stderr, "Try these solutions:")
		fmt.Fprintln(os.Stderr, suggestions)
	}
}

// consoleNotifier writes run output straight to stdout.
type consoleNotifier struct{}

func (consoleNotifier) Log(message string) {
	fmt.Println(message)
}

func (consoleNotifier) SetProgress(float64) {}

func (consoleNotifier) SetStatus(text string) {
	fmt.Println("-- " + text)
}
