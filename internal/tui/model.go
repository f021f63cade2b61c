// Package tui is the interactive shell around the merge engine: a single
// screen that collects the root and suffix, streams the run's log and
// progress, and shows the final counters.
package tui

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ade/merge-folders/internal/config"
	"github.com/ade/merge-folders/internal/mergeengine"
	apperrors "github.com/ade/merge-folders/pkg/errors"
)

// Phase tracks which part of the single-screen flow is active.
type Phase int

const (
	// PhaseInput collects the root path and suffix from the user.
	PhaseInput Phase = iota
	// PhaseConfirm shows the effective settings and waits for a go-ahead.
	PhaseConfirm
	// PhaseRunning streams log and progress while the engine works.
	PhaseRunning
	// PhaseDone shows the final counters (or the error).
	PhaseDone
)

// runnerReadyMsg is emitted when the runner (and any remote connection)
// is set up and the merge is about to start.
type runnerReadyMsg struct {
	runner *mergeengine.Runner
}

// runFailedMsg is emitted when the runner could not even be constructed.
type runFailedMsg struct {
	err error
}

// runDoneMsg is emitted when the merge run finishes.
type runDoneMsg struct {
	result *mergeengine.Result
	err    error
}

// Model is the top-level bubble tea model for the whole flow.
type Model struct {
	cfg      *config.Config
	bridge   *Bridge
	notifier mergeengine.Notifier
	runner   *mergeengine.Runner

	phase     Phase
	rootInput textinput.Model
	sfxInput  textinput.Model
	focus     int
	inputErr  string

	spin     spinner.Model
	prog     progress.Model
	percent  float64
	status   string
	logLines []string

	result *mergeengine.Result
	runErr error

	width  int
	height int
}

// NewModel creates the app model. When cfg already carries a root the input
// phase is skipped and the run starts immediately. extra, when non-nil,
// receives every notification alongside the screen (used for --log).
func NewModel(cfg *config.Config, extra mergeengine.Notifier) *Model {
	rootInput := textinput.New()
	rootInput.Placeholder = "/path/to/scan or sftp://user@host/path"
	rootInput.Prompt = PromptArrow
	rootInput.Focus()

	sfxInput := textinput.New()
	sfxInput.Placeholder = config.DefaultSuffix
	sfxInput.Prompt = "  "
	sfxInput.SetValue(cfg.Suffix)

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	bridge := NewBridge()

	notifier := mergeengine.Notifier(bridge)
	if extra != nil {
		notifier = mergeengine.MultiNotifier{bridge, extra}
	}

	m := &Model{
		cfg:       cfg,
		bridge:    bridge,
		notifier:  notifier,
		phase:     PhaseInput,
		rootInput: rootInput,
		sfxInput:  sfxInput,
		spin:      spin,
		prog:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(ProgressBarWidth)),
	}

	// A root given on the command line skips the form, but the settings
	// still get reviewed before anything runs.
	if cfg.Root != "" {
		m.phase = PhaseConfirm
	}

	return m
}

// Phase returns the current phase (for testing).
func (m Model) Phase() Phase {
	return m.phase
}

// Result returns the finished run's result (for testing).
func (m Model) Result() *mergeengine.Result {
	return m.result
}

// Err returns the run's error, if it failed.
func (m Model) Err() error {
	return m.runErr
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)

		return m, cmd

	case LogMsg:
		m.logLines = append(m.logLines, msg.Line)
		if len(m.logLines) > logHistoryLimit {
			m.logLines = m.logLines[len(m.logLines)-logHistoryLimit:]
		}

		return m, m.bridge.ListenCmd()

	case ProgressMsg:
		m.percent = msg.Value
		return m, m.bridge.ListenCmd()

	case StatusMsg:
		m.status = msg.Text
		return m, m.bridge.ListenCmd()

	case runnerReadyMsg:
		m.runner = msg.runner
		return m, runCmd(msg.runner)

	case runFailedMsg:
		m.phase = PhaseDone
		m.runErr = apperrors.NewEnricher().Enrich(msg.err, "")

		return m, nil

	case runDoneMsg:
		m.phase = PhaseDone
		m.result = msg.result
		if msg.err != nil {
			m.runErr = apperrors.NewEnricher().Enrich(msg.err, "")
		}

		return m, nil
	}

	return m.updateInputs(msg)
}

const logHistoryLimit = 200

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch m.phase {
	case PhaseInput:
		return m.handleInputKey(msg, key)

	case PhaseConfirm:
		switch key {
		case "enter", "y":
			return m.startRun()

		case "esc", "n":
			// Back to the form to adjust things.
			m.phase = PhaseInput
			return m, nil

		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case PhaseRunning:
		if key == "ctrl+c" || key == "esc" || key == "q" {
			// Stop before the next plan item; the run reports back as done.
			if m.runner != nil {
				m.runner.Cancel()
			}

			return m, nil
		}

	case PhaseDone:
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg, key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "tab", "shift+tab", "up", "down":
		m.focus = 1 - m.focus
		if m.focus == 0 {
			m.rootInput.Focus()
			m.rootInput.Prompt = PromptArrow
			m.sfxInput.Blur()
			m.sfxInput.Prompt = "  "
		} else {
			m.sfxInput.Focus()
			m.sfxInput.Prompt = PromptArrow
			m.rootInput.Blur()
			m.rootInput.Prompt = "  "
		}

		return m, nil

	case "enter":
		return m.submitInputs()
	}

	return m.updateInputs(msg)
}

func (m Model) submitInputs() (tea.Model, tea.Cmd) {
	m.cfg.Root = m.rootInput.Value()

	if suffix := m.sfxInput.Value(); suffix != "" {
		m.cfg.Suffix = suffix
	}

	if err := m.cfg.ValidateRoot(); err != nil {
		m.inputErr = err.Error()
		return m, nil
	}

	m.inputErr = ""
	m.phase = PhaseConfirm

	return m, nil
}

func (m Model) startRun() (tea.Model, tea.Cmd) {
	m.phase = PhaseRunning

	return m, tea.Batch(m.spin.Tick, m.bridge.ListenCmd(), startRunCmd(m.cfg, m.notifier))
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == 0 {
		m.rootInput, cmd = m.rootInput.Update(msg)
	} else {
		m.sfxInput, cmd = m.sfxInput.Update(msg)
	}

	return m, cmd
}

// startRunCmd sets up the runner off the UI goroutine; connecting to a
// remote root can block for a while.
func startRunCmd(cfg *config.Config, notifier mergeengine.Notifier) tea.Cmd {
	return func() tea.Msg {
		runner, err := mergeengine.NewRunner(cfg, notifier)
		if err != nil {
			return runFailedMsg{err: err}
		}

		return runnerReadyMsg{runner: runner}
	}
}

// runCmd blocks in the command goroutine until the merge completes.
func runCmd(runner *mergeengine.Runner) tea.Cmd {
	return func() tea.Msg {
		result, err := runner.Run()
		runner.Close()

		return runDoneMsg{result: result, err: err}
	}
}
