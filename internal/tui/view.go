package tui

import (
	"fmt"
	"strings"

	apperrors "github.com/ade/merge-folders/pkg/errors"
)

// View implements tea.Model
func (m Model) View() string {
	switch m.phase {
	case PhaseConfirm:
		return m.renderConfirmView()
	case PhaseRunning:
		return m.renderRunView()
	case PhaseDone:
		return m.renderDoneView()
	default:
		return m.renderInputView()
	}
}

func (m Model) renderInputView() string {
	var b strings.Builder

	b.WriteString(RenderTitle("merge-folders"))
	b.WriteString("\n")
	b.WriteString(RenderSubtitle("Merge suffixed folders into their unsuffixed siblings"))
	b.WriteString("\n\n")

	b.WriteString(RenderLabel("Root directory:"))
	b.WriteString("\n")
	b.WriteString(m.rootInput.View())
	b.WriteString("\n\n")

	b.WriteString(RenderLabel("Suffix:"))
	b.WriteString("\n")
	b.WriteString(m.sfxInput.View())
	b.WriteString("\n\n")

	if m.inputErr != "" {
		b.WriteString(RenderError(m.inputErr))
		b.WriteString("\n\n")
	}

	b.WriteString(RenderDim("tab: switch field • enter: start • esc: quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderConfirmView() string {
	var b strings.Builder

	b.WriteString(RenderTitle("merge-folders"))
	b.WriteString("\n")
	b.WriteString(RenderSubtitle("Review settings before starting"))
	b.WriteString("\n\n")

	mode := "dry run (nothing will change)"
	if m.cfg.Live {
		mode = "live (folders will be merged)"
	}

	backup := "no"
	if m.cfg.Backup {
		backup = "yes"
	}

	b.WriteString(RenderLabel("Root:      "))
	b.WriteString(m.cfg.Root)
	b.WriteString("\n")
	b.WriteString(RenderLabel("Suffix:    "))
	b.WriteString(m.cfg.Suffix)
	b.WriteString("\n")
	b.WriteString(RenderLabel("Mode:      "))
	b.WriteString(mode)
	b.WriteString("\n")
	b.WriteString(RenderLabel("Conflicts: "))
	b.WriteString(m.cfg.Conflict.String())
	b.WriteString("\n")
	b.WriteString(RenderLabel("Backup:    "))
	b.WriteString(backup)
	b.WriteString("\n")

	if len(m.cfg.Exclude) > 0 {
		b.WriteString(RenderLabel("Exclude:   "))
		b.WriteString(strings.Join(m.cfg.Exclude, ", "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(RenderDim("enter: start • esc: back • q: quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderRunView() string {
	var b strings.Builder

	b.WriteString(RenderTitle("merge-folders"))
	b.WriteString("\n")

	status := m.status
	if status == "" {
		status = "starting"
	}
	b.WriteString(fmt.Sprintf("%s %s\n\n", m.spin.View(), RenderLabel(status)))

	b.WriteString(m.prog.ViewAs(m.percent))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogTail())
	b.WriteString(RenderDim("esc: cancel"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderDoneView() string {
	var b strings.Builder

	b.WriteString(RenderTitle("merge-folders"))
	b.WriteString("\n")

	if m.runErr != nil {
		b.WriteString(RenderError("run failed: " + m.runErr.Error()))
		b.WriteString("\n")

		if suggestions := apperrors.FormatSuggestions(m.runErr); suggestions != "" {
			b.WriteString(RenderDim("Try these solutions:"))
			b.WriteString("\n")
			b.WriteString(suggestions)
			b.WriteString("\n")
		}

		b.WriteString("\n")
	} else {
		b.WriteString(RenderSuccess("done"))
		b.WriteString("\n\n")
	}

	if m.result != nil {
		for _, line := range m.result.Stats.Summary() {
			b.WriteString("  " + line + "\n")
		}

		if m.result.BackupPath != "" {
			b.WriteString("\n  Backup: " + m.result.BackupPath + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(RenderDim("press any key to exit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderLogTail() string {
	if len(m.logLines) == 0 {
		return ""
	}

	start := len(m.logLines) - LogTailLength
	if start < 0 {
		start = 0
	}

	var b strings.Builder
	for _, line := range m.logLines[start:] {
		b.WriteString(RenderDim("  " + line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	return b.String()
}
