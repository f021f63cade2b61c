package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// LogMsg carries one engine log line as a tea.Msg.
type LogMsg struct {
	Line string
}

// ProgressMsg carries an overall completion value in 0.0..1.0.
type ProgressMsg struct {
	Value float64
}

// StatusMsg carries the name of the phase the run is in.
type StatusMsg struct {
	Text string
}

// Bridge adapts engine notifications to bubble tea messages. It implements
// mergeengine.Notifier and provides a channel for TUI consumption.
type Bridge struct {
	msgChan chan tea.Msg
	closed  bool
}

// NewBridge creates a new notification bridge.
func NewBridge() *Bridge {
	return &Bridge{
		msgChan: make(chan tea.Msg, 100), // Buffer to prevent blocking the engine
	}
}

// Log implements mergeengine.Notifier.
func (b *Bridge) Log(message string) {
	b.send(LogMsg{Line: message})
}

// SetProgress implements mergeengine.Notifier.
func (b *Bridge) SetProgress(value float64) {
	b.send(ProgressMsg{Value: value})
}

// SetStatus implements mergeengine.Notifier.
func (b *Bridge) SetStatus(text string) {
	b.send(StatusMsg{Text: text})
}

// send forwards a message without ever blocking the engine goroutine. If
// the channel is full the message is dropped; the next notification
// supersedes it anyway.
func (b *Bridge) send(msg tea.Msg) {
	if b.closed {
		return
	}

	select {
	case b.msgChan <- msg:
	default:
		// Channel full, message dropped
	}
}

// ListenCmd returns a tea.Cmd that blocks until a notification arrives.
// Use this in Init() and again after processing a message to keep listening.
func (b *Bridge) ListenCmd() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-b.msgChan
		if !ok {
			return nil // Channel closed
		}
		return msg
	}
}

// Close closes the message channel. Call this when done with the bridge.
func (b *Bridge) Close() {
	if !b.closed {
		b.closed = true
		close(b.msgChan)
	}
}
