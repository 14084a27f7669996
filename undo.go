package main

import (
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"labelterm/internal/action"
	"labelterm/internal/history"
)

// addAction applies a through the history and reports rejections in the
// status line.
func (m *model) addAction(a *action.Action) tea.Cmd {
	cmd, err := m.history.AddAction(a)
	if err != nil {
		m.reportError(a.Type.String(), err)
		return nil
	}
	return cmd
}

func (m *model) addActions(actions []*action.Action) tea.Cmd {
	var cmds []tea.Cmd
	for _, a := range actions {
		if cmd := m.addAction(a); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m *model) undo() tea.Cmd {
	if !m.history.CanUndo() {
		m.successMessage = "Nothing to undo"
		return nil
	}
	cmd, err := m.history.Undo()
	if err != nil {
		m.reportError("undo", err)
		return nil
	}
	return cmd
}

func (m *model) redo() tea.Cmd {
	if !m.history.CanRedo() {
		m.successMessage = "Nothing to redo"
		return nil
	}
	cmd, err := m.history.Redo()
	if err != nil {
		m.reportError("redo", err)
		return nil
	}
	return cmd
}

// complete hands a remote result to the history.
func (m *model) complete(msg action.ResultMsg) {
	if err := m.history.Complete(msg); err != nil {
		m.reportError(msg.Op.String(), err)
		return
	}
	m.errorMessage = ""
	m.successMessage = msg.Op.String() + " applied"
}

func (m *model) applyDisplay(msg action.DisplayMsg) {
	if msg.Err != nil {
		m.logger.Warn("display refresh failed", slog.String("attr", msg.Attr), slog.Int("value", msg.Value), slog.Any("error", msg.Err))
		m.reportError("load "+msg.Attr, msg.Err)
		return
	}
	// A stale refresh may arrive after the user moved on.
	nav := m.state.Navigation
	current := map[string]int{
		action.DisplayFrame:   nav.Frame,
		action.DisplayFeature: nav.Feature,
		action.DisplayChannel: nav.Channel,
	}
	if v, ok := current[msg.Attr]; ok && v != msg.Value {
		return
	}
	m.state.ApplyPayload(msg.Payload)
}

func (m *model) reportError(what string, err error) {
	m.successMessage = ""
	var verr *action.ValidationError
	switch {
	case errors.Is(err, history.ErrBusy):
		m.errorMessage = "Waiting for the label service, try again"
	case errors.As(err, &verr):
		m.errorMessage = "Cannot " + string(verr.Kind) + ": " + verr.Err.Error()
	default:
		m.errorMessage = what + " failed: " + err.Error()
	}
	m.logger.Debug("reported", slog.String("what", what), slog.Any("error", err))
}
