package main

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/help"

	"labelterm/internal/action"
	"labelterm/internal/history"
	state "labelterm/internal/model"
	"labelterm/internal/tool"
)

type model struct {
	width  int
	height int

	state   *state.Model
	env     *action.Env
	history *history.History
	tools   *tool.Coordinator

	config *Config
	keys   keyMap
	help   help.Model
	logger *slog.Logger

	mode           Mode
	confirmAction  ConfirmAction
	pressed        bool
	errorMessage   string
	successMessage string
}

// statusMsg reports the outcome of a command that does not touch the
// annotation state, such as an export.
type statusMsg struct {
	text string
	err  error
}
