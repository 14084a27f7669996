package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeHelp
	ModeConfirm
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmDeleteMask
)

// Rows taken by the status and message lines under the label grid.
const statusRows = 2

const (
	panStep  = 4.0
	zoomStep = 1.0
)
