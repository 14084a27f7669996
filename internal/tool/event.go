// Package tool turns pointer gestures into annotation actions.
//
// Each tool is a small state machine fed with Events. A finished gesture
// produces Outputs, which the Coordinator converts into actions for the
// history.
package tool

import "labelterm/internal/action"

type EventType int

const (
	EventPointerDown EventType = iota
	EventPointerUp
	EventPointerMove
	// EventUpdate carries a new cursor position and hovered label without a
	// button change.
	EventUpdate
)

func (t EventType) String() string {
	switch t {
	case EventPointerDown:
		return "down"
	case EventPointerUp:
		return "up"
	case EventPointerMove:
		return "move"
	case EventUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// Event is a pointer event. X and Y are image pixels, ScreenX and ScreenY
// the cursor position on screen. Label is the label under the pointer.
// Foreground, Background and Frame are filled in by the Coordinator.
type Event struct {
	Type     EventType
	X, Y     int
	ScreenX  float64
	ScreenY  float64
	Label    int
	Modifier bool

	Foreground int
	Background int
	Frame      int
}

func (e Event) point() action.Point {
	return action.Point{X: e.X, Y: e.Y}
}

// Selection slots a tool can ask to fill with the hovered label.
type Selection int

const (
	SelectNone Selection = iota
	SelectForeground
	SelectBackground
)

// Output is the result of a finished gesture: either an edit request or a
// selection of the hovered label.
type Output struct {
	Request action.Request
	Select  Selection
}

func edit(req action.Request) []Output {
	return []Output{{Request: req}}
}

func selectLabel(slot Selection) []Output {
	return []Output{{Select: slot}}
}

// Machine is a tool's gesture state machine.
type Machine interface {
	Handle(ev Event) []Output
	// Reset drops any gesture in progress.
	Reset()
}
