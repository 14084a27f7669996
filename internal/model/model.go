// Package model holds the read-model shared by actions, tools and the view:
// viewport, per-channel adjustments, label selection, display flags,
// navigation indices and the label data received from the label service.
//
// Undoable fields are only changed through actions. Cursor and hovered label
// mirror the pointer and are written by the tool coordinator directly.
package model

// Selection is the label pair used to parameterize edits.
type Selection struct {
	Foreground int
	Background int
	Hovered    int
}

// Display holds boolean display flags.
type Display struct {
	EditMode  bool
	Highlight bool
}

// Navigation is the shown frame, feature and channel.
type Navigation struct {
	Frame   int
	Feature int
	Channel int

	NumFrames   int
	NumFeatures int
	NumChannels int
}

// Model is the state the annotation client renders from.
type Model struct {
	Viewport   *Viewport
	Adjuster   *Adjuster
	Selection  Selection
	Display    Display
	Navigation Navigation
	Labels     LabelState

	clearHooks []func()
}

// New creates a model for an image stack of the given shape.
func New(width, height, frames, features, channels int) *Model {
	return &Model{
		Viewport: NewViewport(width, height, float64(width), float64(height)),
		Adjuster: NewAdjuster(),
		Selection: Selection{
			Foreground: 1,
			Background: 0,
		},
		Display: Display{EditMode: true},
		Navigation: Navigation{
			NumFrames:   max(frames, 1),
			NumFeatures: max(features, 1),
			NumChannels: max(channels, 1),
		},
	}
}

// OnClear registers a hook run whenever in-progress tool state must be
// dropped (feature, channel or frame change).
func (m *Model) OnClear(fn func()) {
	m.clearHooks = append(m.clearHooks, fn)
}

// Clear runs the registered clear hooks.
func (m *Model) Clear() {
	for _, fn := range m.clearHooks {
		fn()
	}
}

// ApplyPayload stores the label state returned by the label service.
func (m *Model) ApplyPayload(p *Payload) {
	m.Labels.Apply(p)
}

// HoveredLabel returns the label under the cursor.
func (m *Model) HoveredLabel() int {
	return m.Selection.Hovered
}
