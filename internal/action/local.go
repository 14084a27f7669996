package action

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"labelterm/internal/model"
)

// Display attributes understood by the label service's changedisplay call.
const (
	DisplayFrame   = "frame"
	DisplayFeature = "feature"
	DisplayChannel = "channel"
)

type NavigationData struct {
	Value int
}

// PanData is the offset change. Sx/Sy of Data are filled in by Do and
// replayed by Redo.
type PanData struct {
	Dx, Dy float64
	Sx, Sy float64
}

type ZoomData struct {
	Zoom   float64
	Sx, Sy float64
}

type AdjustData struct {
	Value int
}

type BrightnessContrastData struct {
	Brightness int
	Contrast   int
}

type LabelData struct {
	Label int
}

type LabelPairData struct {
	Foreground int
	Background int
}

func NewToggleEdit(m *model.Model) *Action {
	return newAction(m, ActionToggleEdit, nil, nil)
}

func NewToggleHighlight(m *model.Model) *Action {
	return newAction(m, ActionToggleHighlight, nil, nil)
}

func NewToggleInvert(m *model.Model) *Action {
	return newAction(m, ActionToggleInvert, nil, nil)
}

func (a *Action) toggle() {
	switch a.Type {
	case ActionToggleEdit:
		a.model.Display.EditMode = !a.model.Display.EditMode
	case ActionToggleHighlight:
		a.model.Display.Highlight = !a.model.Display.Highlight
	case ActionToggleInvert:
		a.model.Adjuster.Invert = !a.model.Adjuster.Invert
	}
}

// NewChangeFrame moves to frame, wrapping around the frame count.
func NewChangeFrame(env *Env, frame int) *Action {
	nav := env.Model.Navigation
	return newNavigation(env, ActionChangeFrame, nav.Frame, wrap(frame, nav.NumFrames))
}

// NewChangeFeature moves to feature, wrapping around the feature count.
func NewChangeFeature(env *Env, feature int) *Action {
	nav := env.Model.Navigation
	return newNavigation(env, ActionChangeFeature, nav.Feature, wrap(feature, nav.NumFeatures))
}

// NewChangeChannel moves to channel, wrapping around the channel count. The
// outgoing channel's adjustment is remembered and the incoming one restored.
func NewChangeChannel(env *Env, channel int) *Action {
	nav := env.Model.Navigation
	return newNavigation(env, ActionChangeChannel, nav.Channel, wrap(channel, nav.NumChannels))
}

func newNavigation(env *Env, t ActionType, oldValue, newValue int) *Action {
	a := newAction(env.Model, t, NavigationData{Value: newValue}, NavigationData{Value: oldValue})
	a.env = env
	return a
}

func (a *Action) navigate(from, to int) tea.Cmd {
	nav := &a.model.Navigation
	var attr string
	switch a.Type {
	case ActionChangeFrame:
		nav.Frame = to
		attr = DisplayFrame
	case ActionChangeFeature:
		nav.Feature = to
		attr = DisplayFeature
	case ActionChangeChannel:
		a.model.Adjuster.Switch(from, to)
		nav.Channel = to
		attr = DisplayChannel
	}
	a.model.Clear()
	return a.refresh(attr, to)
}

// refresh fetches the newly shown image when the gateway supports it. The
// fetch does not touch the mutation log and is not serialized with edits.
func (a *Action) refresh(attr string, value int) tea.Cmd {
	if a.env == nil {
		return nil
	}
	displayer, ok := a.env.Gateway.(Displayer)
	if !ok {
		return nil
	}
	session := a.env.Session
	timeout := a.env.Timeout
	return func() tea.Msg {
		ctx, cancel := callContext(timeout)
		defer cancel()
		payload, err := displayer.ChangeDisplay(ctx, session, attr, value)
		return DisplayMsg{Attr: attr, Value: value, Payload: payload, Err: err}
	}
}

func wrap(n, count int) int {
	if count <= 0 {
		return 0
	}
	return ((n % count) + count) % count
}

// NewPan shifts the viewport by (-dx, -dy).
func NewPan(m *model.Model, dx, dy float64) *Action {
	v := m.Viewport
	return newAction(m, ActionPan,
		PanData{Dx: -dx, Dy: -dy},
		PanData{Sx: v.Sx, Sy: v.Sy},
	)
}

func (a *Action) pan() {
	v := a.model.Viewport
	data := a.Data.(PanData)
	v.Sx += data.Dx
	v.Sy += data.Dy
	data.Sx = v.Sx
	data.Sy = v.Sy
	a.Data = data
}

// NewZoom zooms around the cursor. A negative dZoom zooms in.
func NewZoom(m *model.Model, dZoom float64) *Action {
	v := m.Viewport
	return NewZoomAt(m, dZoom, v.CursorX, v.CursorY)
}

// NewZoomAt zooms keeping the image point under the screen position
// (anchorX, anchorY) fixed.
func NewZoomAt(m *model.Model, dZoom, anchorX, anchorY float64) *Action {
	v := m.Viewport
	zoom := math.Max(v.Zoom-10*dZoom, v.ZoomLimit)

	newWidth, newHeight := v.SourceSize(zoom)
	propX := anchorX / v.ScaledWidth
	propY := anchorY / v.ScaledHeight
	dx := propX * (newWidth - v.SWidth)
	dy := propY * (newHeight - v.SHeight)

	return newAction(m, ActionZoom,
		ZoomData{Zoom: zoom, Sx: v.Sx - dx, Sy: v.Sy - dy},
		ZoomData{Zoom: v.Zoom, Sx: v.Sx, Sy: v.Sy},
	)
}

func (a *Action) setZoom(z ZoomData) {
	v := a.model.Viewport
	v.SetZoom(z.Zoom)
	v.Sx = z.Sx
	v.Sy = z.Sy
}

// NewChangeContrast steps contrast in the direction of change.
func NewChangeContrast(m *model.Model, change int) *Action {
	adj := m.Adjuster
	return newAction(m, ActionChangeContrast,
		AdjustData{Value: adj.StepContrast(change)},
		AdjustData{Value: adj.Contrast},
	)
}

// NewChangeBrightness steps brightness in the direction of change.
func NewChangeBrightness(m *model.Model, change int) *Action {
	adj := m.Adjuster
	return newAction(m, ActionChangeBrightness,
		AdjustData{Value: adj.StepBrightness(change)},
		AdjustData{Value: adj.Brightness},
	)
}

func NewResetBrightnessContrast(m *model.Model) *Action {
	adj := m.Adjuster
	return newAction(m, ActionResetBrightnessContrast,
		BrightnessContrastData{},
		BrightnessContrastData{Brightness: adj.Brightness, Contrast: adj.Contrast},
	)
}

func (a *Action) setBrightnessContrast(bc BrightnessContrastData) {
	a.model.Adjuster.Brightness = bc.Brightness
	a.model.Adjuster.Contrast = bc.Contrast
}

// NewSelectForeground makes the hovered label the foreground.
func NewSelectForeground(m *model.Model) *Action {
	return newAction(m, ActionSelectForeground,
		LabelData{Label: m.HoveredLabel()},
		LabelData{Label: m.Selection.Foreground},
	)
}

// NewSelectBackground makes the hovered label the background.
func NewSelectBackground(m *model.Model) *Action {
	return newAction(m, ActionSelectBackground,
		LabelData{Label: m.HoveredLabel()},
		LabelData{Label: m.Selection.Background},
	)
}

func NewSwapForegroundBackground(m *model.Model) *Action {
	return newAction(m, ActionSwapForegroundBackground, nil, nil)
}

func (a *Action) swapLabels() {
	sel := &a.model.Selection
	sel.Foreground, sel.Background = sel.Background, sel.Foreground
}

// NewResetLabels picks an unused foreground label and the zero background.
func NewResetLabels(m *model.Model) *Action {
	sel := m.Selection
	return newAction(m, ActionResetLabels,
		LabelPairData{Foreground: m.Labels.MaxLabel() + 1, Background: 0},
		LabelPairData{Foreground: sel.Foreground, Background: sel.Background},
	)
}

func (a *Action) setLabels(pair LabelPairData) {
	a.model.Selection.Foreground = pair.Foreground
	a.model.Selection.Background = pair.Background
}
