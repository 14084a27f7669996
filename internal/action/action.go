// Package action implements reversible changes to the annotation model.
//
// An Action is a tagged variant: Type selects the behaviour, Inverse holds
// the state captured when the action was constructed and Data the state it
// moves to. Do, Undo and Redo dispatch on Type. Local actions mutate the
// model synchronously and return a nil command (navigation may return a
// display refresh); ActionEdit talks to the label service and returns a
// command whose ResultMsg must be handed back through Complete.
package action

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"labelterm/internal/model"
)

type ActionType int

const (
	ActionToggleEdit ActionType = iota
	ActionToggleHighlight
	ActionToggleInvert
	ActionChangeFrame
	ActionChangeFeature
	ActionChangeChannel
	ActionPan
	ActionZoom
	ActionChangeContrast
	ActionChangeBrightness
	ActionResetBrightnessContrast
	ActionSelectForeground
	ActionSelectBackground
	ActionSwapForegroundBackground
	ActionResetLabels
	ActionEdit
)

var actionNames = map[ActionType]string{
	ActionToggleEdit:               "toggle_edit",
	ActionToggleHighlight:          "toggle_highlight",
	ActionToggleInvert:             "toggle_invert",
	ActionChangeFrame:              "change_frame",
	ActionChangeFeature:            "change_feature",
	ActionChangeChannel:            "change_channel",
	ActionPan:                      "pan",
	ActionZoom:                     "zoom",
	ActionChangeContrast:           "change_contrast",
	ActionChangeBrightness:         "change_brightness",
	ActionResetBrightnessContrast:  "reset_brightness_contrast",
	ActionSelectForeground:         "select_foreground",
	ActionSelectBackground:         "select_background",
	ActionSwapForegroundBackground: "swap_foreground_background",
	ActionResetLabels:              "reset_labels",
	ActionEdit:                     "edit",
}

func (t ActionType) String() string {
	if name, ok := actionNames[t]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(t))
}

// Action is one reversible change.
type Action struct {
	ID      uuid.UUID
	Type    ActionType
	Data    interface{}
	Inverse interface{}

	// Err is set when a remote edit fails local validation. Such an action
	// never reaches the network.
	Err error

	model *model.Model
	env   *Env
	done  bool
}

func newAction(m *model.Model, t ActionType, data, inverse interface{}) *Action {
	return &Action{
		ID:      uuid.New(),
		Type:    t,
		Data:    data,
		Inverse: inverse,
		model:   m,
	}
}

// Remote reports whether the action goes through the label service and so
// must be serialized with other remote actions.
func (a *Action) Remote() bool {
	return a.Type == ActionEdit
}

// Do applies the action.
func (a *Action) Do() tea.Cmd {
	switch a.Type {
	case ActionToggleEdit, ActionToggleHighlight, ActionToggleInvert:
		a.toggle()
	case ActionChangeFrame, ActionChangeFeature, ActionChangeChannel:
		data := a.Data.(NavigationData)
		inverse := a.Inverse.(NavigationData)
		a.done = true
		return a.navigate(inverse.Value, data.Value)
	case ActionPan:
		a.pan()
	case ActionZoom:
		a.setZoom(a.Data.(ZoomData))
	case ActionChangeContrast:
		a.model.Adjuster.Contrast = a.Data.(AdjustData).Value
	case ActionChangeBrightness:
		a.model.Adjuster.Brightness = a.Data.(AdjustData).Value
	case ActionResetBrightnessContrast:
		a.setBrightnessContrast(a.Data.(BrightnessContrastData))
	case ActionSelectForeground:
		a.model.Selection.Foreground = a.Data.(LabelData).Label
	case ActionSelectBackground:
		a.model.Selection.Background = a.Data.(LabelData).Label
	case ActionSwapForegroundBackground:
		a.swapLabels()
	case ActionResetLabels:
		a.setLabels(a.Data.(LabelPairData))
	case ActionEdit:
		return a.edit()
	default:
		panic(fmt.Sprintf("action: unknown type %v", a.Type))
	}
	a.done = true
	return nil
}

// Undo restores the state captured before Do.
func (a *Action) Undo() tea.Cmd {
	if a.Err != nil {
		return nil
	}
	a.mustBeDone("undo")
	switch a.Type {
	case ActionToggleEdit, ActionToggleHighlight, ActionToggleInvert:
		a.toggle()
	case ActionChangeFrame, ActionChangeFeature, ActionChangeChannel:
		data := a.Data.(NavigationData)
		inverse := a.Inverse.(NavigationData)
		return a.navigate(data.Value, inverse.Value)
	case ActionPan:
		inverse := a.Inverse.(PanData)
		a.model.Viewport.Sx = inverse.Sx
		a.model.Viewport.Sy = inverse.Sy
	case ActionZoom:
		a.setZoom(a.Inverse.(ZoomData))
	case ActionChangeContrast:
		a.model.Adjuster.Contrast = a.Inverse.(AdjustData).Value
	case ActionChangeBrightness:
		a.model.Adjuster.Brightness = a.Inverse.(AdjustData).Value
	case ActionResetBrightnessContrast:
		a.setBrightnessContrast(a.Inverse.(BrightnessContrastData))
	case ActionSelectForeground:
		a.model.Selection.Foreground = a.Inverse.(LabelData).Label
	case ActionSelectBackground:
		a.model.Selection.Background = a.Inverse.(LabelData).Label
	case ActionSwapForegroundBackground:
		a.swapLabels()
	case ActionResetLabels:
		a.setLabels(a.Inverse.(LabelPairData))
	case ActionEdit:
		return a.step(OpUndo)
	default:
		panic(fmt.Sprintf("action: unknown type %v", a.Type))
	}
	return nil
}

// Redo replays the state produced by the last Do without looking at the
// current model.
func (a *Action) Redo() tea.Cmd {
	if a.Err != nil {
		return nil
	}
	a.mustBeDone("redo")
	switch a.Type {
	case ActionPan:
		data := a.Data.(PanData)
		a.model.Viewport.Sx = data.Sx
		a.model.Viewport.Sy = data.Sy
		return nil
	case ActionEdit:
		return a.step(OpRedo)
	default:
		return a.Do()
	}
}

func (a *Action) mustBeDone(op string) {
	if !a.done {
		panic(fmt.Sprintf("action: %s of %v before it was done", op, a.Type))
	}
}
