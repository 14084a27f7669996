package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"labelterm/internal/action"
	"labelterm/internal/tool"
)

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w, h := m.gridSize()
		m.state.Viewport.Resize(float64(w), float64(h))
		m.help.Width = msg.Width
		return m, nil

	case action.ResultMsg:
		m.complete(msg)
		return m, nil

	case action.DisplayMsg:
		m.applyDisplay(msg)
		return m, nil

	case statusMsg:
		if msg.err != nil {
			m.reportError("export", msg.err)
		} else {
			m.errorMessage = ""
			m.successMessage = msg.text
		}
		return m, nil

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		switch m.mode {
		case ModeHelp:
			if key.Matches(msg, m.keys.Help, m.keys.Cancel, m.keys.Quit) {
				m.mode = ModeNormal
			}
			return m, nil
		case ModeConfirm:
			return m.handleConfirm(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmDeleteMask:
			return m, m.deleteMask()
		}
	case key.Matches(msg, m.keys.Cancel):
		m.mode = ModeNormal
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errorMessage = ""
	m.successMessage = ""
	k := m.keys
	sel := m.state.Selection
	frame := m.state.Navigation.Frame

	switch {
	case key.Matches(msg, k.Quit):
		if m.config.Confirmations && m.history.Pending() {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.mode = ModeHelp
	case key.Matches(msg, k.Undo):
		return m, m.undo()
	case key.Matches(msg, k.Redo):
		return m, m.redo()

	case key.Matches(msg, k.PanLeft, k.PanRight, k.PanUp, k.PanDown):
		return m, m.handlePan(msg.String(), m.getMoveSpeed(msg.String()))
	case key.Matches(msg, k.ZoomIn):
		return m, m.handleZoom(-zoomStep)
	case key.Matches(msg, k.ZoomOut):
		return m, m.handleZoom(zoomStep)

	case key.Matches(msg, k.NextFrame):
		return m, m.changeFrame(1)
	case key.Matches(msg, k.PrevFrame):
		return m, m.changeFrame(-1)
	case key.Matches(msg, k.NextChannel):
		return m, m.changeChannel(1)
	case key.Matches(msg, k.PrevChannel):
		return m, m.changeChannel(-1)
	case key.Matches(msg, k.NextFeature):
		return m, m.changeFeature(1)
	case key.Matches(msg, k.PrevFeature):
		return m, m.changeFeature(-1)

	case key.Matches(msg, k.ToggleEdit):
		return m, m.addAction(action.NewToggleEdit(m.state))
	case key.Matches(msg, k.ToggleHighlight):
		return m, m.addAction(action.NewToggleHighlight(m.state))
	case key.Matches(msg, k.ToggleInvert):
		return m, m.addAction(action.NewToggleInvert(m.state))
	case key.Matches(msg, k.BrightnessUp):
		return m, m.addAction(action.NewChangeBrightness(m.state, 1))
	case key.Matches(msg, k.BrightnessDown):
		return m, m.addAction(action.NewChangeBrightness(m.state, -1))
	case key.Matches(msg, k.ContrastUp):
		return m, m.addAction(action.NewChangeContrast(m.state, 1))
	case key.Matches(msg, k.ContrastDown):
		return m, m.addAction(action.NewChangeContrast(m.state, -1))
	case key.Matches(msg, k.ResetAdjust):
		return m, m.addAction(action.NewResetBrightnessContrast(m.state))

	case key.Matches(msg, k.NewLabel):
		return m, m.addAction(action.NewResetLabels(m.state))
	case key.Matches(msg, k.SwapSelection):
		return m, m.addAction(action.NewSwapForegroundBackground(m.state))
	case key.Matches(msg, k.SelectFromHint):
		return m, m.addAction(action.NewSelectForeground(m.state))

	case key.Matches(msg, k.ToolSelect):
		m.useTool(tool.ToolSelect)
	case key.Matches(msg, k.ToolPaint):
		m.useTool(tool.ToolPaint)
	case key.Matches(msg, k.ToolThreshold):
		m.useTool(tool.ToolThreshold)
	case key.Matches(msg, k.ToolAutofit):
		m.useTool(tool.ToolAutofit)
	case key.Matches(msg, k.ToolWatershed):
		m.useTool(tool.ToolWatershed)
	case key.Matches(msg, k.ToolFlood):
		m.useTool(tool.ToolFlood)
	case key.Matches(msg, k.ToolTrim):
		m.useTool(tool.ToolTrim)
	case key.Matches(msg, k.BrushBigger):
		m.tools.Brush().Size++
	case key.Matches(msg, k.BrushSmaller):
		if b := m.tools.Brush(); b.Size > 1 {
			b.Size--
		}
	case key.Matches(msg, k.ToggleErase):
		b := m.tools.Brush()
		b.Erase = !b.Erase

	case key.Matches(msg, k.DeleteMask):
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmDeleteMask
			return m, nil
		}
		return m, m.deleteMask()
	case key.Matches(msg, k.SwapFrame):
		return m, m.edit(action.Swap(sel.Foreground, sel.Background, frame, false))
	case key.Matches(msg, k.SwapAll):
		return m, m.edit(action.Swap(sel.Foreground, sel.Background, frame, true))
	case key.Matches(msg, k.Replace):
		return m, m.edit(action.Replace(sel.Foreground, sel.Background, frame, false))
	case key.Matches(msg, k.ReplaceAll):
		return m, m.edit(action.Replace(sel.Foreground, sel.Background, frame, true))
	case key.Matches(msg, k.NewCell):
		return m, m.edit(action.NewCell(sel.Foreground, frame, false))
	case key.Matches(msg, k.NewCellAll):
		return m, m.edit(action.NewCell(sel.Foreground, frame, true))
	case key.Matches(msg, k.NewTrack):
		return m, m.edit(action.NewTrack(sel.Foreground, frame))
	case key.Matches(msg, k.SetParent):
		return m, m.edit(action.Lineage{Parent: sel.Foreground, Daughter: sel.Background})
	case key.Matches(msg, k.SwapTracks):
		return m, m.edit(action.SwapTracks(sel.Foreground, sel.Background))
	case key.Matches(msg, k.FillHole):
		return m, m.edit(action.FillHole(sel.Foreground, frame, m.cursorImagePoint()))
	case key.Matches(msg, k.Predict):
		return m, m.edit(action.Predict{Frame: frame})
	case key.Matches(msg, k.PredictAll):
		return m, m.edit(action.Predict{ZStack: true})

	case key.Matches(msg, k.ExportPNG):
		return m, m.exportPNGCmd()
	case key.Matches(msg, k.ExportText):
		return m, m.exportLabelsTXTCmd()
	case key.Matches(msg, k.CopyProject):
		m.copyProject()
	case key.Matches(msg, k.CopyLabel):
		m.copyForeground()
	}
	return m, nil
}

func (m *model) edit(req action.Request) tea.Cmd {
	return m.addAction(action.NewEdit(m.env, req))
}

func (m *model) deleteMask() tea.Cmd {
	return m.edit(action.DeleteMask(m.state.Selection.Foreground, m.state.Navigation.Frame))
}

func (m *model) useTool(name tool.Name) {
	if err := m.tools.Use(name); err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.successMessage = "Tool: " + string(name)
}

// handleMouse turns terminal mouse reports into tool events. The wheel
// zooms around the pointer; with ctrl it changes contrast and with alt
// brightness.
func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	w, h := m.gridSize()
	if msg.X < 0 || msg.Y < 0 || msg.X >= w || msg.Y >= h {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		change := 1
		if msg.Button == tea.MouseButtonWheelDown {
			change = -1
		}
		switch {
		case msg.Ctrl:
			return m.addAction(action.NewChangeContrast(m.state, change))
		case msg.Alt:
			return m.addAction(action.NewChangeBrightness(m.state, change))
		}
		return m.addAction(action.NewZoomAt(m.state, -float64(change)*zoomStep, float64(msg.X)+0.5, float64(msg.Y)+0.5))
	}

	p, _ := m.cellImagePoint(msg.X, msg.Y)
	ev := tool.Event{
		Type:     tool.EventUpdate,
		X:        p.X,
		Y:        p.Y,
		ScreenX:  float64(msg.X),
		ScreenY:  float64(msg.Y),
		Label:    m.state.Labels.LabelAt(p.X, p.Y),
		Modifier: msg.Shift || msg.Alt || msg.Ctrl,
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		m.pressed = true
		ev.Type = tool.EventPointerDown
	case tea.MouseActionRelease:
		if !m.pressed {
			return nil
		}
		m.pressed = false
		ev.Type = tool.EventPointerUp
	case tea.MouseActionMotion:
		if m.pressed {
			ev.Type = tool.EventPointerMove
		}
	}

	// Outside edit mode the pointer only hovers.
	if !m.state.Display.EditMode && ev.Type != tool.EventUpdate {
		ev.Type = tool.EventUpdate
	}
	return m.addActions(m.tools.Dispatch(ev))
}
