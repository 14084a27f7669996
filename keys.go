package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit key.Binding
	Help key.Binding

	Undo key.Binding
	Redo key.Binding

	PanLeft  key.Binding
	PanRight key.Binding
	PanUp    key.Binding
	PanDown  key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding

	NextFrame   key.Binding
	PrevFrame   key.Binding
	NextChannel key.Binding
	PrevChannel key.Binding
	NextFeature key.Binding
	PrevFeature key.Binding

	ToggleEdit      key.Binding
	ToggleHighlight key.Binding
	ToggleInvert    key.Binding
	BrightnessUp    key.Binding
	BrightnessDown  key.Binding
	ContrastUp      key.Binding
	ContrastDown    key.Binding
	ResetAdjust     key.Binding

	NewLabel       key.Binding
	SwapSelection  key.Binding
	SelectFromHint key.Binding

	ToolSelect    key.Binding
	ToolPaint     key.Binding
	ToolThreshold key.Binding
	ToolAutofit   key.Binding
	ToolWatershed key.Binding
	ToolFlood     key.Binding
	ToolTrim      key.Binding
	BrushBigger   key.Binding
	BrushSmaller  key.Binding
	ToggleErase   key.Binding

	DeleteMask  key.Binding
	SwapFrame   key.Binding
	SwapAll     key.Binding
	Replace     key.Binding
	ReplaceAll  key.Binding
	NewCell     key.Binding
	NewCellAll  key.Binding
	NewTrack    key.Binding
	SetParent   key.Binding
	SwapTracks  key.Binding
	FillHole    key.Binding
	Predict     key.Binding
	PredictAll  key.Binding
	ExportPNG   key.Binding
	ExportText  key.Binding
	CopyProject key.Binding
	CopyLabel   key.Binding

	Confirm key.Binding
	Cancel  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),

		Undo: key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo")),
		Redo: key.NewBinding(key.WithKeys("ctrl+r", "ctrl+y"), key.WithHelp("ctrl+r", "redo")),

		PanLeft:  key.NewBinding(key.WithKeys("left", "shift+left"), key.WithHelp("←", "pan left")),
		PanRight: key.NewBinding(key.WithKeys("right", "shift+right"), key.WithHelp("→", "pan right")),
		PanUp:    key.NewBinding(key.WithKeys("up", "shift+up"), key.WithHelp("↑", "pan up")),
		PanDown:  key.NewBinding(key.WithKeys("down", "shift+down"), key.WithHelp("↓", "pan down")),
		ZoomIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),

		NextFrame:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "next frame")),
		PrevFrame:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "previous frame")),
		NextChannel: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "next channel")),
		PrevChannel: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "previous channel")),
		NextFeature: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "next feature")),
		PrevFeature: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "previous feature")),

		ToggleEdit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit mode")),
		ToggleHighlight: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "highlight")),
		ToggleInvert:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "invert")),
		BrightnessUp:    key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "brighter")),
		BrightnessDown:  key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "darker")),
		ContrastUp:      key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "more contrast")),
		ContrastDown:    key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "less contrast")),
		ResetAdjust:     key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset adjustment")),

		NewLabel:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "unused label")),
		SwapSelection:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "swap fg/bg")),
		SelectFromHint: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "hovered → fg")),

		ToolSelect:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "select")),
		ToolPaint:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "brush")),
		ToolThreshold: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "threshold")),
		ToolAutofit:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "autofit")),
		ToolWatershed: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "watershed")),
		ToolFlood:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "flood")),
		ToolTrim:      key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "trim")),
		BrushBigger:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "bigger brush")),
		BrushSmaller:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "smaller brush")),
		ToggleErase:   key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "erase")),

		DeleteMask:  key.NewBinding(key.WithKeys("delete", "backspace"), key.WithHelp("del", "delete fg")),
		SwapFrame:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "swap fg/bg in frame")),
		SwapAll:     key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "swap fg/bg everywhere")),
		Replace:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "replace bg with fg")),
		ReplaceAll:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "replace everywhere")),
		NewCell:     key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "new cell id")),
		NewCellAll:  key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new cell id in stack")),
		NewTrack:    key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "new track from frame")),
		SetParent:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "fg is parent of bg")),
		SwapTracks:  key.NewBinding(key.WithKeys("alt+s"), key.WithHelp("alt+s", "swap tracks")),
		FillHole:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "fill hole")),
		Predict:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "predict frame")),
		PredictAll:  key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "predict stack")),
		ExportPNG:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "export png")),
		ExportText:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "export txt")),
		CopyProject: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy project")),
		CopyLabel:   key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "copy fg label")),

		Confirm: key.NewBinding(key.WithKeys("y", "Y", "enter"), key.WithHelp("y", "yes")),
		Cancel:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Undo, k.Redo, k.ToolPaint, k.ToolSelect, k.NextFrame, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PanLeft, k.PanRight, k.PanUp, k.PanDown, k.ZoomIn, k.ZoomOut, k.Undo, k.Redo},
		{k.NextFrame, k.PrevFrame, k.NextChannel, k.PrevChannel, k.NextFeature, k.PrevFeature},
		{k.ToggleEdit, k.ToggleHighlight, k.ToggleInvert, k.BrightnessUp, k.BrightnessDown, k.ContrastUp, k.ContrastDown, k.ResetAdjust},
		{k.ToolSelect, k.ToolPaint, k.ToolThreshold, k.ToolAutofit, k.ToolWatershed, k.ToolFlood, k.ToolTrim, k.BrushBigger, k.BrushSmaller, k.ToggleErase},
		{k.NewLabel, k.SwapSelection, k.SelectFromHint, k.DeleteMask, k.SwapFrame, k.SwapAll, k.Replace, k.ReplaceAll},
		{k.NewCell, k.NewCellAll, k.FillHole, k.Predict, k.PredictAll, k.NewTrack, k.SetParent, k.SwapTracks},
		{k.ExportPNG, k.ExportText, k.CopyProject, k.CopyLabel, k.Quit},
	}
}
