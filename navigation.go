package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"labelterm/internal/action"
)

// handlePan moves the view in image pixels; dx/dy follow the key direction.
func (m *model) handlePan(key string, speed float64) tea.Cmd {
	v := m.state.Viewport
	// One cell of the grid in image pixels.
	stepX := panStep * speed * v.SWidth / max(v.ScaledWidth, 1)
	stepY := panStep * speed * v.SHeight / max(v.ScaledHeight, 1)

	var dx, dy float64
	switch key {
	case "left", "shift+left":
		dx = stepX
	case "right", "shift+right":
		dx = -stepX
	case "up", "shift+up":
		dy = stepY
	case "down", "shift+down":
		dy = -stepY
	}
	return m.addAction(action.NewPan(m.state, dx, dy))
}

func (m *model) getMoveSpeed(key string) float64 {
	switch key {
	case "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

// handleZoom zooms around the grid centre; the mouse wheel zooms around the
// pointer instead.
func (m *model) handleZoom(dZoom float64) tea.Cmd {
	v := m.state.Viewport
	return m.addAction(action.NewZoomAt(m.state, dZoom, v.ScaledWidth/2, v.ScaledHeight/2))
}

func (m *model) changeFrame(delta int) tea.Cmd {
	return m.addAction(action.NewChangeFrame(m.env, m.state.Navigation.Frame+delta))
}

func (m *model) changeChannel(delta int) tea.Cmd {
	return m.addAction(action.NewChangeChannel(m.env, m.state.Navigation.Channel+delta))
}

func (m *model) changeFeature(delta int) tea.Cmd {
	return m.addAction(action.NewChangeFeature(m.env, m.state.Navigation.Feature+delta))
}
