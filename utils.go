package main

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/lucasb-eyer/go-colorful"

	"labelterm/internal/action"
)

// gridSize is the label grid's size in cells.
func (m *model) gridSize() (int, int) {
	return max(m.width, 1), max(m.height-statusRows, 1)
}

// cellImagePoint maps a grid cell to the image pixel under its centre.
func (m *model) cellImagePoint(cellX, cellY int) (action.Point, bool) {
	v := m.state.Viewport
	x, y := v.ImagePoint(float64(cellX)+0.5, float64(cellY)+0.5)
	p := action.Point{X: int(math.Floor(x)), Y: int(math.Floor(y))}
	inside := p.X >= 0 && p.Y >= 0 && p.X < v.Width && p.Y < v.Height
	return p, inside
}

// imageCell is the grid cell showing the centre of image pixel p. When
// zoomed out a cell covers several pixels and p need not be under its centre.
func (m *model) imageCell(p action.Point) (int, int) {
	x, y := m.state.Viewport.ScreenPoint(float64(p.X)+0.5, float64(p.Y)+0.5)
	return int(math.Floor(x)), int(math.Floor(y))
}

// cursorImagePoint is the image pixel under the last pointer position.
func (m *model) cursorImagePoint() action.Point {
	v := m.state.Viewport
	p, _ := m.cellImagePoint(int(v.CursorX), int(v.CursorY))
	return p
}

func copyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}

func (m *model) copyProject() {
	if err := copyToClipboard(m.env.Session); err != nil {
		m.errorMessage = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	m.successMessage = "Copied project " + m.env.Session
}

func (m *model) copyForeground() {
	label := strconv.Itoa(m.state.Selection.Foreground)
	if err := copyToClipboard(label); err != nil {
		m.errorMessage = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	m.successMessage = "Copied label " + label
}

// labelColor gives every label a stable colour; 0 is black.
func labelColor(label int) color.RGBA {
	if label == 0 {
		return color.RGBA{A: 255}
	}
	// Golden-ratio hue steps keep neighbouring ids apart.
	hue := math.Mod(float64(label)*0.618033988749895, 1)
	r, g, b := colorful.Hsv(hue*360, 0.65, 0.95).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func labelHex(label int) string {
	c, _ := colorful.MakeColor(labelColor(label))
	return c.Hex()
}
