package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"labelterm/internal/action"
)

var (
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3a3a3a"))
	outsideStyle = lipgloss.NewStyle()
	boxStyle     = lipgloss.NewStyle().Reverse(true)
	seedStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#d7005f"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#e4e4e4")).Background(lipgloss.Color("#303030"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaf00")).Background(lipgloss.Color("#303030")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87d787"))
	helpTitle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)

func (m model) View() string {
	if m.mode == ModeHelp {
		return m.helpView()
	}

	var b strings.Builder
	for _, line := range m.renderGrid() {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(m.statusLine())
	b.WriteByte('\n')
	b.WriteString(m.messageLine())
	return b.String()
}

// renderGrid draws one cell per grid position, coloured by the label of
// the image pixel under the cell centre.
func (m model) renderGrid() []string {
	w, h := m.gridSize()
	sel := m.state.Selection
	highlight := m.state.Display.Highlight

	boxA, boxB, boxActive := m.tools.ThresholdBox()
	seed, seeded := m.tools.WatershedSeed()
	seedX, seedY := m.imageCell(seed.Point)

	styles := map[int]lipgloss.Style{}
	lines := make([]string, h)
	for y := 0; y < h; y++ {
		var row strings.Builder
		for x := 0; x < w; x++ {
			p, inside := m.cellImagePoint(x, y)
			if !inside {
				row.WriteString(outsideStyle.Render(" "))
				continue
			}
			switch {
			case seeded && x == seedX && y == seedY:
				row.WriteString(seedStyle.Render("x"))
				continue
			case boxActive && inBox(p, boxA, boxB):
				row.WriteString(boxStyle.Render(cellGlyph(m.state.Labels.LabelAt(p.X, p.Y), sel.Foreground, highlight)))
				continue
			}

			label := m.state.Labels.LabelAt(p.X, p.Y)
			if label == 0 {
				row.WriteString(emptyStyle.Render("·"))
				continue
			}
			style, ok := styles[label]
			if !ok {
				style = lipgloss.NewStyle().Foreground(lipgloss.Color(labelHex(label)))
				styles[label] = style
			}
			row.WriteString(style.Render(cellGlyph(label, sel.Foreground, highlight)))
		}
		lines[y] = row.String()
	}
	return lines
}

func cellGlyph(label, foreground int, highlight bool) string {
	switch {
	case label == 0:
		return "·"
	case highlight && label == foreground:
		return "▓"
	default:
		return "█"
	}
}

func inBox(p, a, b action.Point) bool {
	return p.X >= min(a.X, b.X) && p.X <= max(a.X, b.X) &&
		p.Y >= min(a.Y, b.Y) && p.Y <= max(a.Y, b.Y)
}

func (m model) statusLine() string {
	nav := m.state.Navigation
	sel := m.state.Selection
	adj := m.state.Adjuster
	undo, redo := m.history.Len()

	toolInfo := string(m.tools.Active())
	if b := m.tools.Brush(); m.tools.Active() == "paint" {
		toolInfo = fmt.Sprintf("paint %d", b.Size)
		if b.Erase {
			toolInfo += " erase"
		}
	}
	mode := "VIEW"
	if m.state.Display.EditMode {
		mode = "EDIT"
	}
	invert := ""
	if adj.Invert {
		invert = " inv"
	}

	status := fmt.Sprintf(" %s | %s | fg %d bg %d hover %d | frame %d/%d ch %d/%d feat %d/%d | zoom %.0f%% | b%+d c%+d%s | undo %d redo %d ",
		mode, toolInfo,
		sel.Foreground, sel.Background, sel.Hovered,
		nav.Frame, nav.NumFrames, nav.Channel, nav.NumChannels, nav.Feature, nav.NumFeatures,
		m.state.Viewport.Zoom,
		adj.Brightness, adj.Contrast, invert,
		undo, redo,
	)
	line := statusStyle.Render(status)
	if m.history.Pending() {
		line += pendingStyle.Render(" saving… ")
	}
	return line
}

func (m model) messageLine() string {
	switch {
	case m.mode == ModeConfirm:
		return errorStyle.Render(m.confirmPrompt())
	case m.errorMessage != "":
		return errorStyle.Render(m.errorMessage)
	case m.successMessage != "":
		return successStyle.Render(m.successMessage)
	default:
		return m.help.ShortHelpView(m.keys.ShortHelp())
	}
}

func (m model) confirmPrompt() string {
	switch m.confirmAction {
	case ConfirmQuit:
		return "An edit is still being saved. Quit anyway? (y/n)"
	case ConfirmDeleteMask:
		return fmt.Sprintf("Delete label %d in frame %d? (y/n)", m.state.Selection.Foreground, m.state.Navigation.Frame)
	default:
		return "Are you sure? (y/n)"
	}
}

func (m model) helpView() string {
	title := helpTitle.Render(fmt.Sprintf("labelterm: project %s", m.env.Session))
	return title + "\n" + m.help.FullHelpView(m.keys.FullHelp()) + "\n\n" + "Press ? or esc to close"
}
