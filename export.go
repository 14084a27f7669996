package main

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"os"
	"sort"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

var errNothingToExport = errors.New("nothing to export")

const (
	exportTargetSize = 512
	legendRowHeight  = 16.0
	legendPadding    = 8.0
)

func (m *model) exportName(ext string) string {
	return fmt.Sprintf("%s_frame%03d.%s", m.env.Session, m.state.Navigation.Frame, ext)
}

// exportPNGCmd writes the shown frame's labels off the update loop.
func (m *model) exportPNGCmd() tea.Cmd {
	labels := m.state.Labels.Labels
	filename := m.config.GetExportPath(m.exportName("png"))
	title := fmt.Sprintf("%s frame %d", m.env.Session, m.state.Navigation.Frame)
	return func() tea.Msg {
		if err := exportPNG(filename, labels, title); err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{text: "Exported " + filename}
	}
}

func (m *model) exportLabelsTXTCmd() tea.Cmd {
	labels := m.state.Labels.Labels
	filename := m.config.GetExportPath(m.exportName("txt"))
	return func() tea.Msg {
		if err := exportLabelsTXT(filename, labels); err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{text: "Exported " + filename}
	}
}

// exportPNG draws every pixel of the label array scaled up to roughly
// exportTargetSize, followed by a legend of the labels present.
func exportPNG(filename string, labels [][]int, title string) error {
	height := len(labels)
	if height == 0 || len(labels[0]) == 0 {
		return errNothingToExport
	}
	width := len(labels[0])

	scale := max(exportTargetSize/max(width, height), 1)
	present := presentLabels(labels)

	imageWidth := width * scale
	legendHeight := legendPadding*2 + legendRowHeight*float64(len(present)+1)
	imageHeight := height*scale + int(legendHeight)

	dc := gg.NewContext(max(imageWidth, 160), imageHeight)
	dc.SetColor(color.Black)
	dc.Clear()

	for y, row := range labels {
		for x, label := range row {
			if label == 0 {
				continue
			}
			dc.SetColor(labelColor(label))
			dc.DrawRectangle(float64(x*scale), float64(y*scale), float64(scale), float64(scale))
			dc.Fill()
		}
	}

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	top := float64(height*scale) + legendPadding
	dc.SetColor(color.White)
	dc.DrawString(title, legendPadding, top+legendRowHeight-4)
	for i, label := range present {
		y := top + legendRowHeight*float64(i+1)
		dc.SetColor(labelColor(label))
		dc.DrawRectangle(legendPadding, y+2, 10, 10)
		dc.Fill()
		dc.SetColor(color.White)
		dc.DrawString("label "+strconv.Itoa(label), legendPadding+16, y+legendRowHeight-4)
	}

	return dc.SavePNG(filename)
}

// exportLabelsTXT writes the label array as whitespace separated rows.
func exportLabelsTXT(filename string, labels [][]int) error {
	if len(labels) == 0 {
		return errNothingToExport
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, row := range labels {
		for x, label := range row {
			if x > 0 {
				w.WriteByte(' ')
			}
			w.WriteString(strconv.Itoa(label))
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}

func presentLabels(labels [][]int) []int {
	seen := map[int]bool{}
	for _, row := range labels {
		for _, label := range row {
			if label != 0 {
				seen[label] = true
			}
		}
	}
	present := make([]int, 0, len(seen))
	for label := range seen {
		present = append(present, label)
	}
	sort.Ints(present)
	return present
}
