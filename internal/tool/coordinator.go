package tool

import (
	"fmt"
	"log/slog"
	"sort"

	"labelterm/internal/action"
)

// Name identifies a tool.
type Name string

const (
	ToolSelect    Name = "select"
	ToolPaint     Name = "paint"
	ToolThreshold Name = "threshold"
	ToolAutofit   Name = "autofit"
	ToolWatershed Name = "watershed"
	ToolFlood     Name = "flood"
	ToolTrim      Name = "trim"
)

type Option func(*Coordinator)

// WithDragThreshold sets how far a press may move before it stops being a
// click.
func WithDragThreshold(pixels int) Option {
	return func(c *Coordinator) {
		c.dragThreshold = pixels
	}
}

func WithBrushSize(size int) Option {
	return func(c *Coordinator) {
		c.brushSize = size
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// Coordinator routes pointer events to the active tool and turns finished
// gestures into actions.
type Coordinator struct {
	env    *action.Env
	tools  map[Name]Machine
	active Name

	brush         *Brush
	threshold     *Threshold
	watershed     *Watershed
	dragThreshold int
	brushSize     int

	logger *slog.Logger
}

// New creates a coordinator on the select tool and registers its Reset as
// the model's clear hook.
func New(env *action.Env, opts ...Option) *Coordinator {
	c := &Coordinator{
		env:           env,
		active:        ToolSelect,
		dragThreshold: DefaultDragThreshold,
		brushSize:     DefaultBrushSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With(slog.String("component", "tool"))

	c.brush = NewBrush(c.brushSize)
	c.threshold = &Threshold{}
	c.watershed = NewWatershed(c.dragThreshold)
	c.tools = map[Name]Machine{
		ToolSelect:    NewSelect(c.dragThreshold),
		ToolPaint:     c.brush,
		ToolThreshold: c.threshold,
		ToolAutofit:   NewAutofit(c.dragThreshold),
		ToolWatershed: c.watershed,
		ToolFlood:     NewFlood(c.dragThreshold),
		ToolTrim:      NewTrim(c.dragThreshold),
	}
	env.Model.OnClear(c.Reset)
	return c
}

// Use switches to the named tool, dropping any gesture in progress.
func (c *Coordinator) Use(name Name) error {
	if _, ok := c.tools[name]; !ok {
		return fmt.Errorf("unknown tool %q", name)
	}
	c.Reset()
	c.active = name
	c.logger.Debug("tool selected", slog.String("tool", string(name)))
	return nil
}

func (c *Coordinator) Active() Name {
	return c.active
}

// Names lists the available tools.
func (c *Coordinator) Names() []Name {
	names := make([]Name, 0, len(c.tools))
	for name := range c.tools {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Brush exposes the paint tool's settings.
func (c *Coordinator) Brush() *Brush {
	return c.brush
}

// ThresholdBox returns the box being drawn by the threshold tool.
func (c *Coordinator) ThresholdBox() (action.Point, action.Point, bool) {
	return c.threshold.Box()
}

// WatershedSeed returns the first seed placed by the watershed tool.
func (c *Coordinator) WatershedSeed() (action.Seed, bool) {
	return c.watershed.Seed()
}

// Reset drops the gesture in progress on the active tool.
func (c *Coordinator) Reset() {
	c.tools[c.active].Reset()
}

// Dispatch mirrors the pointer into the model, forwards ev to the active
// tool with the current selection and frame, and returns the actions for
// any finished gesture. The caller adds them to the history.
func (c *Coordinator) Dispatch(ev Event) []*action.Action {
	m := c.env.Model
	m.Selection.Hovered = ev.Label
	m.Viewport.SetCursor(ev.ScreenX, ev.ScreenY)

	ev.Foreground = m.Selection.Foreground
	ev.Background = m.Selection.Background
	ev.Frame = m.Navigation.Frame

	outputs := c.tools[c.active].Handle(ev)
	if len(outputs) == 0 {
		return nil
	}
	actions := make([]*action.Action, 0, len(outputs))
	for _, out := range outputs {
		switch {
		case out.Request != nil:
			c.logger.Debug("edit requested", slog.String("tool", string(c.active)), slog.String("kind", string(out.Request.Kind())))
			actions = append(actions, action.NewEdit(c.env, out.Request))
		case out.Select == SelectForeground:
			actions = append(actions, action.NewSelectForeground(m))
		case out.Select == SelectBackground:
			actions = append(actions, action.NewSelectBackground(m))
		}
	}
	return actions
}
