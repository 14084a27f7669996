package tool

import "labelterm/internal/action"

// DefaultDragThreshold is the distance in image pixels a pressed pointer
// may move before the gesture stops counting as a click.
const DefaultDragThreshold = 10

// gesture tracks one press: idle, pressed, or dragged past the threshold.
type gesture struct {
	threshold int

	pressed bool
	dragged bool
	start   action.Point
}

func (g *gesture) press(ev Event) {
	g.pressed = true
	g.dragged = false
	g.start = ev.point()
}

func (g *gesture) move(ev Event) {
	if !g.pressed || g.dragged {
		return
	}
	dx := ev.X - g.start.X
	dy := ev.Y - g.start.Y
	if dx*dx+dy*dy > g.threshold*g.threshold {
		g.dragged = true
	}
}

// release ends the press and reports whether it was a click.
func (g *gesture) release() bool {
	click := g.pressed && !g.dragged
	g.reset()
	return click
}

func (g *gesture) reset() {
	g.pressed = false
	g.dragged = false
}

// clickMachine runs onClick for every press released without dragging.
type clickMachine struct {
	gesture
	onClick func(ev Event) []Output
}

func (c *clickMachine) Handle(ev Event) []Output {
	switch ev.Type {
	case EventPointerDown:
		c.press(ev)
	case EventPointerMove, EventUpdate:
		c.move(ev)
	case EventPointerUp:
		if c.release() {
			return c.onClick(ev)
		}
	}
	return nil
}

func (c *clickMachine) Reset() {
	c.reset()
}

// NewSelect returns the select tool: a click picks the hovered label as
// foreground, or as background with the modifier held.
func NewSelect(dragThreshold int) Machine {
	return &clickMachine{
		gesture: gesture{threshold: dragThreshold},
		onClick: func(ev Event) []Output {
			if ev.Modifier {
				return selectLabel(SelectBackground)
			}
			if ev.Label == 0 {
				return nil
			}
			return selectLabel(SelectForeground)
		},
	}
}

// NewFlood returns the flood tool: clicking the background label floods
// the region with the foreground, clicking anything else makes it the
// background.
func NewFlood(dragThreshold int) Machine {
	return &clickMachine{
		gesture: gesture{threshold: dragThreshold},
		onClick: func(ev Event) []Output {
			if ev.Modifier {
				return nil
			}
			if ev.Label == ev.Background {
				return edit(action.Flood(ev.Foreground, ev.Frame, ev.point()))
			}
			return selectLabel(SelectBackground)
		},
	}
}

// NewTrim returns the trim tool: clicking the background label removes its
// pieces not connected to the click.
func NewTrim(dragThreshold int) Machine {
	return &clickMachine{
		gesture: gesture{threshold: dragThreshold},
		onClick: func(ev Event) []Output {
			switch {
			case ev.Modifier, ev.Label == 0:
				return nil
			case ev.Label == ev.Background:
				return edit(action.Trim(ev.Background, ev.Frame, ev.point()))
			default:
				return selectLabel(SelectBackground)
			}
		},
	}
}
