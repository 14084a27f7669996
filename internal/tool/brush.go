package tool

import "labelterm/internal/action"

// DefaultBrushSize is the brush radius in image pixels.
const DefaultBrushSize = 5

// Brush paints the foreground along the pointer trace. A press with the
// modifier held does nothing.
type Brush struct {
	Size  int
	Erase bool

	dragging bool
	trace    []action.Point
}

func NewBrush(size int) *Brush {
	if size <= 0 {
		size = DefaultBrushSize
	}
	return &Brush{Size: size}
}

func (b *Brush) Handle(ev Event) []Output {
	switch ev.Type {
	case EventPointerDown:
		if b.dragging || ev.Modifier {
			return nil
		}
		b.dragging = true
		b.trace = []action.Point{ev.point()}
	case EventPointerMove, EventUpdate:
		if b.dragging {
			b.add(ev.point())
		}
	case EventPointerUp:
		if !b.dragging {
			return nil
		}
		req := action.Paint{
			Trace:      b.trace,
			BrushSize:  b.Size,
			Foreground: ev.Foreground,
			Background: ev.Background,
			Frame:      ev.Frame,
			Erase:      b.Erase,
		}
		b.Reset()
		return edit(req)
	}
	return nil
}

// add appends p unless the pointer has not moved since the last point.
func (b *Brush) add(p action.Point) {
	if n := len(b.trace); n > 0 && b.trace[n-1] == p {
		return
	}
	b.trace = append(b.trace, p)
}

// Trace returns the points collected by the stroke in progress.
func (b *Brush) Trace() []action.Point {
	return b.trace
}

func (b *Brush) Reset() {
	b.dragging = false
	b.trace = nil
}

// Threshold draws a box from press to release and asks the service to
// label the bright pixels inside it with the foreground.
type Threshold struct {
	dragging bool
	first    action.Point
	second   action.Point
}

func (t *Threshold) Handle(ev Event) []Output {
	switch ev.Type {
	case EventPointerDown:
		if t.dragging {
			return nil
		}
		t.dragging = true
		t.first = ev.point()
		t.second = t.first
	case EventPointerMove, EventUpdate:
		if t.dragging {
			t.second = ev.point()
		}
	case EventPointerUp:
		if !t.dragging {
			return nil
		}
		req := action.Threshold{
			First:  t.first,
			Second: ev.point(),
			Label:  ev.Foreground,
			Frame:  ev.Frame,
		}
		t.Reset()
		return edit(req)
	}
	return nil
}

// Box returns the corners of the box being drawn.
func (t *Threshold) Box() (action.Point, action.Point, bool) {
	return t.first, t.second, t.dragging
}

func (t *Threshold) Reset() {
	t.dragging = false
	t.first = action.Point{}
	t.second = action.Point{}
}
