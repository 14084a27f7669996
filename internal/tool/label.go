package tool

import "labelterm/internal/action"

// Autofit fits the foreground label to the image on a click. Clicking any
// other label selects it as foreground instead.
type Autofit struct {
	gesture
}

func NewAutofit(dragThreshold int) *Autofit {
	return &Autofit{gesture: gesture{threshold: dragThreshold}}
}

func (a *Autofit) Handle(ev Event) []Output {
	switch ev.Type {
	case EventPointerDown:
		a.press(ev)
	case EventPointerMove, EventUpdate:
		a.move(ev)
	case EventPointerUp:
		if !a.release() {
			return nil
		}
		switch {
		case ev.Modifier, ev.Label == 0:
			return nil
		case ev.Label == ev.Foreground:
			return edit(action.Autofit{Label: ev.Label, Frame: ev.Frame})
		default:
			return selectLabel(SelectForeground)
		}
	}
	return nil
}

func (a *Autofit) Reset() {
	a.reset()
}

// Watershed splits a label around two seeds. The first click on a label
// places a seed; a second click on the same label in the same frame splits
// it, anything else drops the seed.
type Watershed struct {
	gesture

	seeded bool
	seed   action.Seed
}

func NewWatershed(dragThreshold int) *Watershed {
	return &Watershed{gesture: gesture{threshold: dragThreshold}}
}

func (w *Watershed) Handle(ev Event) []Output {
	switch ev.Type {
	case EventPointerDown:
		w.press(ev)
	case EventPointerMove, EventUpdate:
		w.move(ev)
	case EventPointerUp:
		if w.release() {
			return w.click(ev)
		}
	}
	return nil
}

func (w *Watershed) click(ev Event) []Output {
	second := action.Seed{Point: ev.point(), Label: ev.Label, Frame: ev.Frame}
	if !w.seeded {
		if ev.Modifier || ev.Label == 0 {
			return nil
		}
		w.seeded = true
		w.seed = second
		return nil
	}

	first := w.seed
	w.seeded = false
	w.seed = action.Seed{}
	if ev.Modifier || second.Label != first.Label || second.Frame != first.Frame {
		return nil
	}
	return edit(action.Watershed{First: first, Second: second})
}

// Seed returns the placed seed, if any.
func (w *Watershed) Seed() (action.Seed, bool) {
	return w.seed, w.seeded
}

func (w *Watershed) Reset() {
	w.reset()
	w.seeded = false
	w.seed = action.Seed{}
}
