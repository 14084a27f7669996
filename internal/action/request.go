package action

import (
	"errors"
	"fmt"
)

// EditKind is the label service's name for an edit.
type EditKind string

const (
	KindPaint        EditKind = "handle_draw"
	KindThreshold    EditKind = "threshold"
	KindAutofit      EditKind = "active_contour"
	KindWatershed    EditKind = "watershed"
	KindFlood        EditKind = "flood_contiguous"
	KindTrim         EditKind = "trim_pixels"
	KindFillHole     EditKind = "fill_hole"
	KindDeleteMask   EditKind = "delete_mask"
	KindNewCell      EditKind = "new_single_cell"
	KindNewCellStack EditKind = "new_cell_stack"
	KindSwap         EditKind = "swap_single_frame"
	KindSwapAll      EditKind = "swap_all_frame"
	KindReplace      EditKind = "replace_single"
	KindReplaceAll   EditKind = "replace"
	KindPredict      EditKind = "predict_single"
	KindPredictStack EditKind = "predict_zstack"
	KindNewTrack     EditKind = "new_track"
	KindSetParent    EditKind = "set_parent"
	KindSwapTracks   EditKind = "swap_tracks"
)

var (
	ErrSameLabel      = errors.New("both labels are the same")
	ErrNoLabel        = errors.New("no label selected")
	ErrEmptyTrace     = errors.New("empty brush trace")
	ErrBrushSize      = errors.New("brush size must be positive")
	ErrEmptyBox       = errors.New("threshold box has no area")
	ErrSeedsMismatch  = errors.New("seeds must be on the same label and frame")
	ErrSeedsCollapsed = errors.New("seeds must be at different positions")
	ErrTrackStart     = errors.New("a track cannot be split at frame 0")
	ErrOwnParent      = errors.New("a cell cannot be its own parent")
)

// ValidationError is an edit rejected before any request was made.
type ValidationError struct {
	Kind EditKind
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(kind EditKind, err error) error {
	return &ValidationError{Kind: kind, Err: err}
}

// Request describes an edit to send to the label service. The set of
// requests is closed; tools build them and NewEdit validates them.
type Request interface {
	Kind() EditKind
	Args() map[string]any
	validate() error
}

// Point is an image pixel position.
type Point struct {
	X, Y int
}

// Paint draws a brush trace with the foreground over the background.
type Paint struct {
	Trace      []Point
	BrushSize  int
	Foreground int
	Background int
	Frame      int
	Erase      bool
}

func (p Paint) Kind() EditKind { return KindPaint }

func (p Paint) Args() map[string]any {
	// The service reads trace points row first.
	trace := make([][2]int, len(p.Trace))
	for i, pt := range p.Trace {
		trace[i] = [2]int{pt.Y, pt.X}
	}
	return map[string]any{
		"trace":        trace,
		"brush_value":  p.Foreground,
		"target_value": p.Background,
		"brush_size":   p.BrushSize,
		"erase":        p.Erase,
		"frame":        p.Frame,
	}
}

func (p Paint) validate() error {
	if len(p.Trace) == 0 {
		return invalid(p.Kind(), ErrEmptyTrace)
	}
	if p.BrushSize <= 0 {
		return invalid(p.Kind(), ErrBrushSize)
	}
	return nil
}

// Threshold labels the bright pixels inside a box.
type Threshold struct {
	First, Second Point
	Label         int
	Frame         int
}

func (t Threshold) Kind() EditKind { return KindThreshold }

func (t Threshold) Args() map[string]any {
	return map[string]any{
		"x1":    t.First.X,
		"y1":    t.First.Y,
		"x2":    t.Second.X,
		"y2":    t.Second.Y,
		"label": t.Label,
		"frame": t.Frame,
	}
}

func (t Threshold) validate() error {
	if t.Label == 0 {
		return invalid(t.Kind(), ErrNoLabel)
	}
	if t.First.X == t.Second.X || t.First.Y == t.Second.Y {
		return invalid(t.Kind(), ErrEmptyBox)
	}
	return nil
}

// Autofit fits the label's outline to the image.
type Autofit struct {
	Label int
	Frame int
}

func (a Autofit) Kind() EditKind { return KindAutofit }

func (a Autofit) Args() map[string]any {
	return map[string]any{"label": a.Label, "frame": a.Frame}
}

func (a Autofit) validate() error {
	if a.Label == 0 {
		return invalid(a.Kind(), ErrNoLabel)
	}
	return nil
}

// Seed is one click of a two-click tool.
type Seed struct {
	Point
	Label int
	Frame int
}

// Watershed splits a label in two around two seeds placed on it.
type Watershed struct {
	First, Second Seed
}

func (w Watershed) Kind() EditKind { return KindWatershed }

func (w Watershed) Args() map[string]any {
	return map[string]any{
		"label":       w.First.Label,
		"frame":       w.First.Frame,
		"x1_location": w.First.X,
		"y1_location": w.First.Y,
		"x2_location": w.Second.X,
		"y2_location": w.Second.Y,
	}
}

func (w Watershed) validate() error {
	if w.First.Label == 0 {
		return invalid(w.Kind(), ErrNoLabel)
	}
	if w.First.Label != w.Second.Label || w.First.Frame != w.Second.Frame {
		return invalid(w.Kind(), ErrSeedsMismatch)
	}
	if w.First.Point == w.Second.Point {
		return invalid(w.Kind(), ErrSeedsCollapsed)
	}
	return nil
}

// Located is an edit applied at one pixel: flood, trim or fill.
type Located struct {
	Op    EditKind
	Label int
	Frame int
	At    Point
}

func Flood(label, frame int, at Point) Located {
	return Located{Op: KindFlood, Label: label, Frame: frame, At: at}
}

func Trim(label, frame int, at Point) Located {
	return Located{Op: KindTrim, Label: label, Frame: frame, At: at}
}

func FillHole(label, frame int, at Point) Located {
	return Located{Op: KindFillHole, Label: label, Frame: frame, At: at}
}

func (l Located) Kind() EditKind { return l.Op }

func (l Located) Args() map[string]any {
	return map[string]any{
		"label":      l.Label,
		"frame":      l.Frame,
		"x_location": l.At.X,
		"y_location": l.At.Y,
	}
}

func (l Located) validate() error {
	// Flooding with label 0 erases a region and is allowed.
	if l.Label == 0 && l.Op != KindFlood {
		return invalid(l.Kind(), ErrNoLabel)
	}
	return nil
}

// SingleLabel is an edit on one label: delete it or give it a new id.
type SingleLabel struct {
	Op    EditKind
	Label int
	Frame int
}

func DeleteMask(label, frame int) SingleLabel {
	return SingleLabel{Op: KindDeleteMask, Label: label, Frame: frame}
}

func NewCell(label, frame int, stack bool) SingleLabel {
	op := KindNewCell
	if stack {
		op = KindNewCellStack
	}
	return SingleLabel{Op: op, Label: label, Frame: frame}
}

func (s SingleLabel) Kind() EditKind { return s.Op }

func (s SingleLabel) Args() map[string]any {
	return map[string]any{"label": s.Label, "frame": s.Frame}
}

// NewTrack gives the label's track a new label from frame on.
func NewTrack(label, frame int) SingleLabel {
	return SingleLabel{Op: KindNewTrack, Label: label, Frame: frame}
}

func (s SingleLabel) validate() error {
	if s.Label == 0 {
		return invalid(s.Kind(), ErrNoLabel)
	}
	if s.Op == KindNewTrack && s.Frame == 0 {
		return invalid(s.Kind(), ErrTrackStart)
	}
	return nil
}

// LabelPair is an edit between two labels: swap or replace, in one frame or
// in all of them.
type LabelPair struct {
	Op     EditKind
	First  int
	Second int
	Frame  int
}

func Swap(first, second, frame int, allFrames bool) LabelPair {
	op := KindSwap
	if allFrames {
		op = KindSwapAll
	}
	return LabelPair{Op: op, First: first, Second: second, Frame: frame}
}

func Replace(first, second, frame int, allFrames bool) LabelPair {
	op := KindReplace
	if allFrames {
		op = KindReplaceAll
	}
	return LabelPair{Op: op, First: first, Second: second, Frame: frame}
}

// SwapTracks exchanges two labels in every frame along with their lineage.
func SwapTracks(first, second int) LabelPair {
	return LabelPair{Op: KindSwapTracks, First: first, Second: second}
}

func (p LabelPair) Kind() EditKind { return p.Op }

func (p LabelPair) Args() map[string]any {
	args := map[string]any{"label_1": p.First, "label_2": p.Second}
	if p.Op == KindSwap || p.Op == KindReplace {
		args["frame"] = p.Frame
	}
	return args
}

func (p LabelPair) validate() error {
	if p.First == p.Second {
		return invalid(p.Kind(), ErrSameLabel)
	}
	if p.Op == KindSwapTracks && (p.First == 0 || p.Second == 0) {
		return invalid(p.Kind(), ErrNoLabel)
	}
	return nil
}

// Lineage records that Parent divided into Daughter.
type Lineage struct {
	Parent   int
	Daughter int
}

func (l Lineage) Kind() EditKind { return KindSetParent }

func (l Lineage) Args() map[string]any {
	return map[string]any{"label_1": l.Parent, "label_2": l.Daughter}
}

func (l Lineage) validate() error {
	if l.Parent == 0 || l.Daughter == 0 {
		return invalid(l.Kind(), ErrNoLabel)
	}
	if l.Parent == l.Daughter {
		return invalid(l.Kind(), ErrOwnParent)
	}
	return nil
}

// Predict asks the service to relabel from model predictions.
type Predict struct {
	Frame  int
	ZStack bool
}

func (p Predict) Kind() EditKind {
	if p.ZStack {
		return KindPredictStack
	}
	return KindPredict
}

func (p Predict) Args() map[string]any {
	if p.ZStack {
		return map[string]any{}
	}
	return map[string]any{"frame": p.Frame}
}

func (p Predict) validate() error { return nil }
