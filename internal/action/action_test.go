package action

import (
	"context"
	"errors"
	"math"
	"testing"

	"labelterm/internal/model"
)

type fakeGateway struct {
	edits   []string
	undos   int
	redos   int
	payload *model.Payload
	err     error
}

func (g *fakeGateway) Edit(_ context.Context, _ string, kind string, _ map[string]any) (*model.Payload, error) {
	g.edits = append(g.edits, kind)
	return g.payload, g.err
}

func (g *fakeGateway) Undo(context.Context, string) (*model.Payload, error) {
	g.undos++
	return g.payload, g.err
}

func (g *fakeGateway) Redo(context.Context, string) (*model.Payload, error) {
	g.redos++
	return g.payload, g.err
}

type displayGateway struct {
	fakeGateway
	attr  string
	value int
}

func (g *displayGateway) ChangeDisplay(_ context.Context, _ string, attr string, value int) (*model.Payload, error) {
	g.attr = attr
	g.value = value
	return &model.Payload{}, nil
}

func newTestModel() *model.Model {
	return model.New(64, 48, 5, 2, 3)
}

func TestTogglesAreSelfInverse(t *testing.T) {
	m := newTestModel()
	for _, a := range []*Action{NewToggleEdit(m), NewToggleHighlight(m), NewToggleInvert(m)} {
		before := *m.Adjuster
		display := m.Display

		a.Do()
		if m.Display == display && m.Adjuster.Invert == before.Invert {
			t.Fatalf("%v: Do changed nothing", a.Type)
		}
		a.Undo()
		if m.Display != display || m.Adjuster.Invert != before.Invert {
			t.Fatalf("%v: Undo did not restore state", a.Type)
		}
		a.Redo()
		a.Undo()
		if m.Display != display || m.Adjuster.Invert != before.Invert {
			t.Fatalf("%v: Redo then Undo did not restore state", a.Type)
		}
	}
}

func TestPanRoundTrip(t *testing.T) {
	m := newTestModel()
	m.Viewport.Sx, m.Viewport.Sy = 2, 4

	a := NewPan(m, 5, -3)
	a.Do()
	if m.Viewport.Sx != -3 || m.Viewport.Sy != 7 {
		t.Fatalf("expected offset (-3,7) after pan, got (%v,%v)", m.Viewport.Sx, m.Viewport.Sy)
	}
	a.Undo()
	if m.Viewport.Sx != 2 || m.Viewport.Sy != 4 {
		t.Fatalf("expected offset restored to (2,4), got (%v,%v)", m.Viewport.Sx, m.Viewport.Sy)
	}

	// Redo replays the recorded offset even if the viewport moved meanwhile.
	m.Viewport.Sx = 100
	a.Redo()
	if m.Viewport.Sx != -3 || m.Viewport.Sy != 7 {
		t.Fatalf("expected redo to replay (-3,7), got (%v,%v)", m.Viewport.Sx, m.Viewport.Sy)
	}
}

func TestZoomKeepsCursorPoint(t *testing.T) {
	m := newTestModel()
	v := m.Viewport
	v.Resize(160, 120)
	v.SetCursor(40, 90)
	v.Sx, v.Sy = 3, 1

	beforeX, beforeY := v.ImagePoint(v.CursorX, v.CursorY)
	a := NewZoom(m, -5)
	a.Do()
	if v.Zoom != 150 {
		t.Fatalf("expected zoom 150, got %v", v.Zoom)
	}
	afterX, afterY := v.ImagePoint(v.CursorX, v.CursorY)
	if math.Abs(beforeX-afterX) > 1e-9 || math.Abs(beforeY-afterY) > 1e-9 {
		t.Fatalf("cursor point moved from (%f,%f) to (%f,%f)", beforeX, beforeY, afterX, afterY)
	}

	a.Undo()
	if v.Zoom != 100 || v.Sx != 3 || v.Sy != 1 {
		t.Fatalf("expected zoom and offset restored, got zoom=%v offset=(%v,%v)", v.Zoom, v.Sx, v.Sy)
	}
}

func TestZoomStopsAtLimit(t *testing.T) {
	m := newTestModel()
	a := NewZoom(m, 3)
	a.Do()
	if m.Viewport.Zoom != m.Viewport.ZoomLimit {
		t.Fatalf("expected zoom clamped at limit %v, got %v", m.Viewport.ZoomLimit, m.Viewport.Zoom)
	}
}

func TestChangeChannelKeepsAdjustments(t *testing.T) {
	m := newTestModel()
	env := &Env{Model: m}

	NewChangeContrast(m, 1).Do()
	NewChangeBrightness(m, -1).Do()
	want := m.Adjuster.Adjustment

	NewChangeChannel(env, 1).Do()
	if m.Adjuster.Adjustment != (model.Adjustment{}) {
		t.Fatalf("expected neutral adjustment on new channel, got %+v", m.Adjuster.Adjustment)
	}
	NewChangeBrightness(m, 1).Do()

	NewChangeChannel(env, 0).Do()
	if m.Adjuster.Adjustment != want {
		t.Fatalf("expected %+v restored on channel 0, got %+v", want, m.Adjuster.Adjustment)
	}
}

func TestNavigationWrapsAndClears(t *testing.T) {
	m := newTestModel()
	cleared := 0
	m.OnClear(func() { cleared++ })
	env := &Env{Model: m}

	a := NewChangeFrame(env, -1)
	a.Do()
	if m.Navigation.Frame != 4 {
		t.Fatalf("expected frame to wrap to 4, got %d", m.Navigation.Frame)
	}
	a.Undo()
	if m.Navigation.Frame != 0 {
		t.Fatalf("expected frame 0 after undo, got %d", m.Navigation.Frame)
	}
	if cleared != 2 {
		t.Fatalf("expected tool state cleared on do and undo, got %d", cleared)
	}

	NewChangeFeature(env, 7).Do()
	if m.Navigation.Feature != 1 {
		t.Fatalf("expected feature 7 mod 2 = 1, got %d", m.Navigation.Feature)
	}
}

func TestNavigationRefreshesDisplay(t *testing.T) {
	m := newTestModel()
	gw := &displayGateway{}
	env := &Env{Model: m, Gateway: gw, Session: "abc"}

	cmd := NewChangeChannel(env, 2).Do()
	if cmd == nil {
		t.Fatal("expected a display refresh command")
	}
	msg, ok := cmd().(DisplayMsg)
	if !ok {
		t.Fatalf("expected DisplayMsg, got %T", cmd())
	}
	if msg.Err != nil || gw.attr != DisplayChannel || gw.value != 2 {
		t.Fatalf("unexpected refresh: msg=%+v attr=%q value=%d", msg, gw.attr, gw.value)
	}
}

func TestContrastStepsBySign(t *testing.T) {
	m := newTestModel()
	a := NewChangeContrast(m, 37)
	a.Do()
	if m.Adjuster.Contrast != model.ContrastStep {
		t.Fatalf("expected one contrast step, got %d", m.Adjuster.Contrast)
	}
	a.Undo()
	if m.Adjuster.Contrast != 0 {
		t.Fatalf("expected contrast restored, got %d", m.Adjuster.Contrast)
	}

	m.Adjuster.Brightness = model.MinBrightness
	NewChangeBrightness(m, -1).Do()
	if m.Adjuster.Brightness != model.MinBrightness {
		t.Fatalf("expected brightness clamped, got %d", m.Adjuster.Brightness)
	}

	reset := NewResetBrightnessContrast(m)
	reset.Do()
	if m.Adjuster.Brightness != 0 || m.Adjuster.Contrast != 0 {
		t.Fatalf("expected reset to zero, got %+v", m.Adjuster.Adjustment)
	}
	reset.Undo()
	if m.Adjuster.Brightness != model.MinBrightness {
		t.Fatalf("expected reset undone, got %d", m.Adjuster.Brightness)
	}
}

func TestSelectUndoRestoresPreviousLabel(t *testing.T) {
	m := newTestModel()
	m.Selection.Foreground = 3
	m.Selection.Hovered = 8

	a := NewSelectForeground(m)
	a.Do()
	if m.Selection.Foreground != 8 {
		t.Fatalf("expected foreground 8, got %d", m.Selection.Foreground)
	}
	a.Undo()
	if m.Selection.Foreground != 3 {
		t.Fatalf("expected foreground 3 restored, got %d", m.Selection.Foreground)
	}

	b := NewSelectBackground(m)
	b.Do()
	NewSwapForegroundBackground(m).Do()
	if m.Selection.Foreground != 8 || m.Selection.Background != 3 {
		t.Fatalf("expected swapped pair (8,3), got %+v", m.Selection)
	}
}

func TestResetLabelsPicksUnusedLabel(t *testing.T) {
	m := newTestModel()
	m.Labels.Labels = [][]int{{0, 2}, {5, 1}}
	m.Selection.Foreground, m.Selection.Background = 2, 1

	a := NewResetLabels(m)
	a.Do()
	if m.Selection.Foreground != 6 || m.Selection.Background != 0 {
		t.Fatalf("expected (6,0), got %+v", m.Selection)
	}
	a.Undo()
	if m.Selection.Foreground != 2 || m.Selection.Background != 1 {
		t.Fatalf("expected (2,1) restored, got %+v", m.Selection)
	}
}

func TestInvalidEditNeverCallsGateway(t *testing.T) {
	m := newTestModel()
	gw := &fakeGateway{}
	env := &Env{Model: m, Gateway: gw, Session: "abc"}

	cases := []struct {
		name string
		req  Request
		want error
	}{
		{name: "swap same label", req: Swap(4, 4, 0, false), want: ErrSameLabel},
		{name: "replace all same label", req: Replace(2, 2, 0, true), want: ErrSameLabel},
		{name: "watershed across labels", req: Watershed{
			First:  Seed{Point: Point{1, 1}, Label: 3},
			Second: Seed{Point: Point{4, 4}, Label: 5},
		}, want: ErrSeedsMismatch},
		{name: "watershed across frames", req: Watershed{
			First:  Seed{Point: Point{1, 1}, Label: 3, Frame: 0},
			Second: Seed{Point: Point{4, 4}, Label: 3, Frame: 1},
		}, want: ErrSeedsMismatch},
		{name: "empty trace", req: Paint{BrushSize: 3, Foreground: 1}, want: ErrEmptyTrace},
		{name: "zero brush", req: Paint{Trace: []Point{{1, 1}}}, want: ErrBrushSize},
		{name: "flat box", req: Threshold{First: Point{1, 1}, Second: Point{1, 9}, Label: 2}, want: ErrEmptyBox},
		{name: "autofit background", req: Autofit{}, want: ErrNoLabel},
		{name: "delete background", req: DeleteMask(0, 0), want: ErrNoLabel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewEdit(env, tc.req)
			if !errors.Is(a.Err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, a.Err)
			}
			var verr *ValidationError
			if !errors.As(a.Err, &verr) || verr.Kind != tc.req.Kind() {
				t.Fatalf("expected ValidationError for %s, got %v", tc.req.Kind(), a.Err)
			}
			if a.Do() != nil || a.Undo() != nil || a.Redo() != nil {
				t.Fatal("expected no commands from an invalid edit")
			}
		})
	}
	if len(gw.edits) != 0 || gw.undos != 0 || gw.redos != 0 {
		t.Fatalf("gateway was called: edits=%v undos=%d redos=%d", gw.edits, gw.undos, gw.redos)
	}
}

func TestEditWithoutGatewayIsInvalid(t *testing.T) {
	a := NewEdit(&Env{Model: newTestModel()}, Autofit{Label: 2})
	if !errors.Is(a.Err, ErrNoGateway) {
		t.Fatalf("expected ErrNoGateway, got %v", a.Err)
	}
}

func TestEditCompleteAppliesPayload(t *testing.T) {
	m := newTestModel()
	cleared := 0
	m.OnClear(func() { cleared++ })
	gw := &fakeGateway{payload: &model.Payload{Images: &model.Images{Labels: [][]int{{7}}}}}
	env := &Env{Model: m, Gateway: gw, Session: "abc"}
	m.Selection.Foreground = 7

	a := NewEdit(env, Paint{Trace: []Point{{0, 0}}, BrushSize: 1, Foreground: 7})
	if a.Err != nil {
		t.Fatalf("unexpected validation error: %v", a.Err)
	}
	data := a.Data.(EditData)
	if data.Context.Foreground != 7 || data.Session != "abc" {
		t.Fatalf("expected selection snapshot, got %+v", data)
	}

	msg := a.Do()().(ResultMsg)
	if msg.ActionID != a.ID || msg.Op != OpDo {
		t.Fatalf("unexpected result %+v", msg)
	}
	if err := a.Complete(msg); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if m.Labels.LabelAt(0, 0) != 7 {
		t.Fatalf("expected payload applied, label=%d", m.Labels.LabelAt(0, 0))
	}
	if cleared != 0 {
		t.Fatalf("completing an edit must not clear tool state, cleared=%d", cleared)
	}

	msg = a.Undo()().(ResultMsg)
	if msg.Op != OpUndo || gw.undos != 1 {
		t.Fatalf("expected undo call, got %+v undos=%d", msg, gw.undos)
	}
	msg = a.Redo()().(ResultMsg)
	if msg.Op != OpRedo || gw.redos != 1 {
		t.Fatalf("expected redo call, got %+v redos=%d", msg, gw.redos)
	}
	if len(gw.edits) != 1 || gw.edits[0] != string(KindPaint) {
		t.Fatalf("expected one handle_draw edit, got %v", gw.edits)
	}
}

func TestEditCompleteFailureLeavesModel(t *testing.T) {
	m := newTestModel()
	m.Labels.Labels = [][]int{{1}}
	boom := errors.New("boom")
	gw := &fakeGateway{err: boom}
	a := NewEdit(&Env{Model: m, Gateway: gw}, Autofit{Label: 1})

	err := a.Complete(a.Do()().(ResultMsg))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped gateway error, got %v", err)
	}
	if m.Labels.LabelAt(0, 0) != 1 {
		t.Fatal("expected label state untouched")
	}
}

func TestUndoBeforeDoPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewToggleEdit(newTestModel()).Undo()
}

func TestRequestArgs(t *testing.T) {
	args := Watershed{
		First:  Seed{Point: Point{2, 3}, Label: 4, Frame: 1},
		Second: Seed{Point: Point{6, 7}, Label: 4, Frame: 1},
	}.Args()
	if args["x1_location"] != 2 || args["y2_location"] != 7 || args["label"] != 4 {
		t.Fatalf("unexpected watershed args %v", args)
	}
	if _, ok := Swap(1, 2, 3, true).Args()["frame"]; ok {
		t.Fatal("expected no frame for all-frame swap")
	}
	if Replace(1, 2, 0, false).Kind() != KindReplace {
		t.Fatal("expected replace_single for single-frame replace")
	}
	if (Predict{ZStack: true}).Kind() != KindPredictStack {
		t.Fatal("expected predict_zstack")
	}
}

func TestPaintTraceIsRowFirst(t *testing.T) {
	trace := Paint{Trace: []Point{{X: 3, Y: 2}}, BrushSize: 1}.Args()["trace"].([][2]int)
	if len(trace) != 1 || trace[0] != [2]int{2, 3} {
		t.Fatalf("expected [[2 3]], got %v", trace)
	}
}

func TestTrackRequests(t *testing.T) {
	cases := []struct {
		name string
		req  Request
		want error
	}{
		{"new track", NewTrack(4, 2), nil},
		{"new track at first frame", NewTrack(4, 0), ErrTrackStart},
		{"new track without label", NewTrack(0, 2), ErrNoLabel},
		{"set parent", Lineage{Parent: 1, Daughter: 2}, nil},
		{"own parent", Lineage{Parent: 3, Daughter: 3}, ErrOwnParent},
		{"parent of background", Lineage{Parent: 3, Daughter: 0}, ErrNoLabel},
		{"swap tracks", SwapTracks(1, 2), nil},
		{"swap track with background", SwapTracks(1, 0), ErrNoLabel},
		{"swap track with itself", SwapTracks(5, 5), ErrSameLabel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.validate()
			if tc.want == nil && err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	args := Lineage{Parent: 1, Daughter: 2}.Args()
	if args["label_1"] != 1 || args["label_2"] != 2 {
		t.Fatalf("unexpected set_parent args %v", args)
	}
	if _, ok := SwapTracks(1, 2).Args()["frame"]; ok {
		t.Fatal("swap_tracks spans all frames")
	}
	if NewTrack(4, 2).Kind() != KindNewTrack || NewCell(4, 2, true).Kind() != KindNewCellStack {
		t.Fatal("unexpected kinds")
	}
}
