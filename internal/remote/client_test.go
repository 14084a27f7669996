package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"labelterm/internal/action"
)

var (
	_ action.Gateway   = (*Client)(nil)
	_ action.Displayer = (*Client)(nil)
)

func newTestClient(server *httptest.Server) *Client {
	return NewClient(server.URL+"/", time.Second,
		WithHTTPClient(server.Client()),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithRetry(3, time.Millisecond),
	)
}

func TestEditSendsJSONFormValues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/edit/proj1/handle_draw" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Errorf("expected X-Request-Id header")
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		var trace [][2]int
		if err := json.Unmarshal([]byte(r.PostForm.Get("trace")), &trace); err != nil {
			t.Errorf("trace is not JSON: %q", r.PostForm.Get("trace"))
		}
		// Points travel as [y, x].
		if len(trace) != 2 || trace[0] != [2]int{2, 1} || trace[1] != [2]int{2, 3} {
			t.Errorf("unexpected trace %v", trace)
		}
		if r.PostForm.Get("erase") != "false" || r.PostForm.Get("brush_value") != "5" {
			t.Errorf("unexpected form %v", r.PostForm)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tracks":false,"imgs":{"seg_arr":[[5,5],[0,5]]}}`))
	}))
	defer server.Close()

	req := action.Paint{
		Trace:      []action.Point{{X: 1, Y: 2}, {X: 3, Y: 2}},
		BrushSize:  2,
		Foreground: 5,
	}
	payload, err := newTestClient(server).Edit(context.Background(), "proj1", string(req.Kind()), req.Args())
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if payload.Tracks != nil {
		t.Fatalf("expected tracks absent, got %v", payload.Tracks)
	}
	if payload.Images == nil || payload.Images.Labels[1][1] != 5 {
		t.Fatalf("expected label array, got %+v", payload.Images)
	}
}

func TestUndoRedoPaths(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.ContentLength > 0 {
			t.Errorf("expected no body on %s", r.URL.Path)
		}
		paths = append(paths, r.URL.Path)
		_, _ = w.Write([]byte(`null`))
	}))
	defer server.Close()

	client := newTestClient(server)
	undo, err := client.Undo(context.Background(), "abc")
	if err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if !undo.Empty() {
		t.Fatalf("expected empty payload for null body, got %+v", undo)
	}
	if _, err := client.Redo(context.Background(), "abc"); err != nil {
		t.Fatalf("redo failed: %v", err)
	}
	if len(paths) != 2 || paths[0] != "/api/undo/abc" || paths[1] != "/api/redo/abc" {
		t.Fatalf("unexpected paths %v", paths)
	}
}

func TestServerErrorIsDecoded(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"label 4 not in frame"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server).Edit(context.Background(), "abc", "delete_mask", map[string]any{"label": 4})
	var remoteErr *Error
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if remoteErr.Status != http.StatusInternalServerError || remoteErr.Message != "label 4 not in frame" {
		t.Fatalf("unexpected error %+v", remoteErr)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("edits must not be retried, got %d calls", atomic.LoadInt32(&calls))
	}
}

func TestMissingProjectIsNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "project nope not found", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server).Project(context.Background(), "nope")
	var remoteErr *Error
	if !errors.As(err, &remoteErr) || remoteErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404 error, got %v", err)
	}
	if remoteErr.Message != "project nope not found" {
		t.Fatalf("expected plain text message, got %q", remoteErr.Message)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected exactly 1 call, got %d", atomic.LoadInt32(&calls))
	}
}

func TestProjectRetriesTransientFailure(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		if r.Method != http.MethodGet || r.URL.Path != "/api/getproject/tok" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"project_id":"tok","width":3,"height":2,"numFrames":4,"numChannels":2,"numFeatures":1,` +
			`"tracks":{"1":{"frames":[0]}},"imgs":{"seg_arr":[[0,1,1],[0,0,1]]}}`))
	}))
	defer server.Close()

	project, err := newTestClient(server).Project(context.Background(), "tok")
	if err != nil {
		t.Fatalf("expected retry to recover from transient 503, got error: %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected exactly 2 calls (1 retry), got %d", atomic.LoadInt32(&calls))
	}
	if project.ID != "tok" || project.NumFrames != 4 || project.NumChannels != 2 {
		t.Fatalf("unexpected project %+v", project)
	}

	m := project.Model()
	if m.Viewport.Width != 3 || m.Navigation.NumFrames != 4 {
		t.Fatalf("unexpected model shape %+v %+v", m.Viewport, m.Navigation)
	}
	if m.Labels.LabelAt(2, 1) != 1 || m.Labels.MaxLabel() != 1 {
		t.Fatalf("expected first payload applied, got %+v", m.Labels)
	}
}

func TestChangeDisplayPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/changedisplay/tok/channel/2" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"tracks":false,"imgs":{"raw":"data:image/png;base64,AA=="}}`))
	}))
	defer server.Close()

	payload, err := newTestClient(server).ChangeDisplay(context.Background(), "tok", action.DisplayChannel, 2)
	if err != nil {
		t.Fatalf("change display failed: %v", err)
	}
	if payload.Images == nil || payload.Images.Raw == "" {
		t.Fatalf("expected raw image, got %+v", payload.Images)
	}
}

func TestMalformedResponse(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"tracks":`))
	}))
	defer server.Close()

	_, err := newTestClient(server).ChangeDisplay(context.Background(), "tok", "frame", 1)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("malformed responses must not be retried, got %d calls", atomic.LoadInt32(&calls))
	}
}
