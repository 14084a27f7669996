// Package history sequences actions on undo and redo stacks.
//
// Local actions are applied and recorded at once. Remote actions are
// recorded only after the label service confirmed them, and at most one
// remote call is outstanding at a time. While a remote undo or redo is
// outstanding the stacks are frozen: every change is refused with ErrBusy.
package history

import (
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"labelterm/internal/action"
)

var (
	// ErrBusy is returned when a remote action is started while another
	// remote call is still outstanding.
	ErrBusy = errors.New("history: remote action in flight")

	// ErrUnexpectedResult is returned by Complete for a result that does not
	// belong to the outstanding call.
	ErrUnexpectedResult = errors.New("history: unexpected result")
)

type pendingOp struct {
	action *action.Action
	op     action.Op
}

// History is the undo/redo manager. It is used from the Bubble Tea update
// loop only and is not safe for concurrent use.
type History struct {
	undoStack []*action.Action
	redoStack []*action.Action
	pending   *pendingOp

	logger *slog.Logger
}

// New creates an empty history. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *History {
	if logger == nil {
		logger = slog.Default()
	}
	return &History{logger: logger.With(slog.String("component", "history"))}
}

// AddAction applies a and records it. The returned command, if any, must be
// run by the caller; for remote actions its ResultMsg goes to Complete.
func (h *History) AddAction(a *action.Action) (tea.Cmd, error) {
	if a.Err != nil {
		h.logger.Debug("action rejected", slog.String("type", a.Type.String()), slog.Any("error", a.Err))
		return nil, a.Err
	}
	if h.stepping() {
		return nil, ErrBusy
	}
	if !a.Remote() {
		cmd := a.Do()
		h.record(a)
		return cmd, nil
	}
	if h.pending != nil {
		return nil, ErrBusy
	}
	h.pending = &pendingOp{action: a, op: action.OpDo}
	return a.Do(), nil
}

// Undo reverts the most recent recorded action.
func (h *History) Undo() (tea.Cmd, error) {
	if h.stepping() {
		return nil, ErrBusy
	}
	if len(h.undoStack) == 0 {
		return nil, nil
	}
	top := h.undoStack[len(h.undoStack)-1]
	if top.Remote() {
		if h.pending != nil {
			return nil, ErrBusy
		}
		h.pending = &pendingOp{action: top, op: action.OpUndo}
		return top.Undo(), nil
	}
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	cmd := top.Undo()
	h.redoStack = append(h.redoStack, top)
	return cmd, nil
}

// Redo reapplies the most recently undone action.
func (h *History) Redo() (tea.Cmd, error) {
	if h.stepping() {
		return nil, ErrBusy
	}
	if len(h.redoStack) == 0 {
		return nil, nil
	}
	top := h.redoStack[len(h.redoStack)-1]
	if top.Remote() {
		if h.pending != nil {
			return nil, ErrBusy
		}
		h.pending = &pendingOp{action: top, op: action.OpRedo}
		return top.Redo(), nil
	}
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	cmd := top.Redo()
	h.undoStack = append(h.undoStack, top)
	return cmd, nil
}

// Complete finishes the outstanding remote call. On failure the stacks are
// left as they were before the call and the error is returned.
func (h *History) Complete(msg action.ResultMsg) error {
	p := h.pending
	if p == nil || p.action.ID != msg.ActionID || p.op != msg.Op {
		h.logger.Warn("dropping result", slog.String("action", msg.ActionID.String()), slog.String("op", msg.Op.String()))
		return ErrUnexpectedResult
	}
	h.pending = nil

	if err := p.action.Complete(msg); err != nil {
		h.logger.Error("remote call failed", slog.String("op", msg.Op.String()), slog.Any("error", err))
		return err
	}

	switch p.op {
	case action.OpDo:
		h.record(p.action)
	case action.OpUndo:
		h.undoStack = pop(h.undoStack, p.action)
		h.redoStack = append(h.redoStack, p.action)
	case action.OpRedo:
		h.redoStack = pop(h.redoStack, p.action)
		h.undoStack = append(h.undoStack, p.action)
	}
	return nil
}

func (h *History) record(a *action.Action) {
	h.undoStack = append(h.undoStack, a)
	h.redoStack = nil
	h.logger.Debug("recorded", slog.String("type", a.Type.String()), slog.Int("depth", len(h.undoStack)))
}

// stepping reports whether a remote undo or redo is outstanding.
func (h *History) stepping() bool {
	return h.pending != nil && h.pending.op != action.OpDo
}

// pop drops a from the top of stack. The stacks are frozen while a's undo
// or redo was outstanding, so a is still on top.
func pop(stack []*action.Action, a *action.Action) []*action.Action {
	n := len(stack)
	if n == 0 || stack[n-1] != a {
		panic(fmt.Sprintf("history: %v is not on top of its stack", a.Type))
	}
	return stack[:n-1]
}

// Pending reports whether a remote call is outstanding.
func (h *History) Pending() bool {
	return h.pending != nil
}

func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// Len returns the sizes of the undo and redo stacks.
func (h *History) Len() (undo, redo int) {
	return len(h.undoStack), len(h.redoStack)
}
