package action

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"labelterm/internal/model"
)

// Gateway is the label service's mutation log. Edit appends to it, Undo and
// Redo step through it; each returns the label state after the call.
type Gateway interface {
	Edit(ctx context.Context, session, kind string, args map[string]any) (*model.Payload, error)
	Undo(ctx context.Context, session string) (*model.Payload, error)
	Redo(ctx context.Context, session string) (*model.Payload, error)
}

// Displayer is implemented by gateways that can re-render the shown frame,
// feature or channel.
type Displayer interface {
	ChangeDisplay(ctx context.Context, session, attr string, value int) (*model.Payload, error)
}

// Env is what actions that talk to the label service need.
type Env struct {
	Model   *model.Model
	Gateway Gateway
	Session string
	Timeout time.Duration
}

// ErrNoGateway is the validation error of edits built without a label
// service.
var ErrNoGateway = errors.New("no label service configured")

// Op identifies which of Do, Undo or Redo produced a ResultMsg.
type Op int

const (
	OpDo Op = iota
	OpUndo
	OpRedo
)

func (o Op) String() string {
	switch o {
	case OpDo:
		return "edit"
	case OpUndo:
		return "undo"
	case OpRedo:
		return "redo"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// ResultMsg is the outcome of a remote call started by Do, Undo or Redo of
// an edit action.
type ResultMsg struct {
	ActionID uuid.UUID
	Op       Op
	Payload  *model.Payload
	Err      error
}

// DisplayMsg is the outcome of a display refresh after navigation.
type DisplayMsg struct {
	Attr    string
	Value   int
	Payload *model.Payload
	Err     error
}

// EditContext is the selection an edit was made with.
type EditContext struct {
	Foreground int
	Background int
	Frame      int
	Feature    int
	Channel    int
}

// EditData is the forward state of an edit action.
type EditData struct {
	Kind    EditKind
	Args    map[string]any
	Session string
	Context EditContext
}

// NewEdit builds a remote edit from a request. The request is validated
// here; on failure the action carries the error in Err and none of its
// operations will call the label service.
func NewEdit(env *Env, req Request) *Action {
	m := env.Model
	nav := m.Navigation
	sel := m.Selection
	data := EditData{
		Kind:    req.Kind(),
		Args:    req.Args(),
		Session: env.Session,
		Context: EditContext{
			Foreground: sel.Foreground,
			Background: sel.Background,
			Frame:      nav.Frame,
			Feature:    nav.Feature,
			Channel:    nav.Channel,
		},
	}
	a := newAction(m, ActionEdit, data, nil)
	a.env = env
	if err := req.validate(); err != nil {
		a.Err = err
	} else if env.Gateway == nil {
		a.Err = &ValidationError{Kind: data.Kind, Err: ErrNoGateway}
	}
	return a
}

func (a *Action) edit() tea.Cmd {
	if a.Err != nil {
		return nil
	}
	data := a.Data.(EditData)
	gw := a.env.Gateway
	return a.call(OpDo, func(ctx context.Context) (*model.Payload, error) {
		return gw.Edit(ctx, data.Session, string(data.Kind), data.Args)
	})
}

// step asks the label service to move its log; the client never computes
// the inverse of an edit itself.
func (a *Action) step(op Op) tea.Cmd {
	data := a.Data.(EditData)
	gw := a.env.Gateway
	return a.call(op, func(ctx context.Context) (*model.Payload, error) {
		if op == OpUndo {
			return gw.Undo(ctx, data.Session)
		}
		return gw.Redo(ctx, data.Session)
	})
}

func (a *Action) call(op Op, fn func(ctx context.Context) (*model.Payload, error)) tea.Cmd {
	id := a.ID
	timeout := a.env.Timeout
	return func() tea.Msg {
		ctx, cancel := callContext(timeout)
		defer cancel()
		payload, err := fn(ctx)
		return ResultMsg{ActionID: id, Op: op, Payload: payload, Err: err}
	}
}

// Complete applies the outcome of a remote call. On failure the model is
// left untouched and the error is returned. Tool state is not cleared: the
// tool that built the request reset itself when it emitted it.
func (a *Action) Complete(msg ResultMsg) error {
	if msg.Err != nil {
		data := a.Data.(EditData)
		return fmt.Errorf("%s %s: %w", msg.Op, data.Kind, msg.Err)
	}
	a.model.ApplyPayload(msg.Payload)
	if msg.Op == OpDo {
		a.done = true
	}
	return nil
}

func callContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}
