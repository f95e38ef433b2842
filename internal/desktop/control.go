package desktop

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/retrodesk/internal/config"
	"github.com/1broseidon/retrodesk/internal/ipc"
	"github.com/1broseidon/retrodesk/internal/wm"
)

// controlMsg carries a request from another goroutine into Update. apply
// runs on the event loop; its result is sent on reply.
type controlMsg struct {
	apply func(m *Model) (any, tea.Cmd, error)
	reply chan controlResult
}

type controlResult struct {
	data any
	err  error
}

func (m *Model) handleControl(msg controlMsg) tea.Cmd {
	data, cmd, err := msg.apply(m)
	// reply is buffered; a caller that gave up never blocks the loop.
	msg.reply <- controlResult{data: data, err: err}
	return cmd
}

// ProgramDispatcher implements ipc.Dispatcher by injecting messages into a
// running tea.Program.
type ProgramDispatcher struct {
	send func(tea.Msg)
}

// NewProgramDispatcher wires a dispatcher to p.
func NewProgramDispatcher(p *tea.Program) *ProgramDispatcher {
	return &ProgramDispatcher{send: p.Send}
}

func (d *ProgramDispatcher) do(ctx context.Context, apply func(m *Model) (any, tea.Cmd, error)) (any, error) {
	reply := make(chan controlResult, 1)
	go d.send(controlMsg{apply: apply, reply: reply})

	select {
	case r := <-reply:
		return r.data, r.err
	case <-ctx.Done():
		return nil, fmt.Errorf("desktop did not answer: %w", ctx.Err())
	}
}

func (d *ProgramDispatcher) Status(ctx context.Context) (*ipc.StatusData, error) {
	data, err := d.do(ctx, func(m *Model) (any, tea.Cmd, error) {
		return m.Status(), nil, nil
	})
	if err != nil {
		return nil, err
	}
	return data.(*ipc.StatusData), nil
}

func (d *ProgramDispatcher) Window(ctx context.Context, op ipc.WindowOp, id wm.WindowID) (*ipc.WindowStatus, error) {
	data, err := d.do(ctx, func(m *Model) (any, tea.Cmd, error) {
		ws, err := m.applyWindowOp(op, id)
		return ws, nil, err
	})
	if err != nil {
		return nil, err
	}
	return data.(*ipc.WindowStatus), nil
}

func (d *ProgramDispatcher) Move(ctx context.Context, id wm.WindowID, p wm.Point) (*ipc.WindowStatus, error) {
	data, err := d.do(ctx, func(m *Model) (any, tea.Cmd, error) {
		m.reg.Drop(id, p)
		m.logger.Info("window moved", "window", id.String(), "x", p.X, "y", p.Y, "source", "control")
		return m.windowStatus(id), nil, nil
	})
	if err != nil {
		return nil, err
	}
	return data.(*ipc.WindowStatus), nil
}

func (d *ProgramDispatcher) SetBackground(ctx context.Context, name string) (*ipc.BackgroundData, error) {
	data, err := d.do(ctx, func(m *Model) (any, tea.Cmd, error) {
		sw, err := m.setBackground(name)
		if err != nil {
			return nil, nil, err
		}
		return &ipc.BackgroundData{Name: sw.Name, Color: sw.Color}, nil, nil
	})
	if err != nil {
		return nil, err
	}
	return data.(*ipc.BackgroundData), nil
}

func (d *ProgramDispatcher) ToggleLaunch(ctx context.Context) (*ipc.LaunchData, error) {
	data, err := d.do(ctx, func(m *Model) (any, tea.Cmd, error) {
		cmd := m.toggleLaunch()
		return &ipc.LaunchData{Launched: m.launched}, cmd, nil
	})
	if err != nil {
		return nil, err
	}
	return data.(*ipc.LaunchData), nil
}

// Status reports the desktop as seen by control clients.
func (m *Model) Status() *ipc.StatusData {
	out := &ipc.StatusData{
		Background:    m.background.Name,
		Launched:      m.launched,
		ShutDown:      m.shutDown,
		CloseMode:     string(m.reg.CloseMode()),
		UptimeSeconds: int64(time.Since(m.started).Seconds()),
	}
	for _, id := range wm.All() {
		out.Windows = append(out.Windows, *m.windowStatus(id))
	}
	out.Stack = []string{}
	for _, id := range m.reg.Stack() {
		out.Stack = append(out.Stack, id.String())
	}
	if id, ok := m.reg.Focused(); ok {
		out.Focused = id.String()
	}
	return out
}

func (m *Model) windowStatus(id wm.WindowID) *ipc.WindowStatus {
	st := m.reg.State(id)
	return &ipc.WindowStatus{
		Name:      id.String(),
		Title:     id.Title(),
		Open:      st.Open,
		Minimized: st.Minimized,
		Maximized: st.Maximized,
		Placed:    st.Placed,
		X:         st.Position.X,
		Y:         st.Position.Y,
	}
}

// applyWindowOp runs one transition and keeps the body sizes in step.
func (m *Model) applyWindowOp(op ipc.WindowOp, id wm.WindowID) (*ipc.WindowStatus, error) {
	switch op {
	case ipc.OpToggle:
		m.reg.ToggleOpen(id)
	case ipc.OpClose:
		m.reg.Close(id)
	case ipc.OpMinimize:
		m.reg.ToggleMinimize(id)
	case ipc.OpMaximize:
		m.reg.ToggleMaximize(id)
	case ipc.OpFocus:
		if !m.reg.Focus(id) {
			return nil, fmt.Errorf("window %s is not open", id)
		}
	default:
		return nil, fmt.Errorf("unsupported window op %d", op)
	}

	st := m.reg.State(id)
	// A hidden sheet must not keep capturing keys.
	if id == wm.Contact && (!st.Open || st.Minimized) && m.sheet.Editing() {
		m.sheet.StopEditing()
	}
	m.refreshBody(id)
	m.logger.Info("window transition",
		"op", op.String(),
		"window", id.String(),
		"phase", st.Phase().String(),
	)
	return m.windowStatus(id), nil
}

func (m *Model) setBackground(name string) (config.Swatch, error) {
	sw, ok := config.LookupSwatch(name)
	if !ok {
		return config.Swatch{}, fmt.Errorf("unknown color %q", name)
	}
	m.background = sw
	m.logger.Info("background changed", "name", sw.Name, "color", sw.Color)
	return sw, nil
}
