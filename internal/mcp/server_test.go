package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/retrodesk/internal/ipc"
)

type fakeController struct {
	calls      []string
	background string
	launched   bool
	err        error
}

func (f *fakeController) GetStatus() (*ipc.StatusData, error) {
	f.calls = append(f.calls, "status")
	if f.err != nil {
		return nil, f.err
	}
	return &ipc.StatusData{
		Windows:    []ipc.WindowStatus{{Name: "about", Title: "About Me", Open: true}},
		Stack:      []string{"about"},
		Focused:    "about",
		Background: "#87CEEB",
		CloseMode:  "reset",
	}, nil
}

func (f *fakeController) window(op, name string) (*ipc.WindowStatus, error) {
	f.calls = append(f.calls, op+" "+name)
	if f.err != nil {
		return nil, f.err
	}
	return &ipc.WindowStatus{Name: name, Open: op != "close"}, nil
}

func (f *fakeController) Toggle(name string) (*ipc.WindowStatus, error) {
	return f.window("toggle", name)
}

func (f *fakeController) Close(name string) (*ipc.WindowStatus, error) {
	return f.window("close", name)
}

func (f *fakeController) Minimize(name string) (*ipc.WindowStatus, error) {
	return f.window("minimize", name)
}

func (f *fakeController) Maximize(name string) (*ipc.WindowStatus, error) {
	return f.window("maximize", name)
}

func (f *fakeController) Move(name string, x, y int) (*ipc.WindowStatus, error) {
	ws, err := f.window("move", name)
	if err != nil {
		return nil, err
	}
	ws.Placed, ws.X, ws.Y = true, x, y
	return ws, nil
}

func (f *fakeController) SetBackground(name string) (*ipc.BackgroundData, error) {
	f.calls = append(f.calls, "background "+name)
	if f.err != nil {
		return nil, f.err
	}
	f.background = name
	return &ipc.BackgroundData{Name: name, Color: "#FFA07A"}, nil
}

func (f *fakeController) Launch() (*ipc.LaunchData, error) {
	f.calls = append(f.calls, "launch")
	if f.err != nil {
		return nil, f.err
	}
	f.launched = !f.launched
	return &ipc.LaunchData{Launched: f.launched}, nil
}

func connect(t *testing.T, ctl Controller) *mcpsdk.ClientSession {
	t.Helper()
	ctx := context.Background()

	s := NewServer(ctl, nil)
	serverTransport, clientTransport := mcpsdk.NewInMemoryTransports()
	if _, err := s.mcpServer.Connect(ctx, serverTransport, nil); err != nil {
		t.Fatalf("server connect: %v", err)
	}

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func callText(t *testing.T, session *mcpsdk.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcpsdk.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	var parts []string
	for _, c := range result.Content {
		if text, ok := c.(*mcpsdk.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, "\n"), result.IsError
}

func TestServerInfoAndTools(t *testing.T) {
	session := connect(t, &fakeController{})

	info := session.InitializeResult().ServerInfo
	if info.Name != ServerName || info.Version != ServerVersion {
		t.Errorf("server info = %s %s", info.Name, info.Version)
	}

	res, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	got := map[string]bool{}
	for _, tool := range res.Tools {
		got[tool.Name] = true
	}
	for _, want := range []string{
		"desktop_status", "toggle_window", "close_window", "minimize_window",
		"maximize_window", "move_window", "set_background", "toggle_launch",
	} {
		if !got[want] {
			t.Errorf("tool %q not registered", want)
		}
	}
}

func TestStatusTool(t *testing.T) {
	session := connect(t, &fakeController{})

	text, isErr := callText(t, session, "desktop_status", map[string]any{})
	if isErr {
		t.Fatalf("desktop_status returned error: %s", text)
	}
	var out StatusOutput
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		t.Fatalf("unmarshal %q: %v", text, err)
	}
	if out.Focused != "about" || len(out.Windows) != 1 || out.Background != "#87CEEB" {
		t.Errorf("status = %+v", out)
	}
}

func TestWindowTools(t *testing.T) {
	tests := []struct {
		tool string
		args map[string]any
		call string
	}{
		{"toggle_window", map[string]any{"window": "about"}, "toggle about"},
		{"close_window", map[string]any{"window": "Resume"}, "close resume"},
		{"minimize_window", map[string]any{"window": "projects"}, "minimize projects"},
		{"maximize_window", map[string]any{"window": " contact "}, "maximize contact"},
		{"move_window", map[string]any{"window": "about", "x": 120, "y": 34}, "move about"},
	}
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			ctl := &fakeController{}
			session := connect(t, ctl)

			text, isErr := callText(t, session, tt.tool, tt.args)
			if isErr {
				t.Fatalf("%s returned error: %s", tt.tool, text)
			}
			if len(ctl.calls) != 1 || ctl.calls[0] != tt.call {
				t.Errorf("calls = %v, want [%s]", ctl.calls, tt.call)
			}
		})
	}
}

func TestMoveToolReportsPosition(t *testing.T) {
	session := connect(t, &fakeController{})

	text, isErr := callText(t, session, "move_window", map[string]any{"window": "about", "x": 120, "y": 34})
	if isErr {
		t.Fatalf("move_window returned error: %s", text)
	}
	var out WindowOutput
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		t.Fatalf("unmarshal %q: %v", text, err)
	}
	if !out.Window.Placed || out.Window.X != 120 || out.Window.Y != 34 {
		t.Errorf("window = %+v", out.Window)
	}
}

func TestUnknownWindowNeverReachesController(t *testing.T) {
	ctl := &fakeController{}
	session := connect(t, ctl)

	text, isErr := callText(t, session, "toggle_window", map[string]any{"window": "trash"})
	if !isErr {
		t.Fatalf("expected tool error, got %s", text)
	}
	if !strings.Contains(text, "unknown window") {
		t.Errorf("error text = %q", text)
	}
	if len(ctl.calls) != 0 {
		t.Errorf("controller called: %v", ctl.calls)
	}
}

func TestBackgroundAndLaunchTools(t *testing.T) {
	ctl := &fakeController{}
	session := connect(t, ctl)

	text, isErr := callText(t, session, "set_background", map[string]any{"name": "Light Salmon"})
	if isErr {
		t.Fatalf("set_background returned error: %s", text)
	}
	if ctl.background != "Light Salmon" {
		t.Errorf("background = %q", ctl.background)
	}

	text, isErr = callText(t, session, "toggle_launch", map[string]any{})
	if isErr {
		t.Fatalf("toggle_launch returned error: %s", text)
	}
	var out LaunchOutput
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		t.Fatalf("unmarshal %q: %v", text, err)
	}
	if !out.Launched {
		t.Error("expected launched after first toggle")
	}
}

func TestControllerErrorsBecomeToolErrors(t *testing.T) {
	ctl := &fakeController{err: errors.New("failed to connect to desktop")}
	session := connect(t, ctl)

	for _, tool := range []string{"desktop_status", "toggle_launch"} {
		text, isErr := callText(t, session, tool, map[string]any{})
		if !isErr {
			t.Errorf("%s: expected tool error, got %s", tool, text)
			continue
		}
		if !strings.Contains(text, "failed to connect") {
			t.Errorf("%s: error text = %q", tool, text)
		}
	}

	text, isErr := callText(t, session, "close_window", map[string]any{"window": "about"})
	if !isErr || !strings.Contains(text, "close_window about") {
		t.Errorf("close_window error = %v %q", isErr, text)
	}
}
