package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/retrodesk/internal/ipc"
	"github.com/1broseidon/retrodesk/internal/wm"
)

func (s *Server) handleStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ StatusInput) (*mcpsdk.CallToolResult, StatusOutput, error) {
	st, err := s.ctl.GetStatus()
	if err != nil {
		return nil, StatusOutput{}, err
	}
	return nil, StatusOutput{
		Windows:    st.Windows,
		Stack:      st.Stack,
		Focused:    st.Focused,
		Background: st.Background,
		Launched:   st.Launched,
		ShutDown:   st.ShutDown,
		CloseMode:  st.CloseMode,
	}, nil
}

// windowTool validates the name locally so a bad name never reaches the socket.
func (s *Server) windowTool(tool string, name string, call func(string) (*ipc.WindowStatus, error)) (*mcpsdk.CallToolResult, WindowOutput, error) {
	id, err := wm.ParseWindowID(name)
	if err != nil {
		return nil, WindowOutput{}, err
	}
	ws, err := call(id.String())
	if err != nil {
		s.logger.Warn("mcp tool failed", "tool", tool, "window", id.String(), "error", err)
		return nil, WindowOutput{}, fmt.Errorf("%s %s: %w", tool, id, err)
	}
	s.logger.Info("mcp tool", "tool", tool, "window", id.String())
	return nil, WindowOutput{Window: *ws}, nil
}

func (s *Server) handleToggle(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.windowTool("toggle_window", args.Window, s.ctl.Toggle)
}

func (s *Server) handleClose(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.windowTool("close_window", args.Window, s.ctl.Close)
}

func (s *Server) handleMinimize(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.windowTool("minimize_window", args.Window, s.ctl.Minimize)
}

func (s *Server) handleMaximize(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.windowTool("maximize_window", args.Window, s.ctl.Maximize)
}

func (s *Server) handleMove(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveWindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.windowTool("move_window", args.Window, func(name string) (*ipc.WindowStatus, error) {
		return s.ctl.Move(name, args.X, args.Y)
	})
}

func (s *Server) handleSetBackground(_ context.Context, _ *mcpsdk.CallToolRequest, args SetBackgroundInput) (*mcpsdk.CallToolResult, SetBackgroundOutput, error) {
	if args.Name == "" {
		return nil, SetBackgroundOutput{}, fmt.Errorf("name is required")
	}
	data, err := s.ctl.SetBackground(args.Name)
	if err != nil {
		return nil, SetBackgroundOutput{}, err
	}
	return nil, SetBackgroundOutput{Name: data.Name, Color: data.Color}, nil
}

func (s *Server) handleLaunch(_ context.Context, _ *mcpsdk.CallToolRequest, _ LaunchInput) (*mcpsdk.CallToolResult, LaunchOutput, error) {
	data, err := s.ctl.Launch()
	if err != nil {
		return nil, LaunchOutput{}, err
	}
	return nil, LaunchOutput{Launched: data.Launched}, nil
}
