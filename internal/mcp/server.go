package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/retrodesk/internal/ipc"
)

const (
	ServerName    = "retrodesk"
	ServerVersion = "0.1.0"
)

// Controller is the control-channel surface the tools forward to.
// *ipc.Client implements it.
type Controller interface {
	GetStatus() (*ipc.StatusData, error)
	Toggle(name string) (*ipc.WindowStatus, error)
	Close(name string) (*ipc.WindowStatus, error)
	Minimize(name string) (*ipc.WindowStatus, error)
	Maximize(name string) (*ipc.WindowStatus, error)
	Move(name string, x, y int) (*ipc.WindowStatus, error)
	SetBackground(name string) (*ipc.BackgroundData, error)
	Launch() (*ipc.LaunchData, error)
}

// Server exposes the running desktop as MCP tools.
type Server struct {
	mcpServer *mcpsdk.Server
	ctl       Controller
	logger    *slog.Logger
}

// NewServer creates an MCP server forwarding to ctl.
func NewServer(ctl Controller, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		ctl:    ctl,
		logger: logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "desktop_status",
		Description: "Report every window's open, minimized and maximized flags and position, the back-to-front window stack, the background color and whether Special > Launch is active.",
	}, s.handleStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_window",
		Description: "Open a closed window (not minimized) or close an open one. Same as clicking its desktop icon.",
	}, s.handleToggle)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Close a window. With close_mode reset the minimized and maximized flags are cleared too.",
	}, s.handleClose)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "minimize_window",
		Description: "Flip a window's minimized flag. A minimized window shows only its title bar.",
	}, s.handleMinimize)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "maximize_window",
		Description: "Flip a window's maximized flag. A maximized window fills the desktop.",
	}, s.handleMaximize)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Place a window's top-left corner at a desktop cell, as if it had been dragged there.",
	}, s.handleMove)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_background",
		Description: "Change the desktop background to one of the View menu colors.",
	}, s.handleSetBackground)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_launch",
		Description: "Toggle Special > Launch: falling snow and the sparkle trail behind the mouse.",
	}, s.handleLaunch)
}
