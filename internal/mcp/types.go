package mcp

import "github.com/1broseidon/retrodesk/internal/ipc"

// StatusInput is the input for the desktop_status tool.
type StatusInput struct{}

// StatusOutput is the output for the desktop_status tool.
type StatusOutput struct {
	Windows    []ipc.WindowStatus `json:"windows"`
	Stack      []string           `json:"stack"`
	Focused    string             `json:"focused,omitempty"`
	Background string             `json:"background"`
	Launched   bool               `json:"launched"`
	ShutDown   bool               `json:"shut_down"`
	CloseMode  string             `json:"close_mode"`
}

// WindowInput names a window for the toggle, close, minimize and maximize tools.
type WindowInput struct {
	Window string `json:"window" jsonschema:"Window name: about, projects, resume or contact"`
}

// MoveWindowInput is the input for the move_window tool.
type MoveWindowInput struct {
	Window string `json:"window" jsonschema:"Window name: about, projects, resume or contact"`
	X      int    `json:"x" jsonschema:"Desktop column of the window's top-left corner"`
	Y      int    `json:"y" jsonschema:"Desktop row of the window's top-left corner"`
}

// WindowOutput reports a window's state after a tool call.
type WindowOutput struct {
	Window ipc.WindowStatus `json:"window"`
}

// SetBackgroundInput is the input for the set_background tool.
type SetBackgroundInput struct {
	Name string `json:"name" jsonschema:"Palette color name (Blue Sky, Light Green, Light Salmon) or its hex value"`
}

// SetBackgroundOutput is the output for the set_background tool.
type SetBackgroundOutput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// LaunchInput is the input for the toggle_launch tool.
type LaunchInput struct{}

// LaunchOutput is the output for the toggle_launch tool.
type LaunchOutput struct {
	Launched bool `json:"launched"`
}
