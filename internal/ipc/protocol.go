package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus     CommandType = "GET_STATUS"
	CommandToggle        CommandType = "TOGGLE"
	CommandClose         CommandType = "CLOSE"
	CommandMinimize      CommandType = "MINIMIZE"
	CommandMaximize      CommandType = "MAXIMIZE"
	CommandMove          CommandType = "MOVE"
	CommandFocus         CommandType = "FOCUS"
	CommandSetBackground CommandType = "SET_BACKGROUND"
	CommandLaunch        CommandType = "LAUNCH"
)

const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// WindowStatus describes one window as seen by clients.
type WindowStatus struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Open      bool   `json:"open"`
	Minimized bool   `json:"minimized"`
	Maximized bool   `json:"maximized"`
	Placed    bool   `json:"placed"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	Windows       []WindowStatus `json:"windows"`
	Stack         []string       `json:"stack"`
	Focused       string         `json:"focused,omitempty"`
	Background    string         `json:"background"`
	Launched      bool           `json:"launched"`
	ShutDown      bool           `json:"shut_down"`
	CloseMode     string         `json:"close_mode"`
	UptimeSeconds int64          `json:"uptime_seconds"`
}

// WindowPayload names the target of TOGGLE, CLOSE, MINIMIZE, MAXIMIZE and FOCUS.
type WindowPayload struct {
	Window string `json:"window"`
}

// MovePayload represents the payload for the MOVE command
type MovePayload struct {
	Window string `json:"window"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// BackgroundPayload represents the payload for SET_BACKGROUND
type BackgroundPayload struct {
	Name string `json:"name"`
}

// BackgroundData is returned by SET_BACKGROUND.
type BackgroundData struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// LaunchData is returned by LAUNCH.
type LaunchData struct {
	Launched bool `json:"launched"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: StatusOK,
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: StatusError,
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
