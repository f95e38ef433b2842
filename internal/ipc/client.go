package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// Client handles IPC communication with a running desktop
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the default socket path
func NewClient() *Client {
	socketPath, err := DefaultSocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientAt(socketPath)
}

// NewClientAt creates a client for socketPath.
func NewClientAt(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to desktop: %w (is retrodesk running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == StatusError {
		return nil, fmt.Errorf("desktop error: %s", resp.Error)
	}

	return &resp, nil
}

func (c *Client) call(cmd CommandType, payload interface{}, out interface{}) error {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", cmd, err)
		}
		req.Payload = data
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", cmd, err)
	}
	return nil
}

// GetStatus retrieves the desktop status
func (c *Client) GetStatus() (*StatusData, error) {
	var status StatusData
	if err := c.call(CommandGetStatus, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) window(cmd CommandType, name string) (*WindowStatus, error) {
	var ws WindowStatus
	if err := c.call(cmd, WindowPayload{Window: name}, &ws); err != nil {
		return nil, err
	}
	return &ws, nil
}

// Toggle opens a closed window or closes an open one.
func (c *Client) Toggle(name string) (*WindowStatus, error) {
	return c.window(CommandToggle, name)
}

// Close closes a window.
func (c *Client) Close(name string) (*WindowStatus, error) {
	return c.window(CommandClose, name)
}

// Minimize flips a window's minimized flag.
func (c *Client) Minimize(name string) (*WindowStatus, error) {
	return c.window(CommandMinimize, name)
}

// Maximize flips a window's maximized flag.
func (c *Client) Maximize(name string) (*WindowStatus, error) {
	return c.window(CommandMaximize, name)
}

// Focus raises an open window.
func (c *Client) Focus(name string) (*WindowStatus, error) {
	return c.window(CommandFocus, name)
}

// Move places a window's top-left corner at (x, y) on the desktop.
func (c *Client) Move(name string, x, y int) (*WindowStatus, error) {
	var ws WindowStatus
	if err := c.call(CommandMove, MovePayload{Window: name, X: x, Y: y}, &ws); err != nil {
		return nil, err
	}
	return &ws, nil
}

// SetBackground selects a palette color by name or hex.
func (c *Client) SetBackground(name string) (*BackgroundData, error) {
	var data BackgroundData
	if err := c.call(CommandSetBackground, BackgroundPayload{Name: name}, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Launch toggles snow and the cursor trail.
func (c *Client) Launch() (*LaunchData, error) {
	var data LaunchData
	if err := c.call(CommandLaunch, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Ping checks if the desktop is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
