package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/retrodesk/internal/wm"
)

// WindowOp is a single-window transition requested over the socket.
type WindowOp int

const (
	OpToggle WindowOp = iota
	OpClose
	OpMinimize
	OpMaximize
	OpFocus
)

func (o WindowOp) String() string {
	switch o {
	case OpToggle:
		return "toggle"
	case OpClose:
		return "close"
	case OpMinimize:
		return "minimize"
	case OpMaximize:
		return "maximize"
	case OpFocus:
		return "focus"
	default:
		return "?"
	}
}

// ErrSocketInUse is returned by Start when another desktop answers on the
// socket path.
var ErrSocketInUse = errors.New("control socket in use")

// Dispatcher applies requests to the running desktop. Implementations must
// be safe to call from the server's connection goroutines.
type Dispatcher interface {
	Status(ctx context.Context) (*StatusData, error)
	Window(ctx context.Context, op WindowOp, id wm.WindowID) (*WindowStatus, error)
	Move(ctx context.Context, id wm.WindowID, p wm.Point) (*WindowStatus, error)
	SetBackground(ctx context.Context, name string) (*BackgroundData, error)
	ToggleLaunch(ctx context.Context) (*LaunchData, error)
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	dispatcher   Dispatcher
	logger       *slog.Logger
	timeout      time.Duration
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
	wg           sync.WaitGroup
}

// NewServer creates a server on the default runtime socket path.
func NewServer(d Dispatcher, logger *slog.Logger) (*Server, error) {
	socketPath, err := DefaultSocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	return NewServerAt(socketPath, d, logger), nil
}

// NewServerAt creates a server listening on socketPath.
func NewServerAt(socketPath string, d Dispatcher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		socketPath: socketPath,
		dispatcher: d,
		logger:     logger,
		timeout:    3 * time.Second,
		startTime:  time.Now(),
	}
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Uptime is the time since the server was created.
func (s *Server) Uptime() time.Duration {
	return time.Since(s.startTime)
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	if conn, err := net.DialTimeout("unix", s.socketPath, 500*time.Millisecond); err == nil {
		conn.Close()
		return fmt.Errorf("%w: %s", ErrSocketInUse, s.socketPath)
	}
	// Nobody answered: whatever is left is from a crashed desktop.
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("control socket listening", "path", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.logger.Warn("control accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("control read error", "error", err)
		return
	}
	if len(data) == 0 {
		// A liveness check from Start: connected and hung up.
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	resp := s.handleCommand(ctx, req)

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal control response", "error", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("failed to send control response", "error", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(ctx context.Context, req *Request) *Response {
	s.logger.Debug("control command", "command", req.Command)

	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus(ctx)
	case CommandToggle:
		return s.handleWindow(ctx, OpToggle, req.Payload)
	case CommandClose:
		return s.handleWindow(ctx, OpClose, req.Payload)
	case CommandMinimize:
		return s.handleWindow(ctx, OpMinimize, req.Payload)
	case CommandMaximize:
		return s.handleWindow(ctx, OpMaximize, req.Payload)
	case CommandFocus:
		return s.handleWindow(ctx, OpFocus, req.Payload)
	case CommandMove:
		return s.handleMove(ctx, req.Payload)
	case CommandSetBackground:
		return s.handleSetBackground(ctx, req.Payload)
	case CommandLaunch:
		return s.handleLaunch(ctx)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleGetStatus(ctx context.Context) *Response {
	status, err := s.dispatcher.Status(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to get status: %v", err))
	}
	status.UptimeSeconds = int64(s.Uptime().Seconds())
	return okOrError(status)
}

func (s *Server) handleWindow(ctx context.Context, op WindowOp, payload json.RawMessage) *Response {
	var req WindowPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid payload: %v", err))
	}
	id, err := wm.ParseWindowID(req.Window)
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	ws, err := s.dispatcher.Window(ctx, op, id)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to %s %s: %v", op, id, err))
	}
	s.logger.Info("control window op", "op", op.String(), "window", id.String())
	return okOrError(ws)
}

func (s *Server) handleMove(ctx context.Context, payload json.RawMessage) *Response {
	var req MovePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid payload: %v", err))
	}
	id, err := wm.ParseWindowID(req.Window)
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	ws, err := s.dispatcher.Move(ctx, id, wm.Point{X: req.X, Y: req.Y})
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to move %s: %v", id, err))
	}
	return okOrError(ws)
}

func (s *Server) handleSetBackground(ctx context.Context, payload json.RawMessage) *Response {
	var req BackgroundPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid payload: %v", err))
	}
	if req.Name == "" {
		return NewErrorResponse("name is required")
	}

	data, err := s.dispatcher.SetBackground(ctx, req.Name)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to set background: %v", err))
	}
	return okOrError(data)
}

func (s *Server) handleLaunch(ctx context.Context) *Response {
	data, err := s.dispatcher.ToggleLaunch(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to toggle launch: %v", err))
	}
	return okOrError(data)
}

func okOrError(data interface{}) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener == nil {
		return
	}
	s.listener.Close()
	s.wg.Wait()
	os.Remove(s.socketPath)
}
