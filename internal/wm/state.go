package wm

import (
	"errors"
	"fmt"
	"strings"
)

// WindowID identifies one of the fixed desktop windows.
type WindowID int

const (
	About WindowID = iota
	Projects
	Resume
	Contact
	windowCount // sentinel for iteration
)

// ErrUnknownWindow is returned when a window name does not match any WindowID.
var ErrUnknownWindow = errors.New("unknown window")

func (id WindowID) String() string {
	switch id {
	case About:
		return "about"
	case Projects:
		return "projects"
	case Resume:
		return "resume"
	case Contact:
		return "contact"
	default:
		return "?"
	}
}

// Title returns the label shown on the icon and the window title bar.
func (id WindowID) Title() string {
	switch id {
	case About:
		return "About Me"
	case Projects:
		return "Projects"
	case Resume:
		return "Resume"
	case Contact:
		return "Contact Me"
	default:
		return "?"
	}
}

// Valid reports whether id is one of the known windows.
func (id WindowID) Valid() bool {
	return id >= 0 && id < windowCount
}

// All returns every window in icon order.
func All() []WindowID {
	ids := make([]WindowID, 0, windowCount)
	for id := WindowID(0); id < windowCount; id++ {
		ids = append(ids, id)
	}
	return ids
}

// ParseWindowID resolves a window name such as "about" or "Contact".
func ParseWindowID(name string) (WindowID, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for id := WindowID(0); id < windowCount; id++ {
		if id.String() == needle {
			return id, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (want one of about, projects, resume, contact)", ErrUnknownWindow, name)
}

func mustValid(id WindowID) {
	if !id.Valid() {
		panic(fmt.Sprintf("wm: window id %d out of range", int(id)))
	}
}

// Point is a cell coordinate on the screen.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is a screen-space rectangle.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Phase is the joint view of a window's open and size flags.
type Phase int

const (
	PhaseClosed Phase = iota
	PhaseNormal
	PhaseMinimized
	PhaseMaximized
)

func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseNormal:
		return "normal"
	case PhaseMinimized:
		return "minimized"
	case PhaseMaximized:
		return "maximized"
	default:
		return "unknown"
	}
}

// State is the recorded state of a single window.
type State struct {
	Open      bool  `json:"open"`
	Minimized bool  `json:"minimized"`
	Maximized bool  `json:"maximized"`
	Position  Point `json:"position"`
	// Placed is false until the window has been dropped somewhere; unplaced
	// windows are centered by the compositor.
	Placed bool `json:"placed"`
}

// Phase collapses the flags. Minimized wins over maximized.
func (s State) Phase() Phase {
	switch {
	case !s.Open:
		return PhaseClosed
	case s.Minimized:
		return PhaseMinimized
	case s.Maximized:
		return PhaseMaximized
	default:
		return PhaseNormal
	}
}

// CloseMode selects what closing a window does to its size flags.
type CloseMode string

const (
	// CloseReset clears minimized and maximized on close.
	CloseReset CloseMode = "reset"
	// ClosePreserve clears minimized but keeps maximized across a reopen.
	ClosePreserve CloseMode = "preserve"
)

// ParseCloseMode parses a close mode name. Empty means CloseReset.
func ParseCloseMode(s string) (CloseMode, error) {
	switch CloseMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", CloseReset:
		return CloseReset, nil
	case ClosePreserve:
		return ClosePreserve, nil
	default:
		return "", fmt.Errorf("close mode must be one of: reset, preserve (got %q)", s)
	}
}
