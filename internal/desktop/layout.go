package desktop

import (
	"github.com/1broseidon/retrodesk/internal/wm"
)

// Screen rows taken by the menu bar (top) and the status line (bottom).
const (
	menuRows   = 1
	statusRows = 1
)

// Window chrome, in cells relative to the frame's top-left corner.
const (
	chromeRow      = 1 // title row, inside the top border
	chromeCloseX   = 2
	chromeMinX     = 5
	chromeMaxX     = 8
	chromeWidth    = 3
	minimizedRows  = 3 // border + title + border
	frameOverheadH = 4 // borders, title row and separator
	frameOverheadW = 4 // borders and one column of padding each side
)

// Icon grid along the top of the desktop area.
const (
	iconLeft   = 2
	iconTop    = 1
	iconWidth  = 12
	iconHeight = 4
	iconGap    = 2
)

type chromeHit int

const (
	hitNone chromeHit = iota
	hitClose
	hitMinimize
	hitMaximize
	hitTitle
	hitBody
)

// preferredSize is the restored size of each window before clamping.
func preferredSize(id wm.WindowID) (w, h int) {
	switch id {
	case wm.About:
		return 58, 16
	case wm.Projects:
		return 60, 13
	case wm.Resume:
		return 72, 26
	case wm.Contact:
		return 72, 21
	default:
		return 50, 12
	}
}

// deskSize is the desktop area between the menu bar and the status line.
func (m *Model) deskSize() (w, h int) {
	w = m.width
	h = m.height - menuRows - statusRows
	if h < 0 {
		h = 0
	}
	return w, h
}

// deskRect is the drop target, in desktop coordinates.
func (m *Model) deskRect() wm.Rect {
	w, h := m.deskSize()
	return wm.Rect{Width: w, Height: h}
}

// toDesk converts a screen cell to desktop coordinates.
func toDesk(x, y int) wm.Point {
	return wm.Point{X: x, Y: y - menuRows}
}

// frame is the on-desktop rectangle of an open window.
func (m *Model) frame(id wm.WindowID) wm.Rect {
	st := m.reg.State(id)
	dw, dh := m.deskSize()

	if st.Maximized {
		h := dh
		if st.Minimized {
			h = minimizedRows
		}
		return wm.Rect{Width: dw, Height: h}
	}

	w, h := m.restoredSize(id)
	pos := st.Position
	if !st.Placed {
		pos = m.centered(id, w, h)
	}
	if st.Minimized {
		h = minimizedRows
	}
	return wm.Rect{X: pos.X, Y: pos.Y, Width: w, Height: h}
}

func (m *Model) restoredSize(id wm.WindowID) (w, h int) {
	dw, dh := m.deskSize()
	w, h = preferredSize(id)
	if w > dw {
		w = dw
	}
	if h > dh {
		h = dh
	}
	return w, h
}

// centered places an unplaced window in the middle of the desktop, nudged by
// its index so several unplaced windows do not cover each other exactly.
func (m *Model) centered(id wm.WindowID, w, h int) wm.Point {
	dw, dh := m.deskSize()
	x := (dw-w)/2 + 2*int(id)
	y := (dh-h)/2 + int(id)
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return wm.Point{X: x, Y: y}
}

// bodySize is the content area inside a restored or maximized frame.
func (m *Model) bodySize(id wm.WindowID) (w, h int) {
	st := m.reg.State(id)
	var fw, fh int
	if st.Maximized {
		fw, fh = m.deskSize()
	} else {
		fw, fh = m.restoredSize(id)
	}
	w, h = fw-frameOverheadW, fh-frameOverheadH
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// hitChrome classifies a desktop point inside window id's frame.
func (m *Model) hitChrome(id wm.WindowID, p wm.Point) chromeHit {
	f := m.frame(id)
	if !f.Contains(p) {
		return hitNone
	}
	rx, ry := p.X-f.X, p.Y-f.Y
	if ry == chromeRow {
		switch {
		case rx >= chromeCloseX && rx < chromeCloseX+chromeWidth:
			return hitClose
		case rx >= chromeMinX && rx < chromeMinX+chromeWidth:
			return hitMinimize
		case rx >= chromeMaxX && rx < chromeMaxX+chromeWidth:
			return hitMaximize
		}
	}
	if ry <= chromeRow {
		return hitTitle
	}
	return hitBody
}

// windowAt returns the top-most open window containing p.
func (m *Model) windowAt(p wm.Point) (wm.WindowID, bool) {
	stack := m.reg.Stack()
	for i := len(stack) - 1; i >= 0; i-- {
		if m.frame(stack[i]).Contains(p) {
			return stack[i], true
		}
	}
	return 0, false
}

// iconRect is the clickable area of a desktop icon.
func iconRect(id wm.WindowID) wm.Rect {
	return wm.Rect{
		X:      iconLeft + int(id)*(iconWidth+iconGap),
		Y:      iconTop,
		Width:  iconWidth,
		Height: iconHeight,
	}
}

func iconAt(p wm.Point) (wm.WindowID, bool) {
	for _, id := range wm.All() {
		if iconRect(id).Contains(p) {
			return id, true
		}
	}
	return 0, false
}
