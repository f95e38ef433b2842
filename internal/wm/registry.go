package wm

// Registry holds the state of every window plus the stacking order of the
// open ones. It is not safe for concurrent use; the desktop mutates it from
// its event loop only.
type Registry struct {
	windows [windowCount]State
	// stack lists open windows back-to-front.
	stack []WindowID
	mode  CloseMode
}

// NewRegistry creates a registry with every window closed.
func NewRegistry(mode CloseMode) *Registry {
	if mode == "" {
		mode = CloseReset
	}
	return &Registry{
		stack: make([]WindowID, 0, windowCount),
		mode:  mode,
	}
}

// CloseMode returns the configured close semantics.
func (r *Registry) CloseMode() CloseMode {
	return r.mode
}

// State returns the current state of id.
func (r *Registry) State(id WindowID) State {
	mustValid(id)
	return r.windows[id]
}

// ToggleOpen opens a closed window or closes an open one.
func (r *Registry) ToggleOpen(id WindowID) State {
	mustValid(id)
	if r.windows[id].Open {
		return r.Close(id)
	}
	w := &r.windows[id]
	w.Open = true
	w.Minimized = false
	r.raise(id)
	return *w
}

// Close hides the window. In CloseReset mode both size flags are cleared;
// in ClosePreserve mode only Minimized is.
func (r *Registry) Close(id WindowID) State {
	mustValid(id)
	w := &r.windows[id]
	w.Open = false
	w.Minimized = false
	if r.mode == CloseReset {
		w.Maximized = false
	}
	r.remove(id)
	return *w
}

// ToggleMinimize flips the minimized flag. Calling it on a closed window is
// allowed and only takes effect on screen once the window is reopened.
func (r *Registry) ToggleMinimize(id WindowID) State {
	mustValid(id)
	w := &r.windows[id]
	w.Minimized = !w.Minimized
	if w.Open {
		r.raise(id)
	}
	return *w
}

// ToggleMaximize flips the maximized flag, with the same tolerance for closed
// windows as ToggleMinimize.
func (r *Registry) ToggleMaximize(id WindowID) State {
	mustValid(id)
	w := &r.windows[id]
	w.Maximized = !w.Maximized
	if w.Open {
		r.raise(id)
	}
	return *w
}

// Drop commits a finished drag: the window's position becomes p. Drops on a
// maximized window are recorded and show once it is restored.
func (r *Registry) Drop(id WindowID, p Point) State {
	mustValid(id)
	w := &r.windows[id]
	w.Position = p
	w.Placed = true
	if w.Open {
		r.raise(id)
	}
	return *w
}

// Focus raises an open window to the top of the stack. It reports false for
// a closed window.
func (r *Registry) Focus(id WindowID) bool {
	mustValid(id)
	if !r.windows[id].Open {
		return false
	}
	r.raise(id)
	return true
}

// Stack returns the open windows back-to-front.
func (r *Registry) Stack() []WindowID {
	out := make([]WindowID, len(r.stack))
	copy(out, r.stack)
	return out
}

// Focused returns the top-most open window.
func (r *Registry) Focused() (WindowID, bool) {
	if len(r.stack) == 0 {
		return 0, false
	}
	return r.stack[len(r.stack)-1], true
}

// CycleFocus raises the bottom-most open window, rotating through the stack.
func (r *Registry) CycleFocus() (WindowID, bool) {
	if len(r.stack) == 0 {
		return 0, false
	}
	id := r.stack[0]
	r.raise(id)
	return id, true
}

// Snapshot returns a copy of every window's state keyed by name.
func (r *Registry) Snapshot() map[string]State {
	out := make(map[string]State, windowCount)
	for id := WindowID(0); id < windowCount; id++ {
		out[id.String()] = r.windows[id]
	}
	return out
}

func (r *Registry) raise(id WindowID) {
	r.remove(id)
	r.stack = append(r.stack, id)
}

func (r *Registry) remove(id WindowID) {
	for i, existing := range r.stack {
		if existing == id {
			r.stack = append(r.stack[:i], r.stack[i+1:]...)
			return
		}
	}
}
