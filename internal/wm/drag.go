package wm

// DropTarget is a region that accepts a dragged window.
type DropTarget interface {
	Contains(p Point) bool
}

// DragTracker follows a single drag gesture from press to release.
// A drop lands the window's top-left at the release coordinates.
type DragTracker struct {
	active bool
	id     WindowID
	ghost  Point
}

// Begin starts dragging id from its current top-left origin.
func (d *DragTracker) Begin(id WindowID, origin Point) {
	mustValid(id)
	d.active = true
	d.id = id
	d.ghost = origin
}

// Active returns the dragged window, if any.
func (d *DragTracker) Active() (WindowID, bool) {
	return d.id, d.active
}

// Ghost returns where the window would land if released now.
func (d *DragTracker) Ghost() Point {
	return d.ghost
}

// Move follows the pointer.
func (d *DragTracker) Move(pointer Point) {
	if !d.active {
		return
	}
	d.ghost = pointer
}

// End finishes the gesture. It returns the release point and true only when
// the pointer is over one of targets; otherwise the drag is abandoned.
func (d *DragTracker) End(pointer Point, targets ...DropTarget) (WindowID, Point, bool) {
	if !d.active {
		return 0, Point{}, false
	}
	id := d.id
	d.Cancel()

	for _, t := range targets {
		if t != nil && t.Contains(pointer) {
			return id, pointer, true
		}
	}
	return id, Point{}, false
}

// Cancel abandons the gesture without reporting a drop.
func (d *DragTracker) Cancel() {
	*d = DragTracker{}
}
