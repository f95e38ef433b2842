package wm

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewRegistry_AllClosed(t *testing.T) {
	r := NewRegistry(CloseReset)
	for _, id := range All() {
		if got := r.State(id); got != (State{}) {
			t.Fatalf("State(%s) = %+v, want zero state", id, got)
		}
	}
	if len(r.Stack()) != 0 {
		t.Fatalf("expected empty stack, got %v", r.Stack())
	}
	if _, ok := r.Focused(); ok {
		t.Fatal("expected no focused window")
	}
}

func TestToggleOpen_TwiceRestoresOpenFlag(t *testing.T) {
	for _, mode := range []CloseMode{CloseReset, ClosePreserve} {
		for _, id := range All() {
			r := NewRegistry(mode)
			before := r.State(id).Open
			r.ToggleOpen(id)
			if !r.State(id).Open {
				t.Fatalf("%s/%s: expected open after first toggle", mode, id)
			}
			r.ToggleOpen(id)
			if r.State(id).Open != before {
				t.Fatalf("%s/%s: open = %v after two toggles, want %v", mode, id, r.State(id).Open, before)
			}
		}
	}
}

func TestToggleFlags_OnlyTouchOwnFlag(t *testing.T) {
	tests := []struct {
		name   string
		toggle func(r *Registry, id WindowID) State
		flag   func(s State) bool
		others func(s State) []bool
	}{
		{
			name:   "minimize",
			toggle: (*Registry).ToggleMinimize,
			flag:   func(s State) bool { return s.Minimized },
			others: func(s State) []bool { return []bool{s.Open, s.Maximized} },
		},
		{
			name:   "maximize",
			toggle: (*Registry).ToggleMaximize,
			flag:   func(s State) bool { return s.Maximized },
			others: func(s State) []bool { return []bool{s.Open, s.Minimized} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, target := range All() {
				r := NewRegistry(CloseReset)
				r.ToggleOpen(About)
				r.ToggleOpen(Contact)
				r.ToggleMaximize(Contact)

				before := r.Snapshot()
				got := tt.toggle(r, target)
				if tt.flag(got) == tt.flag(before[target.String()]) {
					t.Fatalf("%s on %s did not flip its flag", tt.name, target)
				}
				if !reflect.DeepEqual(tt.others(got), tt.others(before[target.String()])) {
					t.Fatalf("%s on %s changed other flags: before %+v after %+v", tt.name, target, before[target.String()], got)
				}
				for _, other := range All() {
					if other == target {
						continue
					}
					if r.State(other) != before[other.String()] {
						t.Fatalf("%s on %s changed %s: %+v -> %+v", tt.name, target, other, before[other.String()], r.State(other))
					}
				}
			}
		})
	}
}

func TestTransitions_DoNotLeakToSiblings(t *testing.T) {
	ops := map[string]func(r *Registry, id WindowID){
		"toggle_open": func(r *Registry, id WindowID) { r.ToggleOpen(id) },
		"close":       func(r *Registry, id WindowID) { r.Close(id) },
		"minimize":    func(r *Registry, id WindowID) { r.ToggleMinimize(id) },
		"maximize":    func(r *Registry, id WindowID) { r.ToggleMaximize(id) },
		"drop":        func(r *Registry, id WindowID) { r.Drop(id, Point{X: 7, Y: 9}) },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			r := NewRegistry(CloseReset)
			r.ToggleOpen(Projects)
			r.ToggleMinimize(Projects)
			r.Drop(Resume, Point{X: 3, Y: 4})

			before := r.Snapshot()
			op(r, About)
			after := r.Snapshot()
			for _, id := range []WindowID{Projects, Resume, Contact} {
				if before[id.String()] != after[id.String()] {
					t.Fatalf("%s on about changed %s: %+v -> %+v", name, id, before[id.String()], after[id.String()])
				}
			}
		})
	}
}

func TestScenario_OpenMinimizeCloseReopen_Reset(t *testing.T) {
	r := NewRegistry(CloseReset)

	if got, want := r.ToggleOpen(About), (State{Open: true}); got != want {
		t.Fatalf("open: got %+v, want %+v", got, want)
	}
	if got, want := r.ToggleMinimize(About), (State{Open: true, Minimized: true}); got != want {
		t.Fatalf("minimize: got %+v, want %+v", got, want)
	}
	if got, want := r.Close(About), (State{}); got != want {
		t.Fatalf("close: got %+v, want %+v", got, want)
	}
	if got, want := r.ToggleOpen(About), (State{Open: true}); got != want {
		t.Fatalf("reopen: got %+v, want %+v", got, want)
	}
}

func TestClose_PreserveKeepsMaximized(t *testing.T) {
	r := NewRegistry(ClosePreserve)
	r.ToggleOpen(Resume)
	r.ToggleMaximize(Resume)
	r.ToggleMinimize(Resume)

	got := r.Close(Resume)
	if got.Open || got.Minimized || !got.Maximized {
		t.Fatalf("close in preserve mode: got %+v", got)
	}
	got = r.ToggleOpen(Resume)
	if !got.Open || got.Minimized || !got.Maximized {
		t.Fatalf("reopen in preserve mode: got %+v", got)
	}
}

func TestToggleOpen_ClosingMatchesClose(t *testing.T) {
	for _, mode := range []CloseMode{CloseReset, ClosePreserve} {
		a := NewRegistry(mode)
		b := NewRegistry(mode)
		for _, r := range []*Registry{a, b} {
			r.ToggleOpen(Contact)
			r.ToggleMaximize(Contact)
			r.ToggleMinimize(Contact)
		}
		if got, want := a.ToggleOpen(Contact), b.Close(Contact); got != want {
			t.Fatalf("%s: toggle-close %+v != close %+v", mode, got, want)
		}
	}
}

func TestToggleOnClosedWindow_IsTolerated(t *testing.T) {
	r := NewRegistry(CloseReset)
	got := r.ToggleMinimize(Projects)
	if got.Open || !got.Minimized {
		t.Fatalf("unexpected state %+v", got)
	}
	if len(r.Stack()) != 0 {
		t.Fatalf("closed window entered the stack: %v", r.Stack())
	}
	got = r.ToggleMinimize(Projects)
	if got != (State{}) {
		t.Fatalf("double toggle on closed window: got %+v", got)
	}
}

func TestStack_LastInteractedOnTop(t *testing.T) {
	r := NewRegistry(CloseReset)
	r.ToggleOpen(About)
	r.ToggleOpen(Projects)
	r.ToggleOpen(Resume)

	if got, want := r.Stack(), []WindowID{About, Projects, Resume}; !reflect.DeepEqual(got, want) {
		t.Fatalf("stack = %v, want %v", got, want)
	}

	r.ToggleMinimize(About)
	if got, want := r.Stack(), []WindowID{Projects, Resume, About}; !reflect.DeepEqual(got, want) {
		t.Fatalf("after minimize stack = %v, want %v", got, want)
	}

	r.Close(Resume)
	if got, want := r.Stack(), []WindowID{Projects, About}; !reflect.DeepEqual(got, want) {
		t.Fatalf("after close stack = %v, want %v", got, want)
	}

	if id, ok := r.Focused(); !ok || id != About {
		t.Fatalf("Focused() = %v, %v; want about", id, ok)
	}

	if id, ok := r.CycleFocus(); !ok || id != Projects {
		t.Fatalf("CycleFocus() = %v, %v; want projects", id, ok)
	}
	if r.Focus(Resume) {
		t.Fatal("Focus on closed window should report false")
	}
}

func TestDrop_SetsPosition(t *testing.T) {
	r := NewRegistry(CloseReset)
	r.ToggleOpen(Projects)
	r.ToggleMaximize(Projects)

	got := r.Drop(Projects, Point{X: 120, Y: 340})
	if got.Position != (Point{X: 120, Y: 340}) || !got.Placed {
		t.Fatalf("Drop() = %+v", got)
	}
	if !got.Maximized {
		t.Fatal("drop must not clear maximized")
	}
}

func TestDragTracker_CommitsOnlyOverTarget(t *testing.T) {
	desk := Rect{X: 0, Y: 1, Width: 500, Height: 500}

	t.Run("valid drop", func(t *testing.T) {
		r := NewRegistry(CloseReset)
		r.ToggleOpen(About)

		var d DragTracker
		d.Begin(About, Point{X: 10, Y: 10})
		d.Move(Point{X: 60, Y: 80})
		if d.Ghost() != (Point{X: 60, Y: 80}) {
			t.Fatalf("ghost = %+v", d.Ghost())
		}
		id, at, ok := d.End(Point{X: 120, Y: 340}, desk)
		if !ok || id != About {
			t.Fatalf("End() = %v, %v, %v", id, at, ok)
		}
		r.Drop(id, at)
		if got := r.State(About).Position; got != (Point{X: 120, Y: 340}) {
			t.Fatalf("position = %+v, want {120 340}", got)
		}
		if _, active := d.Active(); active {
			t.Fatal("tracker still active after End")
		}
	})

	t.Run("released outside", func(t *testing.T) {
		r := NewRegistry(CloseReset)
		r.ToggleOpen(About)
		r.Drop(About, Point{X: 5, Y: 6})

		var d DragTracker
		d.Begin(About, Point{X: 5, Y: 6})
		id, at, ok := d.End(Point{X: 9999, Y: 0}, desk)
		if ok {
			r.Drop(id, at)
			t.Fatal("expected drag to be abandoned")
		}
		if got := r.State(About).Position; got != (Point{X: 5, Y: 6}) {
			t.Fatalf("position changed to %+v", got)
		}
	})

	t.Run("lands at release point", func(t *testing.T) {
		var d DragTracker
		d.Begin(Resume, Point{X: 10, Y: 2})
		d.Move(Point{X: 30, Y: 9})
		_, at, ok := d.End(Point{X: 40, Y: 20}, desk)
		if !ok || at != (Point{X: 40, Y: 20}) {
			t.Fatalf("End() = %+v, %v, want {40 20}", at, ok)
		}
	})

	t.Run("end without begin", func(t *testing.T) {
		var d DragTracker
		if _, _, ok := d.End(Point{X: 1, Y: 1}, desk); ok {
			t.Fatal("End without Begin must not report a drop")
		}
	})
}

func TestParseWindowID(t *testing.T) {
	tests := []struct {
		in      string
		want    WindowID
		wantErr bool
	}{
		{"about", About, false},
		{" Projects ", Projects, false},
		{"RESUME", Resume, false},
		{"contact", Contact, false},
		{"trash", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseWindowID(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownWindow) {
				t.Errorf("ParseWindowID(%q) err = %v, want ErrUnknownWindow", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseWindowID(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestUnknownWindowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range window id")
		}
	}()
	NewRegistry(CloseReset).ToggleOpen(WindowID(42))
}

func TestStatePhase(t *testing.T) {
	tests := []struct {
		state State
		want  Phase
	}{
		{State{}, PhaseClosed},
		{State{Minimized: true, Maximized: true}, PhaseClosed},
		{State{Open: true}, PhaseNormal},
		{State{Open: true, Minimized: true}, PhaseMinimized},
		{State{Open: true, Maximized: true}, PhaseMaximized},
		{State{Open: true, Minimized: true, Maximized: true}, PhaseMinimized},
	}
	for _, tt := range tests {
		if got := tt.state.Phase(); got != tt.want {
			t.Errorf("%+v.Phase() = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestParseCloseMode(t *testing.T) {
	if m, err := ParseCloseMode(""); err != nil || m != CloseReset {
		t.Fatalf("empty: %v %v", m, err)
	}
	if m, err := ParseCloseMode("Preserve"); err != nil || m != ClosePreserve {
		t.Fatalf("preserve: %v %v", m, err)
	}
	if _, err := ParseCloseMode("sticky"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
