// Package desktop is the bubbletea root model: it owns the window registry,
// routes keyboard and mouse input to window transitions, and composites
// the desktop, windows and overlays into one frame.
package desktop

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/retrodesk/internal/config"
	"github.com/1broseidon/retrodesk/internal/contact"
	"github.com/1broseidon/retrodesk/internal/content"
	"github.com/1broseidon/retrodesk/internal/effects"
	"github.com/1broseidon/retrodesk/internal/inbox"
	"github.com/1broseidon/retrodesk/internal/ipc"
	"github.com/1broseidon/retrodesk/internal/menubar"
	"github.com/1broseidon/retrodesk/internal/wm"
)

// Options configures a new desktop.
type Options struct {
	Config   *config.Config
	Pages    *content.Library
	Recorder inbox.Recorder
	Logger   *slog.Logger
	// Seed drives snow and trail jitter; zero uses the clock.
	Seed uint64
}

// Model is the desktop root model. It is used through a pointer so the
// contact sheet's form bindings stay valid across updates.
type Model struct {
	cfg    *config.Config
	logger *slog.Logger

	reg   *wm.Registry
	drag  wm.DragTracker
	bar   *menubar.Bar
	sheet *contact.Sheet
	pages *content.Library
	views map[wm.WindowID]*viewport.Model

	snow        *effects.Snow
	trail       *effects.Trail
	snowGen     int
	trailTicked bool

	background   config.Swatch
	launched     bool
	shuttingDown bool
	shutDown     bool

	// status is a transient message shown on the bottom line.
	status string
	link   string

	width   int
	height  int
	started time.Time
	now     func() time.Time
}

type snowTickMsg struct{ gen int }

type trailTickMsg struct{}

type shutdownMsg struct{}

// New creates a desktop with every window closed.
func New(opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	pages := opts.Pages
	if pages == nil {
		var err error
		pages, err = content.Load("", cfg.GlamourStyle)
		if err != nil {
			return nil, err
		}
	}
	mode, err := wm.ParseCloseMode(cfg.CloseMode)
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	links := make([]menubar.Entry, 0, len(cfg.Links))
	for _, l := range cfg.Links {
		links = append(links, menubar.Entry{Label: l.Label, Value: l.URL})
	}
	colors := make([]menubar.Entry, 0, len(config.Palette))
	for _, sw := range config.Palette {
		colors = append(colors, menubar.Entry{Label: sw.Name, Value: sw.Name})
	}

	m := &Model{
		cfg:        cfg,
		logger:     logger,
		reg:        wm.NewRegistry(mode),
		bar:        menubar.New(cfg.Owner, links, colors),
		sheet:      contact.New(cfg.Owner, opts.Recorder, logger),
		pages:      pages,
		views:      make(map[wm.WindowID]*viewport.Model),
		snow:       effects.NewSnow(cfg.Snow.Flakes, seed),
		trail:      effects.NewTrail(time.Duration(cfg.Trail.TTLMS)*time.Millisecond, seed+1),
		background: cfg.BackgroundSwatch(),
		started:    time.Now(),
		now:        time.Now,
	}
	for _, id := range wm.All() {
		if id == wm.Contact {
			continue
		}
		vp := viewport.New(1, 1)
		m.views[id] = &vp
	}
	return m, nil
}

// Registry exposes the window registry for inspection.
func (m *Model) Registry() *wm.Registry { return m.reg }

// Sheet exposes the contact sheet.
func (m *Model) Sheet() *contact.Sheet { return m.sheet }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle(fmt.Sprintf("%s - retrodesk", m.cfg.Owner))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case controlMsg:
		return m, m.handleControl(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		dw, dh := m.deskSize()
		m.snow.Resize(dw, dh)
		for _, id := range wm.All() {
			m.refreshBody(id)
		}
		return m, nil

	case snowTickMsg:
		if msg.gen != m.snowGen || !m.snow.Active() {
			return m, nil
		}
		m.snow.Step()
		return m, m.snowTick()

	case trailTickMsg:
		if m.trail.Prune(m.now()) == 0 {
			m.trailTicked = false
			return m, nil
		}
		return m, m.trailTick()

	case shutdownMsg:
		m.shutDown = true
		m.logger.Info("shut down complete")
		return m, nil
	}

	// The contact form captures every key while editing; only ctrl+c escapes.
	if m.sheet.Editing() {
		if km, ok := msg.(tea.KeyMsg); ok {
			if km.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, m.sheet.Update(msg)
		}
		if _, ok := msg.(tea.MouseMsg); !ok {
			return m, m.sheet.Update(msg)
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" || key == "q" {
		return tea.Quit
	}
	if m.shuttingDown {
		return nil
	}

	if m.bar.IsOpen() {
		switch key {
		case "esc", "f10":
			m.bar.Close()
		case "left", "shift+tab":
			m.bar.MoveMenu(-1)
		case "right", "tab":
			m.bar.MoveMenu(1)
		case "up":
			m.bar.MoveCursor(-1)
		case "down":
			m.bar.MoveCursor(1)
		case "enter", " ":
			if it, ok := m.bar.Select(); ok {
				return m.runMenuItem(it)
			}
		}
		return nil
	}

	switch key {
	case "1", "2", "3", "4":
		id := wm.WindowID(key[0] - '1')
		_, _ = m.applyWindowOp(ipc.OpToggle, id)
	case "f10":
		m.bar.Open(menubar.MenuApple)
	case "tab":
		if id, ok := m.reg.CycleFocus(); ok {
			m.logger.Debug("focus cycled", "window", id.String())
		}
	case "x", "n", "m":
		id, ok := m.reg.Focused()
		if !ok {
			return nil
		}
		op := map[string]ipc.WindowOp{"x": ipc.OpClose, "n": ipc.OpMinimize, "m": ipc.OpMaximize}[key]
		_, _ = m.applyWindowOp(op, id)
	case "up", "down", "left", "right":
		m.nudge(key)
	case "pgup", "pgdown":
		if id, ok := m.reg.Focused(); ok {
			m.scroll(id, map[string]int{"pgup": -1, "pgdown": 1}[key]*5)
		}
	case "enter":
		if id, ok := m.reg.Focused(); ok && id == wm.Contact && !m.reg.State(id).Minimized {
			w, _ := m.bodySize(id)
			return m.sheet.StartEditing(w)
		}
	case "esc":
		m.status, m.link = "", ""
	}
	return nil
}

// nudge moves the focused window one cell (two horizontally) and commits
// through Drop like a finished drag.
func (m *Model) nudge(key string) {
	id, ok := m.reg.Focused()
	if !ok {
		return
	}
	st := m.reg.State(id)
	origin := st.Position
	if !st.Maximized {
		f := m.frame(id)
		origin = wm.Point{X: f.X, Y: f.Y}
	}
	switch key {
	case "up":
		origin.Y--
	case "down":
		origin.Y++
	case "left":
		origin.X -= 2
	case "right":
		origin.X += 2
	}
	m.reg.Drop(id, origin)
}

func (m *Model) scroll(id wm.WindowID, delta int) {
	vp, ok := m.views[id]
	if !ok {
		return
	}
	vp.SetYOffset(vp.YOffset + delta)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.shuttingDown {
		return nil
	}

	var cmds []tea.Cmd
	if m.launched && (msg.Action == tea.MouseActionMotion || msg.Action == tea.MouseActionPress) {
		if m.trail.Spawn(msg.X, msg.Y, m.now()) && !m.trailTicked {
			m.trailTicked = true
			cmds = append(cmds, m.trailTick())
		}
	}

	p := toDesk(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionMotion:
		if _, dragging := m.drag.Active(); dragging {
			m.drag.Move(p)
		}

	case tea.MouseActionRelease:
		if id, at, ok := m.drag.End(p, m.deskRect()); ok {
			m.reg.Drop(id, at)
			m.logger.Info("window moved", "window", id.String(), "x", at.X, "y", at.Y, "source", "drag")
		}

	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			cmds = append(cmds, m.handlePress(msg.X, msg.Y, p))
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			if id, ok := m.windowAt(p); ok {
				delta := 1
				if msg.Button == tea.MouseButtonWheelUp {
					delta = -1
				}
				m.scroll(id, delta*2)
			}
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) handlePress(x, y int, p wm.Point) tea.Cmd {
	if y < menuRows {
		if menu, ok := m.bar.HitTitle(x); ok {
			m.bar.Toggle(menu)
		} else {
			m.bar.Close()
		}
		return nil
	}
	if m.bar.IsOpen() {
		if i, ok := m.bar.HitItem(x, y); ok {
			if it, ok := m.bar.Choose(i); ok {
				return m.runMenuItem(it)
			}
			return nil
		}
		m.bar.Close()
		return nil
	}

	if id, ok := m.windowAt(p); ok {
		switch m.hitChrome(id, p) {
		case hitClose:
			_, _ = m.applyWindowOp(ipc.OpClose, id)
		case hitMinimize:
			_, _ = m.applyWindowOp(ipc.OpMinimize, id)
		case hitMaximize:
			_, _ = m.applyWindowOp(ipc.OpMaximize, id)
		case hitTitle:
			m.reg.Focus(id)
			f := m.frame(id)
			m.drag.Begin(id, wm.Point{X: f.X, Y: f.Y})
		default:
			m.reg.Focus(id)
		}
		return nil
	}

	if id, ok := iconAt(p); ok {
		_, _ = m.applyWindowOp(ipc.OpToggle, id)
	}
	return nil
}

func (m *Model) runMenuItem(it menubar.Item) tea.Cmd {
	switch it.Action {
	case menubar.ActionShutDown:
		return m.shutdown()
	case menubar.ActionOpenLink:
		m.status = it.Label
		m.link = it.Value
		m.logger.Info("link selected", "label", it.Label, "url", it.Value)
	case menubar.ActionSetBackground:
		if _, err := m.setBackground(it.Value); err != nil {
			m.status = err.Error()
		}
	case menubar.ActionToggleLaunch:
		return m.toggleLaunch()
	}
	return nil
}

// toggleLaunch flips snow and the cursor trail together.
func (m *Model) toggleLaunch() tea.Cmd {
	m.launched = !m.launched
	m.bar.SetLaunched(m.launched)
	m.snowGen++
	m.logger.Info("launch toggled", "launched", m.launched)

	if m.launched {
		dw, dh := m.deskSize()
		m.snow.Start(dw, dh)
		m.trail.Enable()
		return m.snowTick()
	}
	m.snow.Stop()
	m.trail.Disable()
	return nil
}

// shutdown starts the fade to black. The process keeps running.
func (m *Model) shutdown() tea.Cmd {
	if m.shuttingDown {
		return nil
	}
	m.shuttingDown = true
	m.bar.Close()
	m.drag.Cancel()
	if m.launched {
		m.toggleLaunch()
	}
	m.logger.Info("shutting down", "fade_ms", m.cfg.ShutdownFadeMS)

	fade := time.Duration(m.cfg.ShutdownFadeMS) * time.Millisecond
	if fade <= 0 {
		m.shutDown = true
		return nil
	}
	return tea.Tick(fade, func(time.Time) tea.Msg { return shutdownMsg{} })
}

func (m *Model) snowTick() tea.Cmd {
	gen := m.snowGen
	d := time.Duration(m.cfg.Snow.TickMS) * time.Millisecond
	return tea.Tick(d, func(time.Time) tea.Msg { return snowTickMsg{gen: gen} })
}

func (m *Model) trailTick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(time.Time) tea.Msg { return trailTickMsg{} })
}

// refreshBody re-renders a window's page at its current body width.
func (m *Model) refreshBody(id wm.WindowID) {
	vp, ok := m.views[id]
	if !ok || m.width == 0 {
		return
	}
	w, h := m.bodySize(id)
	vp.Width = w
	vp.Height = h

	out, err := m.pages.Render(id.String(), w)
	if err != nil {
		m.logger.Warn("failed to render page", "page", id.String(), "error", err)
		out, _ = m.pages.Markdown(id.String())
	}
	vp.SetContent(out)
}
