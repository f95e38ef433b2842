package desktop

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/1broseidon/retrodesk/internal/wm"
)

var (
	windowBorder = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#000000")).
			BorderBackground(lipgloss.Color("#e8e8e8"))

	titleBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#e8e8e8")).
			Foreground(lipgloss.Color("#000000"))

	focusedTitleStyle = titleBarStyle.Bold(true)

	closeStyle = lipgloss.NewStyle().Background(lipgloss.Color("#ef4444")).Foreground(lipgloss.Color("#000000"))
	minStyle   = lipgloss.NewStyle().Background(lipgloss.Color("#eab308")).Foreground(lipgloss.Color("#000000"))
	maxStyle   = lipgloss.NewStyle().Background(lipgloss.Color("#22c55e")).Foreground(lipgloss.Color("#000000"))

	bodyStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#ffffff")).
			Foreground(lipgloss.Color("#000000"))

	ghostStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#ffffff"))

	iconBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#ffffff")).
			Foreground(lipgloss.Color("#000000")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#dddddd")).
			Foreground(lipgloss.Color("#333333"))

	sparkleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)

	blackStyle = lipgloss.NewStyle().Background(lipgloss.Color("#000000")).Foreground(lipgloss.Color("#555555"))
)

var iconGlyphs = map[wm.WindowID]string{
	wm.About:    "☺",
	wm.Projects: "▤",
	wm.Resume:   "≡",
	wm.Contact:  "✉",
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.shutDown {
		return m.blackScreen()
	}

	dw, dh := m.deskSize()
	desk := lipgloss.NewStyle().Background(lipgloss.Color(m.background.Color))

	canvas := make([]string, dh)
	blank := desk.Render(strings.Repeat(" ", dw))
	for i := range canvas {
		canvas[i] = blank
	}

	for _, id := range wm.All() {
		r := iconRect(id)
		overlay(canvas, m.renderIcon(id, desk), r.X, r.Y)
	}

	flake := desk.Foreground(lipgloss.Color("#ffffff"))
	for _, f := range m.snow.Flakes() {
		overlay(canvas, flake.Render(f.Glyph), f.X, int(f.Y))
	}

	focused, _ := m.reg.Focused()
	for _, id := range m.reg.Stack() {
		f := m.frame(id)
		overlay(canvas, m.renderWindow(id, f, id == focused), f.X, f.Y)
	}

	if id, ok := m.drag.Active(); ok {
		g := m.drag.Ghost()
		f := m.frame(id)
		ghost := ghostStyle.Width(max(f.Width-2, 1)).Height(max(f.Height-2, 1)).Render("")
		overlay(canvas, ghost, g.X, g.Y)
	}

	for _, s := range m.trail.Sparkles() {
		overlay(canvas, sparkleStyle.Render("✦"), s.X, s.Y-menuRows)
	}

	lines := make([]string, 0, m.height)
	lines = append(lines, m.bar.View(m.width))
	lines = append(lines, canvas...)
	lines = append(lines, m.statusLine())

	if drop := m.bar.Dropdown(); drop != "" {
		x, y := m.bar.DropdownOrigin()
		overlay(lines, drop, x, y)
	}

	return strings.Join(lines, "\n")
}

func (m *Model) renderIcon(id wm.WindowID, desk lipgloss.Style) string {
	box := iconBoxStyle.Render(iconGlyphs[id])
	label := desk.Foreground(lipgloss.Color("#ffffff")).Bold(true).
		Width(iconWidth).Align(lipgloss.Center).
		Render(ansi.Truncate(id.Title(), iconWidth, ""))
	return lipgloss.JoinVertical(lipgloss.Center,
		desk.Width(iconWidth).Align(lipgloss.Center).Render(box),
		label,
	)
}

// renderWindow draws a frame of f.Width x f.Height cells.
func (m *Model) renderWindow(id wm.WindowID, f wm.Rect, focused bool) string {
	innerW := max(f.Width-2, 1)

	chrome := closeStyle.Render("[x]") + minStyle.Render("[_]") + maxStyle.Render("[□]")
	ts := titleBarStyle
	if focused {
		ts = focusedTitleStyle
	}
	titleW := max(innerW-1-lipgloss.Width(chrome), 0)
	title := titleBarStyle.Render(" ") + chrome +
		ts.Width(titleW).Align(lipgloss.Center).Render(ansi.Truncate(id.Title(), titleW, "…"))

	rows := []string{title}
	if m.reg.State(id).Minimized {
		return windowBorder.Render(strings.Join(rows, "\n"))
	}

	rows = append(rows, titleBarStyle.Render(strings.Repeat("─", innerW)))
	bodyH := max(f.Height-frameOverheadH, 1)
	bodyW := max(innerW-2, 1)
	for _, line := range fitLines(m.body(id), bodyW, bodyH) {
		rows = append(rows, bodyStyle.Render(" "+line+" "))
	}
	return windowBorder.Render(strings.Join(rows, "\n"))
}

func (m *Model) body(id wm.WindowID) string {
	if id == wm.Contact {
		w, _ := m.bodySize(id)
		return m.sheet.View(w)
	}
	if vp, ok := m.views[id]; ok {
		return vp.View()
	}
	return ""
}

func (m *Model) statusLine() string {
	left := " 1-4 open  tab focus  x/n/m close/min/max  arrows move  f10 menu  q quit"
	if m.sheet.Editing() {
		left = " editing contact sheet  esc stop editing"
	}
	if m.shuttingDown {
		left = " Shutting down…"
	}

	right := ""
	if m.status != "" {
		right = m.status
		if m.link != "" {
			right += ": " + ansi.SetHyperlink(m.link) + m.link + ansi.ResetHyperlink()
		}
		right += " "
	}

	gap := m.width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		left = ansi.Truncate(left, max(m.width-ansi.StringWidth(right)-1, 0), "…")
		gap = max(m.width-ansi.StringWidth(left)-ansi.StringWidth(right), 0)
	}
	return statusStyle.Width(m.width).MaxWidth(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m *Model) blackScreen() string {
	msg := "It is now safe to turn off your computer."
	return blackStyle.
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(msg)
}

// fitLines clips or pads s to exactly w x h cells.
func fitLines(s string, w, h int) []string {
	src := strings.Split(s, "\n")
	out := make([]string, h)
	for i := range out {
		line := ""
		if i < len(src) {
			line = ansi.Truncate(src[i], w, "")
		}
		if pad := w - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		out[i] = line
	}
	return out
}

// overlay paints block onto canvas with its top-left at (x, y). Cells
// outside the canvas are clipped.
func overlay(canvas []string, block string, x, y int) {
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= len(canvas) {
			continue
		}
		bg := canvas[row]
		bgW := ansi.StringWidth(bg)

		fg := line
		fx := x
		if fx < 0 {
			fg = ansi.TruncateLeft(fg, -fx, "")
			fx = 0
		}
		if fx >= bgW {
			continue
		}
		fg = ansi.Truncate(fg, bgW-fx, "")
		fgW := ansi.StringWidth(fg)
		if fgW == 0 {
			continue
		}

		left := ansi.Truncate(bg, fx, "")
		right := ansi.TruncateLeft(bg, fx+fgW, "")
		canvas[row] = left + fg + right
	}
}
