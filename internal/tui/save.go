package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/1broseidon/retrodesk/internal/config"
)

type savePhase int

const (
	saveHidden savePhase = iota
	savePreview
	saveResult
)

var errNoChanges = errors.New("no changes to save")

var (
	overlayBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
	overlayTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	overlayHint  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	diffStyles = map[diffKind]struct {
		prefix string
		style  lipgloss.Style
	}{
		diffContext: {"  ", lipgloss.NewStyle().Foreground(lipgloss.Color("245"))},
		diffRemoved: {"- ", lipgloss.NewStyle().Foreground(lipgloss.Color("196"))},
		diffAdded:   {"+ ", lipgloss.NewStyle().Foreground(lipgloss.Color("42"))},
	}
)

// SaveOverlay previews the YAML that ctrl+s would write and writes it on
// confirm.
type SaveOverlay struct {
	phase  savePhase
	lines  []diffLine
	err    error
	path   string
	pushed bool
	offset int
}

// Active reports whether the overlay is visible.
func (s SaveOverlay) Active() bool {
	return s.phase != saveHidden
}

// Show opens the preview, or a result box when nothing changed.
func (s *SaveOverlay) Show(original, current *config.Config) {
	*s = SaveOverlay{lines: configDiff(original, current)}
	if len(s.lines) == 0 {
		s.phase = saveResult
		s.err = errNoChanges
		return
	}
	s.phase = savePreview
}

// SaveSucceeded reports whether the last save completed without error.
func (s SaveOverlay) SaveSucceeded() bool {
	return s.phase == saveResult && s.err == nil
}

// Update handles input while the overlay is active. On confirm cfg is
// written to path; a running desktop also gets a changed background live.
func (s SaveOverlay) Update(msg tea.Msg, path string, original, cfg *config.Config, client desktopClient) SaveOverlay {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s
	}
	if s.phase == saveResult {
		s.phase = saveHidden
		return s
	}
	if s.phase != savePreview {
		return s
	}

	switch km.String() {
	case "esc", "n":
		s.phase = saveHidden
	case "enter", "y":
		s.path = path
		s.err = cfg.SaveTo(path)
		if s.err == nil && client != nil && original != nil && original.Background != cfg.Background {
			_, err := client.SetBackground(cfg.Background)
			s.pushed = err == nil
		}
		s.phase = saveResult
	case "up", "k":
		s.offset = max(s.offset-1, 0)
	case "down", "j":
		s.offset++
	}
	return s
}

// View renders the overlay centered in a width x height area.
func (s SaveOverlay) View(width, height int) string {
	var box string
	switch s.phase {
	case savePreview:
		box = s.previewBox(width, height)
	case saveResult:
		box = s.resultBox(width)
	default:
		return ""
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (s SaveOverlay) previewBox(width, height int) string {
	boxW := min(max(width-8, 30), 80)
	textW := max(boxW-8, 10)
	rows := max(height-10, 3)

	off := min(s.offset, max(len(s.lines)-rows, 0))
	end := min(off+rows, len(s.lines))

	var b strings.Builder
	b.WriteString(overlayTitle.Render(fmt.Sprintf("Save Config: %d changed lines", changedCount(s.lines))))
	b.WriteString("\n\n")
	for i, l := range s.lines[off:end] {
		if i > 0 {
			b.WriteString("\n")
		}
		ds := diffStyles[l.kind]
		b.WriteString(ds.style.Render(ds.prefix + ansi.Truncate(l.text, textW, "")))
	}
	b.WriteString("\n\n")
	b.WriteString(overlayHint.Render("enter/y: save  esc/n: cancel  j/k: scroll"))

	return overlayBorder.Width(boxW).Render(b.String())
}

func (s SaveOverlay) resultBox(width int) string {
	var msg string
	switch {
	case s.err != nil:
		msg = failStyle.Render("Error: " + s.err.Error())
	default:
		msg = okStyle.Render("Saved " + filepath.Base(s.path))
		if s.pushed {
			msg += "\n" + okStyle.UnsetBold().Render("Desktop background updated")
		}
	}
	body := msg + "\n\n" + overlayHint.Render("press any key to dismiss")
	return overlayBorder.Width(min(max(width-8, 30), 60)).Render(body)
}

func changedCount(lines []diffLine) int {
	n := 0
	for _, l := range lines {
		if l.kind != diffContext {
			n++
		}
	}
	return n
}
