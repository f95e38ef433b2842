package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/retrodesk/internal/config"
)

// glamourStyles are the standard styles glamour ships.
var glamourStyles = []string{"dark", "light", "dracula", "pink", "ascii", "notty"}

// GeneralTab is the sub-model for the General settings tab.
type GeneralTab struct {
	cfg *config.Config

	width  int
	height int

	editing bool
	form    *huh.Form

	fOwner        string
	fTagline      string
	fCloseMode    string
	fBackground   string
	fGlamourStyle string
	fContentDir   string
	fInboxDriver  string
	fLogLevel     string
}

// NewGeneralTab creates a GeneralTab editing cfg in place.
func NewGeneralTab(cfg *config.Config) GeneralTab {
	return GeneralTab{cfg: cfg}
}

// Update implements tea.Model.
func (g GeneralTab) Update(msg tea.Msg) (GeneralTab, tea.Cmd) {
	if g.editing {
		return g.updateEditing(msg)
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "e" {
			g.startEditing()
			return g, g.form.Init()
		}
	case tea.WindowSizeMsg:
		g.width = msg.Width
		g.height = msg.Height
	}
	return g, nil
}

func (g GeneralTab) updateEditing(msg tea.Msg) (GeneralTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			g.editing = false
			g.form = nil
			return g, nil
		}
	case tea.WindowSizeMsg:
		g.width = msg.Width
		g.height = msg.Height
	}

	form, cmd := g.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		g.form = f
	}

	if g.form.State == huh.StateCompleted {
		g.applyForm()
		g.editing = false
		g.form = nil
		return g, nil
	}
	return g, cmd
}

func (g *GeneralTab) startEditing() {
	cfg := g.cfg
	g.fOwner = cfg.Owner
	g.fTagline = cfg.Tagline
	g.fCloseMode = cfg.CloseMode
	g.fBackground = cfg.BackgroundSwatch().Name
	g.fGlamourStyle = cfg.GlamourStyle
	g.fContentDir = cfg.ContentDir
	g.fInboxDriver = string(cfg.Inbox.Driver)
	g.fLogLevel = cfg.Logging.Level

	bgOpts := make([]huh.Option[string], 0, len(config.Palette))
	for _, sw := range config.Palette {
		bgOpts = append(bgOpts, huh.NewOption(sw.Name+" "+sw.Color, sw.Name))
	}

	w := g.width - 4
	if w < 40 {
		w = 40
	}

	g.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("owner").
				Title("Owner").
				Description("Name shown in the Apple menu and on the contact sheet").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("owner is required")
					}
					return nil
				}).
				Value(&g.fOwner),

			huh.NewInput().
				Key("tagline").
				Title("Tagline").
				Value(&g.fTagline),

			huh.NewSelect[string]().
				Key("close_mode").
				Title("Close Mode").
				Description("Whether closing a window clears minimize and maximize").
				Options(huh.NewOptions("reset", "preserve")...).
				Value(&g.fCloseMode),

			huh.NewSelect[string]().
				Key("background").
				Title("Background").
				Options(bgOpts...).
				Value(&g.fBackground),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("glamour_style").
				Title("Page Style").
				Description("Glamour style for the About, Projects and Resume pages").
				Options(huh.NewOptions(glamourStyles...)...).
				Value(&g.fGlamourStyle),

			huh.NewInput().
				Key("content_dir").
				Title("Content Directory").
				Description("Folder of about.md, projects.md, resume.md overrides").
				Value(&g.fContentDir),

			huh.NewSelect[string]().
				Key("inbox_driver").
				Title("Inbox").
				Description("Where contact submissions are kept").
				Options(huh.NewOptions(string(config.InboxMemory), string(config.InboxSQLite))...).
				Value(&g.fInboxDriver),

			huh.NewSelect[string]().
				Key("log_level").
				Title("Log Level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&g.fLogLevel),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)

	g.editing = true
}

func (g *GeneralTab) applyForm() {
	if o := strings.TrimSpace(g.fOwner); o != "" {
		g.cfg.Owner = o
	}
	g.cfg.Tagline = strings.TrimSpace(g.fTagline)
	if g.fCloseMode != "" {
		g.cfg.CloseMode = g.fCloseMode
	}
	if g.fBackground != "" {
		g.cfg.Background = g.fBackground
	}
	if g.fGlamourStyle != "" {
		g.cfg.GlamourStyle = g.fGlamourStyle
	}
	g.cfg.ContentDir = strings.TrimSpace(g.fContentDir)
	if g.fInboxDriver != "" {
		g.cfg.Inbox.Driver = config.InboxDriver(g.fInboxDriver)
	}
	if g.fLogLevel != "" {
		g.cfg.Logging.Level = g.fLogLevel
	}
}

// View implements tea.Model.
func (g GeneralTab) View() string {
	if g.editing && g.form != nil {
		return viewForm("Editing General Settings", g.form, g.width, g.height)
	}

	cfg := g.cfg
	sw := cfg.BackgroundSwatch()
	chip := lipgloss.NewStyle().Background(lipgloss.Color(sw.Color)).Render("  ")

	lines := []string{
		"",
		settingRow("Owner", cfg.Owner),
		settingRow("Tagline", displayOrDefault(cfg.Tagline, "(none)")),
		"",
		settingRow("Close Mode", cfg.CloseMode),
		settingRow("Background", chip+" "+sw.Name),
		settingRow("Page Style", cfg.GlamourStyle),
		settingRow("Content Directory", displayOrDefault(cfg.ContentDir, "(built-in pages)")),
		"",
		settingRow("Inbox", string(cfg.Inbox.Driver)),
		settingRow("Log Level", cfg.Logging.Level),
		"",
		dimStyle.Render("  Press 'e' to edit settings"),
	}
	return contentStyle(g.width, g.height).Render(strings.Join(lines, "\n"))
}

var (
	settingLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Width(22).
				Align(lipgloss.Right).
				PaddingRight(2)

	settingValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func settingRow(label, value string) string {
	return settingLabelStyle.Render(label) + settingValueStyle.Render(value)
}

func contentStyle(width, height int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2)
}

func viewForm(title string, form *huh.Form, width, height int) string {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true).
		Render(title) +
		dimStyle.Render("  (esc to cancel)")
	return contentStyle(width, height).Render(header + "\n\n" + form.View())
}

func displayOrDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
