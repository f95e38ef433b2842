package tui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/retrodesk/internal/config"
)

// linkItem is a File menu entry in the list.
type linkItem struct {
	label string
	url   string
}

func (i linkItem) Title() string       { return i.label }
func (i linkItem) Description() string { return i.url }
func (i linkItem) FilterValue() string { return i.label }

// LinksTab edits the File menu links.
type LinksTab struct {
	list   list.Model
	cfg    *config.Config
	width  int
	height int

	adding    bool
	textInput textinput.Model
	err       error
}

// NewLinksTab creates a LinksTab editing cfg.Links in place.
func NewLinksTab(cfg *config.Config) LinksTab {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("15")).
		BorderForeground(lipgloss.Color("62"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("250")).
		BorderForeground(lipgloss.Color("62"))

	l := list.New(buildLinkItems(cfg), delegate, 0, 0)
	l.Title = "File Menu Links"
	l.Styles.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("62")).
		Padding(0, 1)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)

	ti := textinput.New()
	ti.Placeholder = "Label https://example.com"
	ti.CharLimit = 256

	return LinksTab{
		list:      l,
		cfg:       cfg,
		textInput: ti,
	}
}

// Update handles messages for the links tab.
func (t LinksTab) Update(msg tea.Msg) (LinksTab, tea.Cmd) {
	if t.adding {
		return t.updateAdding(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.width = msg.Width
		t.height = msg.Height
		t.list.SetSize(t.width, t.listHeight())
		return t, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "a":
			t.adding = true
			t.err = nil
			t.textInput.Reset()
			t.textInput.Focus()
			return t, textinput.Blink
		case "x", "delete":
			t.removeLink(t.list.Index())
			t.list.SetItems(buildLinkItems(t.cfg))
			return t, nil
		case "K":
			if i := t.list.Index(); t.swapLinks(i, i-1) {
				t.list.SetItems(buildLinkItems(t.cfg))
				t.list.Select(i - 1)
			}
			return t, nil
		case "J":
			if i := t.list.Index(); t.swapLinks(i, i+1) {
				t.list.SetItems(buildLinkItems(t.cfg))
				t.list.Select(i + 1)
			}
			return t, nil
		}
	}

	var cmd tea.Cmd
	t.list, cmd = t.list.Update(msg)
	return t, cmd
}

func (t LinksTab) updateAdding(msg tea.Msg) (LinksTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			link, err := parseLinkInput(t.textInput.Value())
			if err != nil {
				t.err = err
				return t, nil
			}
			t.cfg.Links = append(t.cfg.Links, link)
			t.list.SetItems(buildLinkItems(t.cfg))
			t.adding = false
			t.err = nil
			t.textInput.Blur()
			return t, nil
		case "esc":
			t.adding = false
			t.err = nil
			t.textInput.Blur()
			return t, nil
		}
	case tea.WindowSizeMsg:
		t.width = msg.Width
		t.height = msg.Height
		return t, nil
	}

	var cmd tea.Cmd
	t.textInput, cmd = t.textInput.Update(msg)
	return t, cmd
}

// parseLinkInput splits "Label words URL"; the URL is the last field.
func parseLinkInput(s string) (config.Link, error) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return config.Link{}, fmt.Errorf("enter a label followed by a URL")
	}
	raw := fields[len(fields)-1]
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return config.Link{}, fmt.Errorf("url %q must be absolute", raw)
	}
	return config.Link{
		Label: strings.Join(fields[:len(fields)-1], " "),
		URL:   raw,
	}, nil
}

func (t *LinksTab) removeLink(i int) {
	if i < 0 || i >= len(t.cfg.Links) {
		return
	}
	t.cfg.Links = append(t.cfg.Links[:i], t.cfg.Links[i+1:]...)
}

func (t *LinksTab) swapLinks(i, j int) bool {
	n := len(t.cfg.Links)
	if i < 0 || j < 0 || i >= n || j >= n {
		return false
	}
	t.cfg.Links[i], t.cfg.Links[j] = t.cfg.Links[j], t.cfg.Links[i]
	return true
}

func (t LinksTab) listHeight() int {
	h := t.height - 2
	if t.adding {
		h -= 4
	}
	if h < 1 {
		h = 1
	}
	return h
}

// View implements tea.Model.
func (t LinksTab) View() string {
	if t.width == 0 || t.height == 0 {
		return ""
	}

	var b strings.Builder
	if t.adding {
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Render("Add link:"))
		b.WriteString("\n")
		b.WriteString(t.textInput.View())
		b.WriteString("\n")
		if t.err != nil {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(t.err.Error()))
		} else {
			b.WriteString(dimStyle.Render("enter: confirm  esc: cancel"))
		}
		b.WriteString("\n")
	}
	t.list.SetSize(t.width, t.listHeight())
	if len(t.cfg.Links) == 0 {
		b.WriteString(dimStyle.Render("No links: the File menu will be empty"))
	} else {
		b.WriteString(t.list.View())
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).
		Render("a: add  x: remove  K/J: move up/down"))

	return lipgloss.NewStyle().
		Width(t.width).
		Height(t.height).
		Padding(0, 2).
		Render(b.String())
}

func buildLinkItems(cfg *config.Config) []list.Item {
	items := make([]list.Item, 0, len(cfg.Links))
	for _, l := range cfg.Links {
		items = append(items, linkItem{label: l.Label, url: l.URL})
	}
	return items
}
