package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/retrodesk/internal/config"
	"github.com/1broseidon/retrodesk/internal/ipc"
)

// desktopClient is the part of the control client the editor uses to push
// saved settings into a running desktop.
type desktopClient interface {
	Ping() error
	SetBackground(name string) (*ipc.BackgroundData, error)
}

// model is the root bubbletea model for the settings editor.
type model struct {
	configPath string
	cfg        *config.Config
	client     desktopClient

	activeTab Tab

	generalTab GeneralTab
	effectsTab EffectsTab
	linksTab   LinksTab

	// Snapshot of the file contents for the save diff.
	originalConfig *config.Config
	saveOverlay    SaveOverlay

	desktopRunning bool

	width  int
	height int
}

func newModel(configPath string, res *config.LoadResult, client desktopClient) model {
	cfg := config.DefaultConfig()
	if res != nil && res.Config != nil {
		cfg = res.Config
	}
	m := model{
		configPath:     configPath,
		cfg:            cfg,
		client:         client,
		activeTab:      TabGeneral,
		originalConfig: cfg.Clone(),
		generalTab:     NewGeneralTab(cfg),
		effectsTab:     NewEffectsTab(cfg),
		linksTab:       NewLinksTab(cfg),
	}
	if client != nil && client.Ping() == nil {
		m.desktopRunning = true
	}
	return m
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

func (m model) capturing() bool {
	switch m.activeTab {
	case TabGeneral:
		return m.generalTab.editing
	case TabEffects:
		return m.effectsTab.editing
	case TabLinks:
		return m.linksTab.adding
	}
	return false
}

func (m model) resize(msg tea.WindowSizeMsg) model {
	m.width = msg.Width
	m.height = msg.Height
	sub := tea.WindowSizeMsg{Width: m.width, Height: m.contentHeight()}
	m.generalTab, _ = m.generalTab.Update(sub)
	m.effectsTab, _ = m.effectsTab.Update(sub)
	m.linksTab, _ = m.linksTab.Update(sub)
	return m
}

// contentHeight is the space left under the status and tab bars.
func (m model) contentHeight() int {
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.saveOverlay.Active() {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			prevPhase := m.saveOverlay.phase
			var client desktopClient
			if m.desktopRunning {
				client = m.client
			}
			m.saveOverlay = m.saveOverlay.Update(msg, m.configPath, m.originalConfig, m.cfg, client)
			if prevPhase == savePreview && m.saveOverlay.SaveSucceeded() {
				m.originalConfig = m.cfg.Clone()
			}
		case tea.WindowSizeMsg:
			m = m.resize(msg)
		}
		return m, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+s" {
		m.saveOverlay.Show(m.originalConfig, m.cfg)
		return m, nil
	}

	if m.capturing() {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		case tea.WindowSizeMsg:
			return m.resize(msg), nil
		}
		return m.delegate(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
			return m, nil
		case "1":
			m.activeTab = TabGeneral
			return m, nil
		case "2":
			m.activeTab = TabEffects
			return m, nil
		case "3":
			m.activeTab = TabLinks
			return m, nil
		}
	case tea.WindowSizeMsg:
		return m.resize(msg), nil
	}

	return m.delegate(msg)
}

func (m model) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case TabGeneral:
		m.generalTab, cmd = m.generalTab.Update(msg)
	case TabEffects:
		m.effectsTab, cmd = m.effectsTab.Update(msg)
	case TabLinks:
		m.linksTab, cmd = m.linksTab.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.desktopRunning, m.configPath, m.width)
	tabBar := renderTabBar(m.activeTab, m.width)
	helpBar := renderHelpBar(m.width)

	usedHeight := lipgloss.Height(statusBar) + lipgloss.Height(tabBar) + lipgloss.Height(helpBar)
	contentHeight := m.height - usedHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	if m.saveOverlay.Active() {
		content = m.saveOverlay.View(m.width, contentHeight)
	} else {
		switch m.activeTab {
		case TabGeneral:
			content = m.generalTab.View()
		case TabEffects:
			content = m.effectsTab.View()
		case TabLinks:
			content = m.linksTab.View()
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		tabBar,
		content,
		helpBar,
	)
}
