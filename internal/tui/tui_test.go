package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/retrodesk/internal/config"
	"github.com/1broseidon/retrodesk/internal/ipc"
)

type fakeDesktop struct {
	running    bool
	background string
}

func (f *fakeDesktop) Ping() error {
	if !f.running {
		return errors.New("not running")
	}
	return nil
}

func (f *fakeDesktop) SetBackground(name string) (*ipc.BackgroundData, error) {
	f.background = name
	return &ipc.BackgroundData{Name: name}, nil
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestComputeDiffLines(t *testing.T) {
	orig := config.DefaultConfig()
	curr := orig.Clone()
	if lines := configDiff(orig, curr); lines != nil {
		t.Fatalf("expected no diff for identical configs, got %v", lines)
	}

	curr.Background = "Light Salmon"
	lines := configDiff(orig, curr)
	var added, removed bool
	for _, l := range lines {
		if l.kind == diffAdded && strings.Contains(l.text, "Light Salmon") {
			added = true
		}
		if l.kind == diffRemoved && strings.Contains(l.text, "Blue Sky") {
			removed = true
		}
	}
	if !added || !removed {
		t.Errorf("diff missing background change: %+v", lines)
	}
}

func TestDiffKeepsContext(t *testing.T) {
	a := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	b := []string{"a", "b", "c", "d", "e", "f", "g", "X"}
	lines := withContext(diffLines(a, b), diffContextLines)
	if len(lines) != 4 {
		t.Fatalf("expected two context lines and two changes, got %+v", lines)
	}
	if lines[0].text != "f" || lines[0].kind != diffContext {
		t.Errorf("first line = %+v, want context f", lines[0])
	}
	last := lines[len(lines)-1]
	if last.kind != diffAdded || last.text != "X" {
		t.Errorf("last line = %+v", last)
	}
}

func TestDiffMarksGapsBetweenChanges(t *testing.T) {
	a := []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}
	b := []string{"0", "one", "2", "3", "4", "5", "6", "7", "eight", "9"}
	lines := withContext(diffLines(a, b), diffContextLines)

	var texts []string
	for _, l := range lines {
		texts = append(texts, l.text)
	}
	want := []string{"0", "1", "one", "2", "3", "...", "6", "7", "8", "eight", "9"}
	if strings.Join(texts, ",") != strings.Join(want, ",") {
		t.Fatalf("diff = %v, want %v", texts, want)
	}
	if lines[1].kind != diffRemoved || lines[2].kind != diffAdded {
		t.Errorf("change kinds = %v, %v", lines[1].kind, lines[2].kind)
	}
}

func TestDiffUnchangedIsEmpty(t *testing.T) {
	a := []string{"x", "y"}
	if lines := withContext(diffLines(a, a), diffContextLines); lines != nil {
		t.Fatalf("expected nil, got %+v", lines)
	}
}

func TestSaveOverlaySavesAndPushesBackground(t *testing.T) {
	path := filepath.Join(t.TempDir(), "retrodesk", "config.yaml")
	orig := config.DefaultConfig()
	cfg := orig.Clone()
	cfg.Background = "Light Green"
	desk := &fakeDesktop{running: true}

	var s SaveOverlay
	s.Show(orig, cfg)
	if s.phase != savePreview {
		t.Fatalf("phase = %v, want preview", s.phase)
	}
	s = s.Update(tea.KeyMsg{Type: tea.KeyEnter}, path, orig, cfg, desk)
	if !s.SaveSucceeded() {
		t.Fatalf("save failed: %v", s.err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if desk.background != "Light Green" || !s.pushed {
		t.Errorf("background not pushed: %q", desk.background)
	}

	s = s.Update(runeKey("x"), path, orig, cfg, desk)
	if s.Active() {
		t.Error("result should dismiss on any key")
	}
}

func TestSaveOverlayNoChanges(t *testing.T) {
	cfg := config.DefaultConfig()
	var s SaveOverlay
	s.Show(cfg.Clone(), cfg)
	if s.phase != saveResult || s.err == nil {
		t.Fatalf("expected no-changes result, got phase=%v err=%v", s.phase, s.err)
	}
}

func TestSaveOverlayRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	orig := config.DefaultConfig()
	cfg := orig.Clone()
	cfg.Owner = " "

	var s SaveOverlay
	s.Show(orig, cfg)
	s = s.Update(tea.KeyMsg{Type: tea.KeyEnter}, path, orig, cfg, nil)
	if s.err == nil {
		t.Fatal("expected validation error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("invalid config should not be written: %v", err)
	}
}

func TestParseLinkInput(t *testing.T) {
	tests := []struct {
		in      string
		label   string
		url     string
		wantErr bool
	}{
		{"Blog https://blog.example.com", "Blog", "https://blog.example.com", false},
		{"My Site  https://me.dev ", "My Site", "https://me.dev", false},
		{"Mail mailto:a@b.c", "Mail", "mailto:a@b.c", false},
		{"https://only.url", "", "", true},
		{"Blog blog.example.com", "", "", true},
		{"", "", "", true},
	}
	for _, tt := range tests {
		link, err := parseLinkInput(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseLinkInput(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseLinkInput(%q) error: %v", tt.in, err)
			continue
		}
		if link.Label != tt.label || link.URL != tt.url {
			t.Errorf("parseLinkInput(%q) = %+v", tt.in, link)
		}
	}
}

func TestLinksTabEditing(t *testing.T) {
	cfg := config.DefaultConfig()
	n := len(cfg.Links)
	tab := NewLinksTab(cfg)
	tab, _ = tab.Update(tea.WindowSizeMsg{Width: 80, Height: 20})

	tab, _ = tab.Update(runeKey("a"))
	if !tab.adding {
		t.Fatal("expected add mode")
	}
	tab.textInput.SetValue("Blog https://blog.example.com")
	tab, _ = tab.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if tab.adding || len(cfg.Links) != n+1 {
		t.Fatalf("link not added: adding=%v links=%d", tab.adding, len(cfg.Links))
	}
	if cfg.Links[n].Label != "Blog" {
		t.Errorf("added link = %+v", cfg.Links[n])
	}

	first, second := cfg.Links[0], cfg.Links[1]
	tab, _ = tab.Update(runeKey("J"))
	if cfg.Links[0] != second || cfg.Links[1] != first {
		t.Errorf("move down did not swap: %+v", cfg.Links[:2])
	}

	tab, _ = tab.Update(runeKey("x"))
	if len(cfg.Links) != n {
		t.Errorf("links after remove = %d, want %d", len(cfg.Links), n)
	}
}

func TestLinksTabRejectsBadInput(t *testing.T) {
	cfg := config.DefaultConfig()
	n := len(cfg.Links)
	tab := NewLinksTab(cfg)
	tab, _ = tab.Update(runeKey("a"))
	tab.textInput.SetValue("nourl")
	tab, _ = tab.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !tab.adding || tab.err == nil {
		t.Fatal("expected to stay in add mode with an error")
	}
	tab, _ = tab.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if tab.adding || len(cfg.Links) != n {
		t.Errorf("esc should cancel: adding=%v links=%d", tab.adding, len(cfg.Links))
	}
}

func TestGeneralApplyForm(t *testing.T) {
	cfg := config.DefaultConfig()
	g := NewGeneralTab(cfg)
	g.startEditing()
	if g.fBackground != "Blue Sky" || g.fCloseMode != "reset" {
		t.Fatalf("form not seeded from config: %+v", g)
	}
	g.fOwner = "  Jane Doe "
	g.fCloseMode = "preserve"
	g.fBackground = "Light Salmon"
	g.fInboxDriver = "sqlite"
	g.applyForm()

	if cfg.Owner != "Jane Doe" || cfg.CloseMode != "preserve" || cfg.Background != "Light Salmon" {
		t.Errorf("config not updated: %+v", cfg)
	}
	if cfg.Inbox.Driver != config.InboxSQLite {
		t.Errorf("inbox driver = %q", cfg.Inbox.Driver)
	}
}

func TestEffectsApplyForm(t *testing.T) {
	cfg := config.DefaultConfig()
	e := NewEffectsTab(cfg)
	e.startEditing()
	e.fFlakes = "80"
	e.fFadeMS = "0"
	e.fTickMS = "fast"
	e.applyForm()

	if cfg.Snow.Flakes != 80 || cfg.ShutdownFadeMS != 0 {
		t.Errorf("effects not applied: %+v %d", cfg.Snow, cfg.ShutdownFadeMS)
	}
	if cfg.Snow.TickMS != config.DefaultSnowTickMS {
		t.Errorf("bad tick should be ignored, got %d", cfg.Snow.TickMS)
	}
}

func TestIntRange(t *testing.T) {
	v := intRange(0, 500)
	for in, ok := range map[string]bool{"0": true, "500": true, " 42 ": true, "-1": false, "501": false, "x": false} {
		if err := v(in); (err == nil) != ok {
			t.Errorf("intRange(0,500)(%q) err=%v", in, err)
		}
	}
}

func TestModelTabsAndQuit(t *testing.T) {
	m := newModel("/tmp/none.yaml", nil, &fakeDesktop{running: true})
	if !m.desktopRunning {
		t.Error("expected desktop running")
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(model)
	if m.activeTab != TabEffects {
		t.Errorf("tab -> %v, want Effects", m.activeTab)
	}
	next, _ = m.Update(runeKey("3"))
	m = next.(model)
	if m.activeTab != TabLinks {
		t.Errorf("3 -> %v, want Links", m.activeTab)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(model)
	if m.activeTab != TabEffects {
		t.Errorf("shift+tab -> %v, want Effects", m.activeTab)
	}

	if view := m.View(); !strings.Contains(view, "desktop running") {
		t.Errorf("status bar missing from view")
	}

	_, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestModelCtrlSShowsOverlay(t *testing.T) {
	m := newModel(filepath.Join(t.TempDir(), "config.yaml"), nil, nil)
	m.cfg.Snow.Flakes = 10

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(model)
	if !m.saveOverlay.Active() || m.saveOverlay.phase != savePreview {
		t.Fatal("ctrl+s should open the diff preview")
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	if !m.saveOverlay.SaveSucceeded() {
		t.Fatalf("save failed: %v", m.saveOverlay.err)
	}
	if m.originalConfig.Snow.Flakes != 10 {
		t.Error("snapshot should follow a successful save")
	}
}
