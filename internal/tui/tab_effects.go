package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/1broseidon/retrodesk/internal/config"
)

// EffectsTab edits the snow, trail and shutdown timings.
type EffectsTab struct {
	cfg *config.Config

	width  int
	height int

	editing bool
	form    *huh.Form

	fFlakes   string
	fTickMS   string
	fTrailTTL string
	fFadeMS   string
}

// NewEffectsTab creates an EffectsTab editing cfg in place.
func NewEffectsTab(cfg *config.Config) EffectsTab {
	return EffectsTab{cfg: cfg}
}

// Update implements tea.Model.
func (e EffectsTab) Update(msg tea.Msg) (EffectsTab, tea.Cmd) {
	if e.editing {
		return e.updateEditing(msg)
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "e" {
			e.startEditing()
			return e, e.form.Init()
		}
	case tea.WindowSizeMsg:
		e.width = msg.Width
		e.height = msg.Height
	}
	return e, nil
}

func (e EffectsTab) updateEditing(msg tea.Msg) (EffectsTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			e.editing = false
			e.form = nil
			return e, nil
		}
	case tea.WindowSizeMsg:
		e.width = msg.Width
		e.height = msg.Height
	}

	form, cmd := e.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		e.form = f
	}
	if e.form.State == huh.StateCompleted {
		e.applyForm()
		e.editing = false
		e.form = nil
		return e, nil
	}
	return e, cmd
}

// intRange returns a huh validator accepting integers in [lo, hi].
func intRange(lo, hi int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("must be a whole number")
		}
		if v < lo || v > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

func (e *EffectsTab) startEditing() {
	e.fFlakes = strconv.Itoa(e.cfg.Snow.Flakes)
	e.fTickMS = strconv.Itoa(e.cfg.Snow.TickMS)
	e.fTrailTTL = strconv.Itoa(e.cfg.Trail.TTLMS)
	e.fFadeMS = strconv.Itoa(e.cfg.ShutdownFadeMS)

	w := e.width - 4
	if w < 40 {
		w = 40
	}

	e.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("snow_flakes").
				Title("Snowflakes").
				Description("Flakes falling while Special > Launch is on").
				Validate(intRange(0, 500)).
				Value(&e.fFlakes),
			huh.NewInput().
				Key("snow_tick").
				Title("Snow Tick (ms)").
				Validate(intRange(16, 5000)).
				Value(&e.fTickMS),
			huh.NewInput().
				Key("trail_ttl").
				Title("Sparkle Lifetime (ms)").
				Validate(intRange(1, 10000)).
				Value(&e.fTrailTTL),
			huh.NewInput().
				Key("shutdown_fade").
				Title("Shut Down Fade (ms)").
				Description("0 goes black immediately").
				Validate(intRange(0, 10000)).
				Value(&e.fFadeMS),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)

	e.editing = true
}

func (e *EffectsTab) applyForm() {
	if v, err := strconv.Atoi(strings.TrimSpace(e.fFlakes)); err == nil {
		e.cfg.Snow.Flakes = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(e.fTickMS)); err == nil {
		e.cfg.Snow.TickMS = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(e.fTrailTTL)); err == nil {
		e.cfg.Trail.TTLMS = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(e.fFadeMS)); err == nil {
		e.cfg.ShutdownFadeMS = v
	}
}

// View implements tea.Model.
func (e EffectsTab) View() string {
	if e.editing && e.form != nil {
		return viewForm("Editing Effects", e.form, e.width, e.height)
	}
	lines := []string{
		"",
		settingRow("Snowflakes", strconv.Itoa(e.cfg.Snow.Flakes)),
		settingRow("Snow Tick", fmt.Sprintf("%d ms", e.cfg.Snow.TickMS)),
		settingRow("Sparkle Lifetime", fmt.Sprintf("%d ms", e.cfg.Trail.TTLMS)),
		settingRow("Shut Down Fade", fmt.Sprintf("%d ms", e.cfg.ShutdownFadeMS)),
		"",
		dimStyle.Render("  Press 'e' to edit effects"),
	}
	return contentStyle(e.width, e.height).Render(strings.Join(lines, "\n"))
}
