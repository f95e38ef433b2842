// Package menubar holds the desktop's top menu bar: which menu is open,
// the highlighted item, and hit-testing for mouse clicks.
package menubar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MenuID identifies a top-level menu.
type MenuID int

const (
	MenuApple MenuID = iota
	MenuFile
	MenuEdit
	MenuView
	MenuSpecial
	menuCount // sentinel for iteration
)

func (m MenuID) String() string {
	switch m {
	case MenuApple:
		return "◆"
	case MenuFile:
		return "File"
	case MenuEdit:
		return "Edit"
	case MenuView:
		return "View"
	case MenuSpecial:
		return "Special"
	default:
		return "?"
	}
}

// Action is what selecting an item asks the desktop to do.
type Action int

const (
	ActionNone Action = iota
	ActionShutDown
	ActionOpenLink
	ActionSetBackground
	ActionToggleLaunch
)

// Item is one dropdown entry. Value carries the link URL or swatch name.
type Item struct {
	Label    string
	Action   Action
	Value    string
	Disabled bool
}

// Entry is a label/value pair used to build the File and View menus.
type Entry struct {
	Label string
	Value string
}

// Bar is the menu bar state.
type Bar struct {
	owner    string
	items    [menuCount][]Item
	open     MenuID
	isOpen   bool
	cursor   int
	launched bool
}

// New builds the menus. links fill File; colors fill View.
func New(owner string, links, colors []Entry) *Bar {
	b := &Bar{owner: owner}
	b.items[MenuApple] = []Item{{Label: "Shut Down", Action: ActionShutDown}}
	for _, l := range links {
		b.items[MenuFile] = append(b.items[MenuFile], Item{Label: l.Label, Action: ActionOpenLink, Value: l.Value})
	}
	b.items[MenuEdit] = []Item{
		{Label: "Undo", Disabled: true},
		{Label: "Cut", Disabled: true},
		{Label: "Copy", Disabled: true},
		{Label: "Paste", Disabled: true},
	}
	for _, c := range colors {
		b.items[MenuView] = append(b.items[MenuView], Item{Label: c.Label, Action: ActionSetBackground, Value: c.Value})
	}
	b.items[MenuSpecial] = []Item{{Label: "Launch", Action: ActionToggleLaunch}}
	return b
}

// IsOpen reports whether a dropdown is showing.
func (b *Bar) IsOpen() bool { return b.isOpen }

// Current returns the open menu, valid only while IsOpen.
func (b *Bar) Current() MenuID { return b.open }

// Cursor is the highlighted item index in the open menu.
func (b *Bar) Cursor() int { return b.cursor }

// Items returns the entries of a menu.
func (b *Bar) Items(m MenuID) []Item {
	return b.items[m]
}

// Open shows menu m with the first enabled item highlighted.
func (b *Bar) Open(m MenuID) {
	b.open = m
	b.isOpen = true
	b.cursor = 0
	b.skipDisabled(1)
}

// Toggle opens m, or closes it if it is already the open menu.
func (b *Bar) Toggle(m MenuID) {
	if b.isOpen && b.open == m {
		b.Close()
		return
	}
	b.Open(m)
}

// Close hides any dropdown.
func (b *Bar) Close() {
	b.isOpen = false
	b.cursor = 0
}

// MoveMenu switches to the neighbouring menu, wrapping around.
func (b *Bar) MoveMenu(delta int) {
	if !b.isOpen {
		return
	}
	next := (int(b.open) + delta) % int(menuCount)
	if next < 0 {
		next += int(menuCount)
	}
	b.Open(MenuID(next))
}

// MoveCursor moves the highlight, skipping disabled items.
func (b *Bar) MoveCursor(delta int) {
	items := b.items[b.open]
	if !b.isOpen || len(items) == 0 {
		return
	}
	for range items {
		b.cursor = (b.cursor + delta + len(items)) % len(items)
		if !items[b.cursor].Disabled {
			return
		}
	}
}

func (b *Bar) skipDisabled(delta int) {
	items := b.items[b.open]
	for i := 0; i < len(items); i++ {
		if !items[b.cursor].Disabled {
			return
		}
		b.cursor = (b.cursor + delta + len(items)) % len(items)
	}
}

// Select returns the highlighted item and closes the menu. Disabled items
// leave the menu open and report ok=false.
func (b *Bar) Select() (Item, bool) {
	return b.Choose(b.cursor)
}

// Choose selects item i of the open menu.
func (b *Bar) Choose(i int) (Item, bool) {
	if !b.isOpen {
		return Item{}, false
	}
	items := b.items[b.open]
	if i < 0 || i >= len(items) || items[i].Disabled {
		return Item{}, false
	}
	it := items[i]
	b.Close()
	return it, true
}

// Launched reports the Special menu's toggle state.
func (b *Bar) Launched() bool { return b.launched }

// SetLaunched flips the Special item label between Launch and Unlaunch.
func (b *Bar) SetLaunched(on bool) {
	b.launched = on
	label := "Launch"
	if on {
		label = "Unlaunch"
	}
	b.items[MenuSpecial][0].Label = label
}

// titleSpans returns the [start, end) columns of every title in row 0.
func (b *Bar) titleSpans() [menuCount][2]int {
	var spans [menuCount][2]int
	x := 0
	for m := MenuID(0); m < menuCount; m++ {
		w := lipgloss.Width(titleStyle.Render(m.String()))
		spans[m] = [2]int{x, x + w}
		x += w
		if m == MenuApple {
			x += lipgloss.Width(ownerStyle.Render(b.owner))
		}
	}
	return spans
}

// HitTitle returns the menu whose title covers column x of the bar row.
func (b *Bar) HitTitle(x int) (MenuID, bool) {
	for m, span := range b.titleSpans() {
		if x >= span[0] && x < span[1] {
			return MenuID(m), true
		}
	}
	return 0, false
}

// DropdownOrigin is the top-left cell of the open dropdown.
func (b *Bar) DropdownOrigin() (x, y int) {
	return b.titleSpans()[b.open][0], 1
}

// HitItem maps a screen cell to an item of the open dropdown.
func (b *Bar) HitItem(x, y int) (int, bool) {
	if !b.isOpen {
		return 0, false
	}
	ox, oy := b.DropdownOrigin()
	w := lipgloss.Width(b.Dropdown())
	// +1 for the top border.
	i := y - oy - 1
	if x <= ox || x >= ox+w-1 || i < 0 || i >= len(b.items[b.open]) {
		return 0, false
	}
	return i, true
}

var (
	barStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#dddddd")).
			Foreground(lipgloss.Color("#000000"))

	titleStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#dddddd")).
			Foreground(lipgloss.Color("#000000")).
			Padding(0, 1)

	openTitleStyle = titleStyle.
			Background(lipgloss.Color("#666666")).
			Foreground(lipgloss.Color("#ffffff"))

	ownerStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#dddddd")).
			Foreground(lipgloss.Color("#000000")).
			Bold(true).
			PaddingRight(2)

	dropdownStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#999999")).
			Background(lipgloss.Color("#dddddd"))

	itemStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#dddddd")).
			Foreground(lipgloss.Color("#000000")).
			Padding(0, 2)

	selectedItemStyle = itemStyle.
				Background(lipgloss.Color("#3875d7")).
				Foreground(lipgloss.Color("#ffffff"))

	disabledItemStyle = itemStyle.
				Foreground(lipgloss.Color("#999999"))
)

// View renders row 0 at the given width.
func (b *Bar) View(width int) string {
	var parts []string
	for m := MenuID(0); m < menuCount; m++ {
		style := titleStyle
		if b.isOpen && b.open == m {
			style = openTitleStyle
		}
		parts = append(parts, style.Render(m.String()))
		if m == MenuApple {
			parts = append(parts, ownerStyle.Render(b.owner))
		}
	}
	return barStyle.Width(width).MaxWidth(width).Render(strings.Join(parts, ""))
}

// Dropdown renders the open menu's item box, or "" when closed.
func (b *Bar) Dropdown() string {
	if !b.isOpen {
		return ""
	}
	items := b.items[b.open]
	width := 0
	for _, it := range items {
		if w := lipgloss.Width(it.Label); w > width {
			width = w
		}
	}
	width += 4

	lines := make([]string, 0, len(items))
	for i, it := range items {
		style := itemStyle
		switch {
		case it.Disabled:
			style = disabledItemStyle
		case i == b.cursor:
			style = selectedItemStyle
		}
		lines = append(lines, style.Width(width).Render(it.Label))
	}
	return dropdownStyle.Render(strings.Join(lines, "\n"))
}
