package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aalp/internal/ui/theme"
)

// MultiSelectItem is one selectable row.
type MultiSelectItem struct {
	ID    string
	Label string
	Note  string // short dim annotation, e.g. entered parameter values
}

// MultiSelectGroup is a titled run of items.
type MultiSelectGroup struct {
	Title string
	Items []MultiSelectItem
}

// MultiSelect is a grouped multi-select list. Up/down moves the cursor
// across groups; space toggles the item under it. The caller reads
// JustToggled after Update to react to a toggle.
type MultiSelect struct {
	Groups  []MultiSelectGroup
	Checked map[string]bool

	// JustToggled is the ID toggled by the last Update, or "".
	JustToggled string

	cursor int
	flat   []string // item IDs in display order
}

// NewMultiSelect creates a multi-select over the given groups.
func NewMultiSelect(groups []MultiSelectGroup) MultiSelect {
	m := MultiSelect{
		Groups:  groups,
		Checked: make(map[string]bool),
	}
	for _, g := range groups {
		for _, it := range g.Items {
			m.flat = append(m.flat, it.ID)
		}
	}
	return m
}

// Init returns nil.
func (m MultiSelect) Init() tea.Cmd {
	return nil
}

// CursorID returns the ID of the item under the cursor.
func (m MultiSelect) CursorID() string {
	if m.cursor < 0 || m.cursor >= len(m.flat) {
		return ""
	}
	return m.flat[m.cursor]
}

// SetNote updates the annotation of one item.
func (m *MultiSelect) SetNote(id, note string) {
	for gi := range m.Groups {
		for ii := range m.Groups[gi].Items {
			if m.Groups[gi].Items[ii].ID == id {
				m.Groups[gi].Items[ii].Note = note
				return
			}
		}
	}
}

// Update handles keyboard navigation and toggling.
func (m MultiSelect) Update(msg tea.Msg) (MultiSelect, tea.Cmd) {
	m.JustToggled = ""

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.flat)-1 {
			m.cursor++
		}
	case "space", " ":
		id := m.CursorID()
		if id != "" {
			m.Checked[id] = !m.Checked[id]
			m.JustToggled = id
		}
	}

	return m, nil
}

// View renders the grouped list.
func (m MultiSelect) View() string {
	var s string
	idx := 0
	for _, g := range m.Groups {
		s += lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(g.Title) + "\n"
		for _, it := range g.Items {
			box := "[ ]"
			if m.Checked[it.ID] {
				box = "[x]"
			}
			prefix := "  "
			if idx == m.cursor {
				prefix = "▸ "
			}

			line := prefix + box + " " + it.Label
			if idx == m.cursor {
				line = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line)
			} else if m.Checked[it.ID] {
				line = lipgloss.NewStyle().Foreground(theme.Text).Render(line)
			} else {
				line = lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)
			}
			if it.Note != "" {
				line += "  " + theme.Hint.Render(it.Note)
			}
			s += line + "\n"
			idx++
		}
		s += "\n"
	}
	return s
}
