package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/tracker/pkg/app/styles"
	"github.com/kerbaras/tracker/pkg/render"
)

// EntryList is a selectable list of tracked entries.
type EntryList struct {
	Pane          render.ListPane
	SelectedIndex int
	Width         int
	Height        int
}

func NewEntryList() *EntryList {
	return &EntryList{
		SelectedIndex: 0,
		Width:         80,
		Height:        20,
	}
}

func (m *EntryList) SetPane(pane render.ListPane) {
	m.Pane = pane
	n := len(pane.Entries)
	if m.SelectedIndex >= n && n > 0 {
		m.SelectedIndex = n - 1
	}
	if n == 0 {
		m.SelectedIndex = 0
	}
}

func (m *EntryList) Next() {
	if len(m.Pane.Entries) == 0 {
		return
	}
	m.SelectedIndex++
	if m.SelectedIndex >= len(m.Pane.Entries) {
		m.SelectedIndex = 0
	}
}

func (m *EntryList) Prev() {
	if len(m.Pane.Entries) == 0 {
		return
	}
	m.SelectedIndex--
	if m.SelectedIndex < 0 {
		m.SelectedIndex = len(m.Pane.Entries) - 1
	}
}

func (m *EntryList) Selected() *render.EntryItem {
	if len(m.Pane.Entries) == 0 || m.SelectedIndex >= len(m.Pane.Entries) {
		return nil
	}
	return &m.Pane.Entries[m.SelectedIndex]
}

func (m *EntryList) View() string {
	if len(m.Pane.Entries) == 0 {
		emptyMsg := styles.MutedStyle.Render(m.Pane.Placeholder)
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, emptyMsg)
	}

	var b strings.Builder
	for i, item := range m.Pane.Entries {
		cardStyle := styles.CardStyle
		if i == m.SelectedIndex {
			cardStyle = styles.ActiveCardStyle
		}

		title := styles.TextStyle.Bold(true).Render(item.Title)
		meta := styles.MutedStyle.Render(fmt.Sprintf("%s • Added: %s", item.Category, item.DateAdded))
		actions := lipgloss.JoinHorizontal(lipgloss.Top,
			styles.Button("m: "+item.MoveLabel, true),
			" ",
			styles.Button("d: Remove", true),
		)

		card := cardStyle.Width(m.Width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, title, meta, actions))
		b.WriteString(card)
		b.WriteString("\n")
	}
	return b.String()
}
