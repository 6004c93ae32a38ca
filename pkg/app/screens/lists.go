package screens

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kerbaras/tracker/pkg/app/components"
	"github.com/kerbaras/tracker/pkg/app/styles"
	"github.com/kerbaras/tracker/pkg/data"
	"github.com/kerbaras/tracker/pkg/library"
	"github.com/kerbaras/tracker/pkg/services"
)

// ListScreen shows one tracked list.
type ListScreen struct {
	tracker *services.Tracker
	list    data.ListName
	entries *components.EntryList
	width   int
	height  int
	err     error
}

func NewListScreen(tracker *services.Tracker, list data.ListName) *ListScreen {
	l := &ListScreen{
		tracker: tracker,
		list:    list,
		entries: components.NewEntryList(),
	}
	l.refresh()
	return l
}

func (l *ListScreen) Init() tea.Cmd {
	l.refresh()
	return nil
}

func (l *ListScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.width = msg.Width
		l.height = msg.Height
		l.entries.Width = msg.Width
		l.entries.Height = msg.Height - 10

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			l.entries.Prev()
		case "down", "j":
			l.entries.Next()
		case "m":
			return l, l.mutate(l.tracker.Move)
		case "d", "x":
			return l, l.mutate(l.tracker.Remove)
		case "s", "/":
			return l, func() tea.Msg { return SwitchScreenMsg{Screen: searchScreen} }
		}

	case mutationMsg:
		l.err = msg.err
		l.refresh()

	case ListsChangedMsg:
		l.refresh()
	}

	return l, nil
}

type listOp func(ctx context.Context, id string, from data.ListName) (library.Change, error)

func (l *ListScreen) mutate(op listOp) tea.Cmd {
	selected := l.entries.Selected()
	if selected == nil {
		return nil
	}
	id, list := selected.ID, l.list
	return func() tea.Msg {
		change, err := op(context.Background(), id, list)
		return mutationMsg{change: change, err: err}
	}
}

func (l *ListScreen) refresh() {
	l.entries.SetPane(l.tracker.ListView(l.list))
}

func (l *ListScreen) View() string {
	if l.width == 0 {
		return "Loading..."
	}

	pane := l.entries.Pane
	header := styles.TitleStyle.Render(fmt.Sprintf("📚 %s (%d)", pane.Title, len(pane.Entries)))

	var errorMsg string
	if l.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", l.err)) + "\n\n"
	}

	help := styles.HelpStyle.Render(
		"↑/k ↓/j: navigate • m: move • d: remove • s: search • tab: switch view • q: quit",
	)

	return fmt.Sprintf("%s\n\n%s%s\n%s", header, errorMsg, l.entries.View(), help)
}
