package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kerbaras/tracker/pkg/app/styles"
	"github.com/kerbaras/tracker/pkg/data"
	"github.com/kerbaras/tracker/pkg/services"
)

type screenType int

const (
	searchView screenType = iota
	pendingView
	completedView
)

type RootScreen struct {
	currentView screenType
	search      *SearchScreen
	pending     *ListScreen
	completed   *ListScreen

	width  int
	height int
}

func NewRootScreen(tracker *services.Tracker) *RootScreen {
	return &RootScreen{
		currentView: searchView,
		search:      NewSearchScreen(tracker),
		pending:     NewListScreen(tracker, data.Pending),
		completed:   NewListScreen(tracker, data.Completed),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	return r.search.Init()
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		return r, r.broadcast(msg)

	case ListsChangedMsg, mutationMsg:
		return r, r.broadcast(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return r, tea.Quit
		case "q":
			if !(r.currentView == searchView && r.search.InputFocused()) {
				return r, tea.Quit
			}
		case "tab":
			return r, r.show((r.currentView + 1) % 3)
		case "shift+tab":
			return r, r.show((r.currentView + 2) % 3)
		}

	case SwitchScreenMsg:
		switch msg.Screen {
		case searchScreen:
			return r, r.show(searchView)
		case pendingScreen:
			return r, r.show(pendingView)
		case completedScreen:
			return r, r.show(completedView)
		}
		return r, nil
	}

	// Forward message to active screen
	switch r.currentView {
	case pendingView:
		_, cmd := r.pending.Update(msg)
		return r, cmd
	case completedView:
		_, cmd := r.completed.Update(msg)
		return r, cmd
	default:
		_, cmd := r.search.Update(msg)
		return r, cmd
	}
}

func (r *RootScreen) show(view screenType) tea.Cmd {
	r.currentView = view
	switch view {
	case pendingView:
		return r.pending.Init()
	case completedView:
		return r.completed.Init()
	default:
		return r.search.Init()
	}
}

// broadcast delivers msg to every screen so hidden tabs stay current.
func (r *RootScreen) broadcast(msg tea.Msg) tea.Cmd {
	_, c1 := r.search.Update(msg)
	_, c2 := r.pending.Update(msg)
	_, c3 := r.completed.Update(msg)
	return tea.Batch(c1, c2, c3)
}

func (r *RootScreen) View() string {
	var content string
	switch r.currentView {
	case pendingView:
		content = r.pending.View()
	case completedView:
		content = r.completed.View()
	default:
		content = r.search.View()
	}
	return fmt.Sprintf("%s\n\n%s", r.renderTabs(), content)
}

func (r *RootScreen) renderTabs() string {
	labels := []string{"Search", data.Pending.Title(), data.Completed.Title()}
	tabs := make([]string, len(labels))
	for i, label := range labels {
		if screenType(i) == r.currentView {
			tabs[i] = styles.ActiveTabStyle.Render(label)
		} else {
			tabs[i] = styles.InactiveTabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
