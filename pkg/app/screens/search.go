package screens

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kerbaras/tracker/pkg/app/components"
	"github.com/kerbaras/tracker/pkg/app/styles"
	"github.com/kerbaras/tracker/pkg/data"
	"github.com/kerbaras/tracker/pkg/render"
	"github.com/kerbaras/tracker/pkg/services"
)

type SearchScreen struct {
	tracker  *services.Tracker
	input    textinput.Model
	category data.Category
	state    render.SearchState
	pane     render.ResultsPane
	gen      uint64
	selected int
	width    int
	height   int
	err      error
}

func NewSearchScreen(tracker *services.Tracker) *SearchScreen {
	ti := textinput.New()
	ti.Placeholder = "Search anime..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 50

	return &SearchScreen{
		tracker:  tracker,
		input:    ti,
		category: data.Anime,
	}
}

func (s *SearchScreen) Init() tea.Cmd {
	return textinput.Blink
}

// InputFocused reports whether key presses go to the query field.
func (s *SearchScreen) InputFocused() bool {
	return s.input.Focused()
}

func (s *SearchScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if s.input.Focused() {
				return s, s.submit()
			}
			return s, nil

		case "ctrl+t":
			s.toggleCategory()
			return s, nil

		case "esc":
			if s.input.Focused() {
				s.input.Blur()
			} else {
				s.input.Focus()
				cmd = textinput.Blink
			}
			return s, cmd
		}

		if !s.input.Focused() {
			switch msg.String() {
			case "up", "k":
				s.move(-1)
			case "down", "j":
				s.move(1)
			case "p":
				return s, s.add(data.Pending)
			case "c":
				return s, s.add(data.Completed)
			}
			return s, nil
		}

	case searchResultMsg:
		if msg.outcome.Generation != s.gen {
			return s, nil
		}
		s.state = render.SearchState{
			Query:   s.state.Query,
			Results: msg.outcome.Results,
			Err:     msg.outcome.Err,
		}
		s.selected = 0
		s.refresh()
		if len(s.pane.Items) > 0 {
			s.input.Blur()
		}
		return s, nil

	case mutationMsg:
		s.err = msg.err
		s.refresh()
		return s, nil

	case ListsChangedMsg:
		s.refresh()
		return s, nil
	}

	if s.input.Focused() {
		s.input, cmd = s.input.Update(msg)
	}
	return s, cmd
}

// submit validates the query and starts a search. The generation is taken
// from the tracker here, on the UI loop, so that it follows key presses even
// when commands run out of order. Results for any other generation are dropped.
func (s *SearchScreen) submit() tea.Cmd {
	req, err := s.tracker.BeginSearch(context.Background(), s.input.Value(), s.category)
	if err != nil {
		// Tracker generations start at 1, so nothing in flight matches.
		s.gen = 0
		s.state = render.SearchState{Err: err}
		s.refresh()
		return nil
	}

	s.gen = req.Generation
	s.err = nil
	s.state = render.SearchState{Loading: true, Query: req.Query}
	s.refresh()

	tracker := s.tracker
	return func() tea.Msg {
		return searchResultMsg{outcome: tracker.Run(req)}
	}
}

func (s *SearchScreen) add(target data.ListName) tea.Cmd {
	if s.selected >= len(s.pane.Items) {
		return nil
	}
	item := s.pane.Items[s.selected]
	if (target == data.Pending && !item.CanAddPending) || (target == data.Completed && !item.CanAddCompleted) {
		return nil
	}

	var result data.SearchResult
	for _, r := range s.state.Results {
		if r.ID() == item.ID {
			result = r
			break
		}
	}

	tracker := s.tracker
	return func() tea.Msg {
		change, err := tracker.Add(context.Background(), result, target)
		return mutationMsg{change: change, err: err}
	}
}

func (s *SearchScreen) toggleCategory() {
	if s.category == data.Anime {
		s.category = data.Manga
	} else {
		s.category = data.Anime
	}
	s.input.Placeholder = fmt.Sprintf("Search %s...", s.category)
}

func (s *SearchScreen) move(delta int) {
	n := len(s.pane.Items)
	if n == 0 {
		return
	}
	s.selected = (s.selected + delta + n) % n
}

func (s *SearchScreen) refresh() {
	s.pane = s.tracker.ResultsViewFor(s.state)
	if s.selected >= len(s.pane.Items) {
		s.selected = 0
	}
}

func (s *SearchScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("🔍 Search " + string(s.category))

	inputStyle := styles.InputStyle
	if s.input.Focused() {
		inputStyle = styles.FocusedInputStyle
	}
	inputView := lipgloss.JoinHorizontal(lipgloss.Center,
		inputStyle.Render(s.input.View()),
		" ",
		styles.MutedStyle.Render("["+string(s.category)+"]"),
	)

	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n\n"
	}

	selected := s.selected
	if s.input.Focused() {
		selected = -1
	}
	resultsView := components.ResultCards(s.pane, selected, s.width)

	help := styles.HelpStyle.Render(
		"enter: search • ctrl+t: anime/manga • esc: switch focus • ↑/k ↓/j: navigate • p: + to be read • c: + read • tab: switch view",
	)

	return fmt.Sprintf("%s\n\n%s\n\n%s%s\n\n%s", header, inputView, errorMsg, resultsView, help)
}
