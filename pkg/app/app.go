package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kerbaras/tracker/pkg/app/screens"
	"github.com/kerbaras/tracker/pkg/library"
	"github.com/kerbaras/tracker/pkg/services"
)

type App struct {
	tracker *services.Tracker
}

func NewApp(tracker *services.Tracker) *App {
	return &App{tracker: tracker}
}

// Run blocks until the user quits. List mutations are pushed into the program
// so every tab re-renders from the store.
func (a *App) Run() error {
	model := screens.NewRootScreen(a.tracker)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	a.tracker.Subscribe(func(c library.Change) {
		go p.Send(screens.ListsChangedMsg{Change: c})
	})
	_, err := p.Run()
	return err
}
