package screens

import (
	"github.com/kerbaras/tracker/pkg/library"
	"github.com/kerbaras/tracker/pkg/services"
)

// ListsChangedMsg is sent into the program after every list mutation.
type ListsChangedMsg struct {
	Change library.Change
}

// SwitchScreenMsg asks the root screen to show another tab.
type SwitchScreenMsg struct {
	Screen string
}

type searchResultMsg struct {
	outcome services.SearchOutcome
}

type mutationMsg struct {
	change library.Change
	err    error
}

const (
	searchScreen    = "search"
	pendingScreen   = "pending"
	completedScreen = "completed"
)
