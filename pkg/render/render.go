// Package render projects tracker state into view-models. It never touches
// the terminal; presenters decide how a model is drawn and which keys act on it.
package render

import (
	"errors"

	"github.com/kerbaras/tracker/pkg/data"
	"github.com/kerbaras/tracker/pkg/sources"
)

const (
	LoadingMessage    = "🔍 Searching..."
	ValidationMessage = "Please enter a search term"
	ErrorMessage      = "❌ Error fetching results. Please try again."
	NoResultsMessage  = "No results found. Try a different search."
	EmptyListMessage  = "No items yet. Search and add some! 🎬"
)

// Membership is the read side of the list store the renderer needs.
type Membership interface {
	Contains(list data.ListName, id string) bool
	Entries(list data.ListName) []data.ListEntry
}

type PaneState int

const (
	StateIdle PaneState = iota
	StateLoading
	StateInvalid
	StateError
	StateEmpty
	StateReady
)

// SearchState is the latest outcome of a search as seen by the UI. An empty
// Query means no search has completed; Results may then be nil or empty.
type SearchState struct {
	Loading bool
	Query   string
	Results []data.SearchResult
	Err     error
}

type ResultItem struct {
	ID         string
	Title      string
	Status     string
	CountLabel string // empty when no count is shown
	Count      string
	ImageURL   string

	CanAddPending   bool
	CanAddCompleted bool
}

type ResultsPane struct {
	State   PaneState
	Message string
	Items   []ResultItem
}

// Results builds the results pane. Add controls are disabled for ids already
// present in the corresponding list.
func Results(state SearchState, lists Membership) ResultsPane {
	switch {
	case state.Loading:
		return ResultsPane{State: StateLoading, Message: LoadingMessage}
	case state.Err != nil && sources.IsValidation(state.Err):
		msg := ValidationMessage
		if !errors.Is(state.Err, sources.ErrEmptyQuery) {
			msg = state.Err.Error()
		}
		return ResultsPane{State: StateInvalid, Message: msg}
	case state.Err != nil:
		return ResultsPane{State: StateError, Message: ErrorMessage}
	case state.Query == "":
		return ResultsPane{State: StateIdle}
	case len(state.Results) == 0:
		return ResultsPane{State: StateEmpty, Message: NoResultsMessage}
	}

	items := make([]ResultItem, len(state.Results))
	for i, r := range state.Results {
		id := r.ID()
		item := ResultItem{
			ID:              id,
			Title:           r.Title,
			Status:          r.Status,
			ImageURL:        r.ImageURL,
			CanAddPending:   !lists.Contains(data.Pending, id),
			CanAddCompleted: !lists.Contains(data.Completed, id),
		}
		if r.Category == data.Anime || r.HasCount() {
			item.CountLabel = r.Category.CountLabel()
			item.Count = r.Count
		}
		items[i] = item
	}
	return ResultsPane{State: StateReady, Items: items}
}

type EntryItem struct {
	ID        string
	Title     string
	Category  data.Category
	DateAdded string

	MoveLabel  string
	MoveTarget data.ListName
}

type ListPane struct {
	List        data.ListName
	Title       string
	Placeholder string // set only when Entries is empty
	Entries     []EntryItem
}

func List(lists Membership, list data.ListName) ListPane {
	pane := ListPane{List: list, Title: list.Title()}
	entries := lists.Entries(list)
	if len(entries) == 0 {
		pane.Placeholder = EmptyListMessage
		return pane
	}

	target := list.Other()
	pane.Entries = make([]EntryItem, len(entries))
	for i, e := range entries {
		pane.Entries[i] = EntryItem{
			ID:         e.ID,
			Title:      e.Title,
			Category:   e.Category,
			DateAdded:  e.DateAdded,
			MoveLabel:  "Move to " + target.Title(),
			MoveTarget: target,
		}
	}
	return pane
}
