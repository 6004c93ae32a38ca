package library

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/kerbaras/tracker/pkg/data"
)

type Op string

const (
	OpAdd    Op = "add"
	OpMove   Op = "move"
	OpRemove Op = "remove"
)

// Change describes a finished mutation. List is the target of an add, the
// destination of a move and the source of a remove. Changed is false for
// no-ops such as moving an id that is not in the source list.
type Change struct {
	Op      Op
	ID      string
	List    data.ListName
	Changed bool
}

type Observer func(Change)

// Mutator applies add/move/remove to a Store, saves it, and notifies
// subscribers after every operation.
type Mutator struct {
	store *Store
	stamp func() string

	mu        sync.Mutex
	observers []Observer
}

// NewMutator returns a mutator whose AddResult dates entries with stamp.
func NewMutator(store *Store, stamp func() string) *Mutator {
	return &Mutator{store: store, stamp: stamp}
}

func (m *Mutator) Subscribe(fn Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, fn)
}

// Add removes entry.ID from the other list and appends entry to target unless
// already present there.
func (m *Mutator) Add(ctx context.Context, entry data.ListEntry, target data.ListName) (Change, error) {
	if err := checkList(target); err != nil {
		return Change{}, err
	}

	m.store.mu.Lock()
	_, removed := m.store.take(target.Other(), entry.ID)
	added := m.store.put(target, entry)
	m.store.mu.Unlock()

	return m.finish(ctx, Change{Op: OpAdd, ID: entry.ID, List: target, Changed: removed || added})
}

// AddResult creates a new entry from a search result and adds it.
func (m *Mutator) AddResult(ctx context.Context, result data.SearchResult, target data.ListName) (Change, error) {
	return m.Add(ctx, data.ListEntry{
		ID:        result.ID(),
		Title:     result.Title,
		Category:  result.Category,
		DateAdded: m.stamp(),
	}, target)
}

// Move transfers id from one list to the other, unchanged. A missing id is a no-op.
func (m *Mutator) Move(ctx context.Context, id string, from data.ListName) (Change, error) {
	if err := checkList(from); err != nil {
		return Change{}, err
	}

	m.store.mu.Lock()
	entry, found := m.store.take(from, id)
	if found {
		m.store.put(from.Other(), entry)
	}
	m.store.mu.Unlock()

	return m.finish(ctx, Change{Op: OpMove, ID: id, List: from.Other(), Changed: found})
}

// Remove deletes id from the list if present.
func (m *Mutator) Remove(ctx context.Context, id string, from data.ListName) (Change, error) {
	if err := checkList(from); err != nil {
		return Change{}, err
	}

	m.store.mu.Lock()
	_, found := m.store.take(from, id)
	m.store.mu.Unlock()

	return m.finish(ctx, Change{Op: OpRemove, ID: id, List: from, Changed: found})
}

func (m *Mutator) finish(ctx context.Context, change Change) (Change, error) {
	if err := m.store.Save(ctx); err != nil {
		return change, fmt.Errorf("failed to save lists: %w", err)
	}
	slog.Debug("list_mutated", "op", change.Op, "id", change.ID, "list", change.List, "changed", change.Changed)

	m.mu.Lock()
	observers := append([]Observer(nil), m.observers...)
	m.mu.Unlock()
	for _, fn := range observers {
		fn(change)
	}
	return change, nil
}

func checkList(list data.ListName) error {
	_, err := storageKey(list)
	return err
}
