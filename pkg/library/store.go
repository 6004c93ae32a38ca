// Package library holds the two tracked collections and the operations that
// move entries between them.
package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/kerbaras/tracker/pkg/data"
)

// Storage keys, one JSON array per collection.
const (
	PendingKey   = "animeTracker_toBeRead"
	CompletedKey = "animeTracker_read"
)

var ErrUnknownList = errors.New("unknown list")

func storageKey(list data.ListName) (string, error) {
	switch list {
	case data.Pending:
		return PendingKey, nil
	case data.Completed:
		return CompletedKey, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownList, list)
}

// Store owns the pending and completed collections. An id is present in at
// most one of them, and each keeps insertion order.
type Store struct {
	mu        sync.RWMutex
	kv        data.KV
	pending   []data.ListEntry
	completed []data.ListEntry
}

func NewStore(kv data.KV) *Store {
	return &Store{kv: kv}
}

// Load replaces the in-memory collections with the persisted ones. Missing or
// unparsable values load as empty collections.
func (s *Store) Load(ctx context.Context) error {
	pending, err := s.read(ctx, PendingKey)
	if err != nil {
		return err
	}
	completed, err := s.read(ctx, CompletedKey)
	if err != nil {
		return err
	}

	completed = dedupe(completed)
	inCompleted := make(map[string]bool, len(completed))
	for _, e := range completed {
		inCompleted[e.ID] = true
	}
	pending = slices.DeleteFunc(dedupe(pending), func(e data.ListEntry) bool {
		return inCompleted[e.ID]
	})

	s.mu.Lock()
	s.pending, s.completed = pending, completed
	s.mu.Unlock()
	return nil
}

func (s *Store) read(ctx context.Context, key string) ([]data.ListEntry, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if !ok || raw == "" {
		return []data.ListEntry{}, nil
	}

	var entries []data.ListEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		slog.Warn("list_parse_failed", "key", key, "error", err)
		return []data.ListEntry{}, nil
	}
	if entries == nil {
		entries = []data.ListEntry{}
	}
	return entries, nil
}

func dedupe(entries []data.ListEntry) []data.ListEntry {
	seen := make(map[string]bool, len(entries))
	return slices.DeleteFunc(entries, func(e data.ListEntry) bool {
		if seen[e.ID] {
			return true
		}
		seen[e.ID] = true
		return false
	})
}

// Save writes both collections to the backend.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	pending, perr := json.Marshal(nonNil(s.pending))
	completed, cerr := json.Marshal(nonNil(s.completed))
	s.mu.RUnlock()
	if err := errors.Join(perr, cerr); err != nil {
		return fmt.Errorf("failed to encode lists: %w", err)
	}

	if err := s.kv.Set(ctx, PendingKey, string(pending)); err != nil {
		return err
	}
	return s.kv.Set(ctx, CompletedKey, string(completed))
}

func nonNil(entries []data.ListEntry) []data.ListEntry {
	if entries == nil {
		return []data.ListEntry{}
	}
	return entries
}

// Entries returns a copy of the named collection in display order.
func (s *Store) Entries(list data.ListName) []data.ListEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.ref(list)
	if entries == nil {
		return []data.ListEntry{}
	}
	return slices.Clone(*entries)
}

func (s *Store) Contains(list data.ListName, id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.ref(list)
	return entries != nil && indexOf(*entries, id) >= 0
}

// Find looks the id up in both collections.
func (s *Store) Find(id string) (data.ListEntry, data.ListName, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, list := range []data.ListName{data.Pending, data.Completed} {
		entries := *s.ref(list)
		if i := indexOf(entries, id); i >= 0 {
			return entries[i], list, true
		}
	}
	return data.ListEntry{}, "", false
}

// ref must be called with mu held.
func (s *Store) ref(list data.ListName) *[]data.ListEntry {
	switch list {
	case data.Pending:
		return &s.pending
	case data.Completed:
		return &s.completed
	}
	return nil
}

func indexOf(entries []data.ListEntry, id string) int {
	return slices.IndexFunc(entries, func(e data.ListEntry) bool { return e.ID == id })
}

// take removes id from list and returns the removed entry. mu must be held.
func (s *Store) take(list data.ListName, id string) (data.ListEntry, bool) {
	entries := s.ref(list)
	i := indexOf(*entries, id)
	if i < 0 {
		return data.ListEntry{}, false
	}
	entry := (*entries)[i]
	*entries = slices.Delete(*entries, i, i+1)
	return entry, true
}

// put appends entry unless its id is already present. mu must be held.
func (s *Store) put(list data.ListName, entry data.ListEntry) bool {
	entries := s.ref(list)
	if indexOf(*entries, entry.ID) >= 0 {
		return false
	}
	*entries = append(*entries, entry)
	return true
}
