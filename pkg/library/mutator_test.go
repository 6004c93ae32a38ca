package library

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/kerbaras/tracker/pkg/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMutator(t *testing.T) (*Store, *Mutator) {
	t.Helper()
	store := NewStore(newFakeKV())
	require.NoError(t, store.Load(context.Background()))
	return store, NewMutator(store, func() string { return "10/19/2026" })
}

func ids(entries []data.ListEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func assertDisjoint(t *testing.T, store *Store) {
	t.Helper()
	for _, e := range store.Entries(data.Pending) {
		assert.False(t, store.Contains(data.Completed, e.ID), "%s is in both lists", e.ID)
	}
}

func TestAddMoveRemoveScenario(t *testing.T) {
	store, m := newTestMutator(t)
	ctx := context.Background()
	x := entry("anime-1", "X")

	_, err := m.Add(ctx, x, data.Pending)
	require.NoError(t, err)
	assert.Equal(t, []data.ListEntry{x}, store.Entries(data.Pending))
	assert.Empty(t, store.Entries(data.Completed))

	change, err := m.Move(ctx, "anime-1", data.Pending)
	require.NoError(t, err)
	assert.True(t, change.Changed)
	assert.Equal(t, data.Completed, change.List)
	assert.Empty(t, store.Entries(data.Pending))
	assert.Equal(t, []data.ListEntry{x}, store.Entries(data.Completed))

	_, err = m.Remove(ctx, "anime-1", data.Completed)
	require.NoError(t, err)
	assert.Empty(t, store.Entries(data.Pending))
	assert.Empty(t, store.Entries(data.Completed))
}

func TestAddIsIdempotent(t *testing.T) {
	store, m := newTestMutator(t)
	ctx := context.Background()

	_, err := m.Add(ctx, entry("anime-1", "X"), data.Pending)
	require.NoError(t, err)
	before := store.Entries(data.Pending)

	change, err := m.Add(ctx, entry("anime-1", "X again"), data.Pending)
	require.NoError(t, err)
	assert.False(t, change.Changed)
	assert.Equal(t, before, store.Entries(data.Pending))
}

func TestAddRemovesFromOtherList(t *testing.T) {
	store, m := newTestMutator(t)
	ctx := context.Background()

	_, err := m.Add(ctx, entry("anime-1", "X"), data.Completed)
	require.NoError(t, err)
	_, err = m.Add(ctx, entry("anime-1", "X"), data.Pending)
	require.NoError(t, err)

	assert.Equal(t, []string{"anime-1"}, ids(store.Entries(data.Pending)))
	assert.Empty(t, store.Entries(data.Completed))
	assertDisjoint(t, store)
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	store, m := newTestMutator(t)
	ctx := context.Background()

	for _, id := range []string{"anime-3", "anime-1", "manga-2"} {
		_, err := m.Add(ctx, entry(id, id), data.Pending)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"anime-3", "anime-1", "manga-2"}, ids(store.Entries(data.Pending)))
}

func TestMoveAbsentIsNoop(t *testing.T) {
	store, m := newTestMutator(t)
	ctx := context.Background()

	_, err := m.Add(ctx, entry("anime-1", "X"), data.Completed)
	require.NoError(t, err)

	change, err := m.Move(ctx, "anime-1", data.Pending)
	require.NoError(t, err)
	assert.False(t, change.Changed)
	assert.Empty(t, store.Entries(data.Pending))
	assert.Equal(t, []string{"anime-1"}, ids(store.Entries(data.Completed)))
}

func TestMovePreservesFields(t *testing.T) {
	store, m := newTestMutator(t)
	ctx := context.Background()
	original := data.ListEntry{ID: "manga-7", Title: "Vagabond", Category: data.Manga, DateAdded: "1/2/2020"}

	_, err := m.Add(ctx, original, data.Completed)
	require.NoError(t, err)
	_, err = m.Move(ctx, "manga-7", data.Completed)
	require.NoError(t, err)

	assert.Equal(t, []data.ListEntry{original}, store.Entries(data.Pending))
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	store, m := newTestMutator(t)
	ctx := context.Background()

	_, err := m.Add(ctx, entry("anime-1", "X"), data.Pending)
	require.NoError(t, err)

	change, err := m.Remove(ctx, "anime-1", data.Completed)
	require.NoError(t, err)
	assert.False(t, change.Changed)
	assert.Len(t, store.Entries(data.Pending), 1)
}

func TestAddResultStampsDate(t *testing.T) {
	store, m := newTestMutator(t)

	_, err := m.AddResult(context.Background(), data.SearchResult{
		ExternalID: 5, Category: data.Manga, Title: "Monster",
	}, data.Completed)
	require.NoError(t, err)

	assert.Equal(t, []data.ListEntry{
		{ID: "manga-5", Title: "Monster", Category: data.Manga, DateAdded: "10/19/2026"},
	}, store.Entries(data.Completed))
}

func TestUnknownList(t *testing.T) {
	_, m := newTestMutator(t)
	ctx := context.Background()

	_, err := m.Add(ctx, entry("anime-1", "X"), data.ListName("archive"))
	assert.ErrorIs(t, err, ErrUnknownList)
	_, err = m.Move(ctx, "anime-1", data.ListName("archive"))
	assert.ErrorIs(t, err, ErrUnknownList)
	_, err = m.Remove(ctx, "anime-1", data.ListName("archive"))
	assert.ErrorIs(t, err, ErrUnknownList)
}

func TestObserversNotified(t *testing.T) {
	_, m := newTestMutator(t)
	ctx := context.Background()

	var got []Change
	m.Subscribe(func(c Change) { got = append(got, c) })

	_, err := m.Add(ctx, entry("anime-1", "X"), data.Pending)
	require.NoError(t, err)
	_, err = m.Move(ctx, "anime-9", data.Pending)
	require.NoError(t, err)
	_, err = m.Remove(ctx, "anime-1", data.Pending)
	require.NoError(t, err)

	assert.Equal(t, []Change{
		{Op: OpAdd, ID: "anime-1", List: data.Pending, Changed: true},
		{Op: OpMove, ID: "anime-9", List: data.Completed, Changed: false},
		{Op: OpRemove, ID: "anime-1", List: data.Pending, Changed: true},
	}, got)
}

func TestSaveFailureSkipsNotification(t *testing.T) {
	kv := newFakeKV()
	kv.setFunc = func(string, string) error { return errors.New("read-only") }
	m := NewMutator(NewStore(kv), nil)

	notified := false
	m.Subscribe(func(Change) { notified = true })

	_, err := m.Add(context.Background(), entry("anime-1", "X"), data.Pending)
	assert.Error(t, err)
	assert.False(t, notified)
}

func TestConcurrentMutationsKeepListsDisjoint(t *testing.T) {
	store, m := newTestMutator(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e := entry(data.EntryID(data.Anime, i%5), "X")
			if i%2 == 0 {
				m.Add(ctx, e, data.Pending)
			} else {
				m.Add(ctx, e, data.Completed)
			}
			m.Move(ctx, e.ID, data.Pending)
		}(i)
	}
	wg.Wait()

	assertDisjoint(t, store)
	assert.LessOrEqual(t, len(store.Entries(data.Pending))+len(store.Entries(data.Completed)), 5)
}
