package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/kerbaras/tracker/pkg/config"
	"github.com/kerbaras/tracker/pkg/data"
	"github.com/kerbaras/tracker/pkg/library"
	"github.com/kerbaras/tracker/pkg/render"
	"github.com/kerbaras/tracker/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	mu         sync.Mutex
	calls      int
	searchFunc func(ctx context.Context, query string, category data.Category) ([]data.SearchResult, error)
	getFunc    func(category data.Category, externalID int) (*data.SearchResult, error)
}

func (m *mockSource) Search(ctx context.Context, query string, category data.Category) ([]data.SearchResult, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query, category)
	}
	return []data.SearchResult{}, nil
}

func (m *mockSource) Get(_ context.Context, category data.Category, externalID int) (*data.SearchResult, error) {
	if m.getFunc != nil {
		return m.getFunc(category, externalID)
	}
	return nil, errors.New("not found")
}

type memKV struct {
	mu     sync.Mutex
	values map[string]string
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func newTestTracker(t *testing.T, source *mockSource) *Tracker {
	t.Helper()
	tr, err := NewTrackerWith(context.Background(), source, &memKV{values: map[string]string{}}, func() string { return "10/19/2026" })
	require.NoError(t, err)
	t.Cleanup(func() { tr.Close() })
	return tr
}

func result(id int, title string) data.SearchResult {
	return data.SearchResult{ExternalID: id, Category: data.Anime, Title: title, Status: "Finished Airing", Count: "12"}
}

func TestTrackerSearch(t *testing.T) {
	source := &mockSource{
		searchFunc: func(_ context.Context, query string, category data.Category) ([]data.SearchResult, error) {
			assert.Equal(t, "bebop", query)
			assert.Equal(t, data.Anime, category)
			return []data.SearchResult{result(1, "Cowboy Bebop")}, nil
		},
	}
	tr := newTestTracker(t, source)

	outcome := tr.Search(context.Background(), " bebop ", data.Anime)
	require.NoError(t, outcome.Err)
	assert.True(t, outcome.Current)
	assert.Equal(t, uint64(1), outcome.Generation)

	pane := tr.ResultsView()
	assert.Equal(t, render.StateReady, pane.State)
	require.Len(t, pane.Items, 1)
	assert.True(t, pane.Items[0].CanAddPending)
}

func TestTrackerEmptyQueryMakesNoRequest(t *testing.T) {
	source := &mockSource{}
	tr := newTestTracker(t, source)

	outcome := tr.Search(context.Background(), "   ", data.Anime)
	assert.ErrorIs(t, outcome.Err, sources.ErrEmptyQuery)
	assert.Equal(t, 0, source.calls)

	pane := tr.ResultsViewFor(render.SearchState{Err: outcome.Err})
	assert.Equal(t, render.StateInvalid, pane.State)
	assert.Equal(t, render.ValidationMessage, pane.Message)
}

func TestTrackerZeroResults(t *testing.T) {
	tr := newTestTracker(t, &mockSource{})

	outcome := tr.Search(context.Background(), "zzz", data.Manga)
	require.NoError(t, outcome.Err)

	pane := tr.ResultsView()
	assert.Equal(t, render.StateEmpty, pane.State)
	assert.Equal(t, render.NoResultsMessage, pane.Message)
}

func TestTrackerNilResultsRenderEmpty(t *testing.T) {
	tr := newTestTracker(t, &mockSource{
		searchFunc: func(context.Context, string, data.Category) ([]data.SearchResult, error) {
			return nil, nil
		},
	})

	tr.Search(context.Background(), "zzz", data.Anime)

	pane := tr.ResultsView()
	assert.Equal(t, render.StateEmpty, pane.State)
	assert.Equal(t, render.NoResultsMessage, pane.Message)
}

func TestTrackerSearchError(t *testing.T) {
	tr := newTestTracker(t, &mockSource{
		searchFunc: func(context.Context, string, data.Category) ([]data.SearchResult, error) {
			return nil, &sources.FetchError{Status: 503}
		},
	})

	outcome := tr.Search(context.Background(), "x", data.Anime)
	assert.Error(t, outcome.Err)
	assert.Equal(t, render.StateError, tr.ResultsView().State)
}

func TestTrackerLatestSearchWins(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	source := &mockSource{
		searchFunc: func(ctx context.Context, query string, _ data.Category) ([]data.SearchResult, error) {
			if query == "slow" {
				close(started)
				<-release
				return []data.SearchResult{result(1, "Slow")}, ctx.Err()
			}
			return []data.SearchResult{result(2, "Fast")}, nil
		},
	}
	tr := newTestTracker(t, source)

	slow := make(chan SearchOutcome)
	go func() { slow <- tr.Search(context.Background(), "slow", data.Anime) }()
	<-started

	fast := tr.Search(context.Background(), "fast", data.Anime)
	close(release)
	stale := <-slow

	assert.True(t, fast.Current)
	assert.False(t, stale.Current)
	assert.True(t, isCanceled(stale.Err))
	assert.Greater(t, fast.Generation, stale.Generation)

	state := tr.SearchState()
	require.Len(t, state.Results, 1)
	assert.Equal(t, "Fast", state.Results[0].Title)
}

func TestTrackerRunOutOfOrder(t *testing.T) {
	source := &mockSource{
		searchFunc: func(_ context.Context, query string, _ data.Category) ([]data.SearchResult, error) {
			return []data.SearchResult{result(len(query), query)}, nil
		},
	}
	tr := newTestTracker(t, source)
	ctx := context.Background()

	first, err := tr.BeginSearch(ctx, "first", data.Anime)
	require.NoError(t, err)
	second, err := tr.BeginSearch(ctx, "second", data.Anime)
	require.NoError(t, err)
	assert.Equal(t, first.Generation+1, second.Generation)
	assert.Error(t, first.ctx.Err())

	latest := tr.Run(second)
	stale := tr.Run(first)

	assert.True(t, latest.Current)
	assert.False(t, stale.Current)
	state := tr.SearchState()
	require.Len(t, state.Results, 1)
	assert.Equal(t, "second", state.Results[0].Title)
}

func TestTrackerBeginSearchEmptyQuery(t *testing.T) {
	tr := newTestTracker(t, &mockSource{})

	req, err := tr.BeginSearch(context.Background(), " \t", data.Anime)
	assert.Nil(t, req)
	assert.ErrorIs(t, err, sources.ErrEmptyQuery)
	assert.Equal(t, render.StateIdle, tr.ResultsView().State)
}

func TestTrackerAddUpdatesResultControls(t *testing.T) {
	tr := newTestTracker(t, &mockSource{
		searchFunc: func(context.Context, string, data.Category) ([]data.SearchResult, error) {
			return []data.SearchResult{result(1, "X")}, nil
		},
	})
	ctx := context.Background()
	tr.Search(ctx, "x", data.Anime)

	var changes []library.Change
	tr.Subscribe(func(c library.Change) { changes = append(changes, c) })

	_, _, err := tr.AddByID(ctx, "anime-1", data.Pending)
	require.NoError(t, err)

	item := tr.ResultsView().Items[0]
	assert.False(t, item.CanAddPending)
	assert.True(t, item.CanAddCompleted)

	pane := tr.ListView(data.Pending)
	require.Len(t, pane.Entries, 1)
	assert.Equal(t, "X", pane.Entries[0].Title)
	assert.Equal(t, "10/19/2026", pane.Entries[0].DateAdded)

	_, err = tr.Move(ctx, "anime-1", data.Pending)
	require.NoError(t, err)
	item = tr.ResultsView().Items[0]
	assert.True(t, item.CanAddPending)
	assert.False(t, item.CanAddCompleted)

	_, err = tr.Remove(ctx, "anime-1", data.Completed)
	require.NoError(t, err)
	assert.Equal(t, render.EmptyListMessage, tr.ListView(data.Completed).Placeholder)
	assert.Len(t, changes, 3)
}

func TestTrackerAddByIDFetchesUnknown(t *testing.T) {
	tr := newTestTracker(t, &mockSource{
		getFunc: func(category data.Category, externalID int) (*data.SearchResult, error) {
			assert.Equal(t, data.Manga, category)
			return &data.SearchResult{ExternalID: externalID, Category: category, Title: "Berserk"}, nil
		},
	})

	r, change, err := tr.AddByID(context.Background(), "manga-2", data.Completed)
	require.NoError(t, err)
	assert.Equal(t, "Berserk", r.Title)
	assert.True(t, change.Changed)

	e, list, ok := tr.Find("manga-2")
	assert.True(t, ok)
	assert.Equal(t, data.Completed, list)
	assert.Equal(t, data.Manga, e.Category)
}

func TestTrackerAddByIDInvalid(t *testing.T) {
	tr := newTestTracker(t, &mockSource{})
	_, _, err := tr.AddByID(context.Background(), "bogus", data.Pending)
	assert.Error(t, err)
}

func TestNewTrackerPersists(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Storage.Driver = data.DriverSQLite
	cfg.Storage.Path = filepath.Join(dir, "tracker.db")
	ctx := context.Background()

	tr, err := NewTracker(ctx, cfg)
	require.NoError(t, err)
	tr.source = &mockSource{
		getFunc: func(category data.Category, externalID int) (*data.SearchResult, error) {
			return &data.SearchResult{ExternalID: externalID, Category: category, Title: fmt.Sprintf("T%d", externalID)}, nil
		},
	}
	_, _, err = tr.AddByID(ctx, "anime-7", data.Pending)
	require.NoError(t, err)
	require.NoError(t, tr.Close())

	tr, err = NewTracker(ctx, cfg)
	require.NoError(t, err)
	defer tr.Close()

	e, list, ok := tr.Find("anime-7")
	assert.True(t, ok)
	assert.Equal(t, data.Pending, list)
	assert.Equal(t, "T7", e.Title)
}
