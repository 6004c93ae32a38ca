package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kerbaras/tracker/pkg/config"
	"github.com/kerbaras/tracker/pkg/data"
	"github.com/kerbaras/tracker/pkg/library"
	"github.com/kerbaras/tracker/pkg/render"
	"github.com/kerbaras/tracker/pkg/sources"
)

// SearchOutcome is the result of one Search call. Current is false when a
// newer search was started before this one finished; such outcomes must not
// be rendered.
type SearchOutcome struct {
	Generation uint64
	Current    bool
	Results    []data.SearchResult
	Err        error
}

// Tracker ties the search source, the list store and the renderer together.
type Tracker struct {
	source  sources.Source
	store   *library.Store
	mutator *library.Mutator
	closer  io.Closer

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	state  render.SearchState
}

// NewTracker opens the configured database, loads both lists and connects to
// the configured search API.
func NewTracker(ctx context.Context, cfg *config.Config) (*Tracker, error) {
	repo, err := data.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	source := sources.NewJikan(cfg.API.BaseURL, cfg.API.Timeout)
	t, err := NewTrackerWith(ctx, source, repo, func() string { return cfg.FormatDate(time.Now()) })
	if err != nil {
		repo.Close()
		return nil, err
	}
	t.closer = repo
	return t, nil
}

// NewTrackerWith builds a tracker over an explicit source and storage.
func NewTrackerWith(ctx context.Context, source sources.Source, kv data.KV, stamp func() string) (*Tracker, error) {
	store := library.NewStore(kv)
	if err := store.Load(ctx); err != nil {
		return nil, err
	}
	return &Tracker{
		source:  source,
		store:   store,
		mutator: library.NewMutator(store, stamp),
	}, nil
}

func (t *Tracker) Close() error {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.mu.Unlock()

	if t.closer != nil {
		return t.closer.Close()
	}
	return nil
}

// SearchRequest is a search that has been assigned a generation but not yet
// sent. Generations are handed out in the order BeginSearch is called, not in
// the order requests run.
type SearchRequest struct {
	Generation uint64
	Query      string
	Category   data.Category

	ctx context.Context
	id  string
}

// Search runs a query. Starting a search cancels the one in flight; only the
// latest search updates the state returned by SearchState. An empty query is
// rejected without touching the current state.
func (t *Tracker) Search(ctx context.Context, query string, category data.Category) SearchOutcome {
	req, err := t.BeginSearch(ctx, query, category)
	if err != nil {
		return SearchOutcome{Err: err}
	}
	return t.Run(req)
}

// BeginSearch cancels any search in flight, reserves the next generation and
// marks the state as loading. It does no I/O.
func (t *Tracker) BeginSearch(ctx context.Context, query string, category data.Category) (*SearchRequest, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, sources.ErrEmptyQuery
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.gen++
	t.state = render.SearchState{Loading: true, Query: query}

	return &SearchRequest{
		Generation: t.gen,
		Query:      query,
		Category:   category,
		ctx:        ctx,
		id:         uuid.NewString(),
	}, nil
}

// Run sends a request started with BeginSearch. The outcome is Current only if
// no later BeginSearch happened meanwhile.
func (t *Tracker) Run(req *SearchRequest) SearchOutcome {
	slog.Info("search_started", "request_id", req.id, "generation", req.Generation, "category", req.Category, "query", req.Query)

	results, err := t.source.Search(req.ctx, req.Query, req.Category)

	t.mu.Lock()
	current := req.Generation == t.gen
	if current {
		t.state = render.SearchState{Query: req.Query, Results: results, Err: err}
		t.cancel = nil
	}
	t.mu.Unlock()

	switch {
	case !current || isCanceled(err):
		slog.Debug("search_superseded", "request_id", req.id, "generation", req.Generation)
	case err != nil:
		slog.Warn("search_failed", "request_id", req.id, "error", err)
	default:
		slog.Info("search_finished", "request_id", req.id, "results", len(results))
	}
	return SearchOutcome{Generation: req.Generation, Current: current, Results: results, Err: err}
}

func (t *Tracker) SearchState() render.SearchState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Result looks an id up in the latest search results.
func (t *Tracker) Result(id string) (data.SearchResult, bool) {
	for _, r := range t.SearchState().Results {
		if r.ID() == id {
			return r, true
		}
	}
	return data.SearchResult{}, false
}

func (t *Tracker) Add(ctx context.Context, result data.SearchResult, target data.ListName) (library.Change, error) {
	return t.mutator.AddResult(ctx, result, target)
}

// AddByID adds an item by composite id, taking it from the latest results
// when possible and fetching it from the source otherwise.
func (t *Tracker) AddByID(ctx context.Context, id string, target data.ListName) (data.SearchResult, library.Change, error) {
	if r, ok := t.Result(id); ok {
		change, err := t.Add(ctx, r, target)
		return r, change, err
	}

	category, externalID, err := data.SplitEntryID(id)
	if err != nil {
		return data.SearchResult{}, library.Change{}, err
	}
	r, err := t.source.Get(ctx, category, externalID)
	if err != nil {
		return data.SearchResult{}, library.Change{}, err
	}
	change, err := t.Add(ctx, *r, target)
	return *r, change, err
}

func (t *Tracker) Move(ctx context.Context, id string, from data.ListName) (library.Change, error) {
	return t.mutator.Move(ctx, id, from)
}

func (t *Tracker) Remove(ctx context.Context, id string, from data.ListName) (library.Change, error) {
	return t.mutator.Remove(ctx, id, from)
}

// Subscribe registers fn to run after every list mutation.
func (t *Tracker) Subscribe(fn library.Observer) {
	t.mutator.Subscribe(fn)
}

func (t *Tracker) Find(id string) (data.ListEntry, data.ListName, bool) {
	return t.store.Find(id)
}

func (t *Tracker) ResultsView() render.ResultsPane {
	return render.Results(t.SearchState(), t.store)
}

// ResultsViewFor renders an outcome that is not necessarily the tracked state.
func (t *Tracker) ResultsViewFor(state render.SearchState) render.ResultsPane {
	return render.Results(state, t.store)
}

func (t *Tracker) ListView(list data.ListName) render.ListPane {
	return render.List(t.store, list)
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
