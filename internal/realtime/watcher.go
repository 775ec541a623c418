package realtime

import (
	"context"
	"fmt"
	"sync"
)

// FetchFunc loads the full current result set for a watcher.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// EventHandler receives raw change events under the custom-handler policy.
// The handler owns merging the event into whatever state it maintains.
type EventHandler func(ctx context.Context, event *ChangeEvent)

// Watcher keeps a locally cached result set consistent with server-side
// changes. It performs an initial fetch, subscribes to the table's change
// events, and then applies one of two policies per matching event:
//
//   - default: discard the payload and re-run the full fetch (eventually
//     consistent, one refetch per event, no debouncing);
//   - custom handler: hand the raw event to the caller's callback instead.
//
// The two policies are mutually exclusive per watcher.
type Watcher[T any] struct {
	feed    *Feed
	table   string
	fetch   FetchFunc[T]
	filter  *Filter
	handler EventHandler

	mu      sync.RWMutex
	items   []T
	loading bool
	lastErr error
}

// WatcherOption configures a Watcher.
type WatcherOption func(*watcherConfig)

type watcherConfig struct {
	filter  *Filter
	handler EventHandler
}

// WithFilter narrows the watcher to events whose affected row matches
// the given column/value pair.
func WithFilter(f Filter) WatcherOption {
	return func(c *watcherConfig) {
		c.filter = &f
	}
}

// WithEventHandler switches the watcher to the custom-handler policy.
func WithEventHandler(h EventHandler) WatcherOption {
	return func(c *watcherConfig) {
		c.handler = h
	}
}

// NewWatcher creates a watcher for the given table.
// fetch is required; it is also used by the default refetch policy.
func NewWatcher[T any](feed *Feed, table string, fetch FetchFunc[T], opts ...WatcherOption) (*Watcher[T], error) {
	if feed == nil {
		return nil, fmt.Errorf("feed cannot be nil")
	}
	if table == "" {
		return nil, fmt.Errorf("table cannot be empty")
	}
	if fetch == nil {
		return nil, fmt.Errorf("fetch func cannot be nil")
	}

	var cfg watcherConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Watcher[T]{
		feed:    feed,
		table:   table,
		fetch:   fetch,
		filter:  cfg.filter,
		handler: cfg.handler,
		loading: true,
	}, nil
}

// Run performs the initial fetch and then processes change events until the
// context is cancelled. The subscription is closed on return and no events
// are applied afterwards. A failed fetch records the error and clears the
// loading flag; the watcher keeps running on its previous snapshot.
func (w *Watcher[T]) Run(ctx context.Context) error {
	sub, err := w.feed.Subscribe(ctx, w.table)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s events: %w", w.table, err)
	}
	defer sub.Close()

	// Subscribe before the initial fetch so changes racing the fetch still
	// trigger a refetch rather than being missed entirely.
	w.refetch(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-sub.Events():
			if !ok {
				return nil
			}
			if w.filter != nil && !w.filter.Matches(event) {
				continue
			}
			if w.handler != nil {
				w.handler(ctx, event)
				continue
			}
			w.refetch(ctx)
		case err, ok := <-sub.Errors():
			if !ok {
				return nil
			}
			w.setErr(err)
		}
	}
}

func (w *Watcher[T]) refetch(ctx context.Context) {
	items, err := w.fetch(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.loading = false
	if err != nil {
		w.lastErr = err
		return
	}
	w.lastErr = nil
	w.items = items
}

func (w *Watcher[T]) setErr(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastErr = err
}

// Snapshot returns a copy of the current result set.
func (w *Watcher[T]) Snapshot() []T {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]T, len(w.items))
	copy(out, w.items)
	return out
}

// Loading reports whether the initial fetch has not yet completed.
func (w *Watcher[T]) Loading() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.loading
}

// Err returns the most recent fetch or subscription error, or nil.
func (w *Watcher[T]) Err() error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastErr
}
