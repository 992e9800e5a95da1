// Package memory provides an in-memory implementation of the store
// contract. It backs the bundled sync server and the tests; documents
// live in a nested tree and watchers receive coalesced full snapshots.
package memory

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/mosfeq/sportslink/pkg/errors"
	"github.com/mosfeq/sportslink/pkg/store"
)

// Memory is an in-memory document store.
type Memory struct {
	mu       sync.RWMutex
	root     map[string]any
	watchers map[int]*watcher
	nextID   int
}

// watcher delivers coalesced snapshots for one watched path. Only the
// most recent undelivered snapshot is kept; if deliveries outpace the
// consumer, intermediate snapshots are skipped, which full-replace
// semantics allow.
type watcher struct {
	path string
	ch   chan store.Snapshot

	mu      sync.Mutex
	pending *store.Snapshot
	signal  chan struct{}
}

// New creates an empty in-memory store.
func New() *Memory {
	return &Memory{
		root:     make(map[string]any),
		watchers: make(map[int]*watcher),
	}
}

// Get implements store.Store.
func (m *Memory) Get(_ context.Context, path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.documentLocked(path)
}

// documentLocked marshals the subtree at path. Missing documents are
// JSON null per the store contract.
func (m *Memory) documentLocked(path string) ([]byte, error) {
	node := any(m.root)
	for _, segment := range splitPath(path) {
		parent, ok := node.(map[string]any)
		if !ok {
			return []byte("null"), nil
		}
		node, ok = parent[segment]
		if !ok {
			return []byte("null"), nil
		}
	}
	data, err := json.Marshal(node)
	if err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return data, nil
}

// Set implements store.Store. The value is normalized through a JSON
// round-trip so the tree only ever holds generic documents.
func (m *Memory) Set(_ context.Context, path string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.WrapParse("json", path, err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.WrapParse("json", path, err)
	}

	segments := splitPath(path)
	if len(segments) == 0 {
		return errors.NewValidationError("path", path, "empty store path")
	}

	m.mu.Lock()
	node := m.root
	for _, segment := range segments[:len(segments)-1] {
		child, ok := node[segment].(map[string]any)
		if !ok {
			child = make(map[string]any)
			node[segment] = child
		}
		node = child
	}
	node[segments[len(segments)-1]] = doc
	m.notifyLocked(path)
	m.mu.Unlock()
	return nil
}

// Delete implements store.Store. Deleting an absent document is a no-op.
func (m *Memory) Delete(_ context.Context, path string) error {
	segments := splitPath(path)
	if len(segments) == 0 {
		return errors.NewValidationError("path", path, "empty store path")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	node := m.root
	for _, segment := range segments[:len(segments)-1] {
		child, ok := node[segment].(map[string]any)
		if !ok {
			return nil
		}
		node = child
	}
	if _, ok := node[segments[len(segments)-1]]; !ok {
		return nil
	}
	delete(node, segments[len(segments)-1])
	m.notifyLocked(path)
	return nil
}

// Watch implements store.Store. The current document is delivered first,
// then a fresh snapshot after every overlapping change.
func (m *Memory) Watch(ctx context.Context, path string) (<-chan store.Snapshot, error) {
	w := &watcher{
		path:   path,
		ch:     make(chan store.Snapshot, 1),
		signal: make(chan struct{}, 1),
	}

	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.watchers[id] = w
	data, err := m.documentLocked(path)
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	w.stage(store.Snapshot{Data: data})

	go w.deliver(ctx)
	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.watchers, id)
		m.mu.Unlock()
	}()

	return w.ch, nil
}

// notifyLocked re-delivers snapshots to every watcher whose path overlaps
// the changed path, in either direction: a write below a watched root
// changes the watched document too.
func (m *Memory) notifyLocked(changed string) {
	for _, w := range m.watchers {
		if !overlaps(w.path, changed) {
			continue
		}
		data, err := m.documentLocked(w.path)
		w.stage(store.Snapshot{Data: data, Err: err})
	}
}

// stage records snap as the next delivery, replacing any undelivered one.
func (w *watcher) stage(snap store.Snapshot) {
	w.mu.Lock()
	w.pending = &snap
	w.mu.Unlock()
	select {
	case w.signal <- struct{}{}:
	default:
	}
}

// deliver pushes staged snapshots to the channel until ctx is canceled.
func (w *watcher) deliver(ctx context.Context) {
	defer close(w.ch)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.signal:
		}

		w.mu.Lock()
		snap := w.pending
		w.pending = nil
		w.mu.Unlock()
		if snap == nil {
			continue
		}

		select {
		case <-ctx.Done():
			return
		case w.ch <- *snap:
		}
	}
}

func splitPath(path string) []string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

// overlaps reports whether a change at changed affects the document at
// watched: one path must be a prefix (by segment) of the other.
func overlaps(watched, changed string) bool {
	ws, cs := splitPath(watched), splitPath(changed)
	n := len(ws)
	if len(cs) < n {
		n = len(cs)
	}
	for i := 0; i < n; i++ {
		if ws[i] != cs[i] {
			return false
		}
	}
	return true
}
