// Package history keeps the ordered, de-duplicated list of past searches.
//
// The whole list is stored as one JSON array under a single key and is
// rewritten on every change. Entries are kept oldest first and listed newest
// first.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/couchcryptid/weather-lookup-service/internal/observability"
)

// Key is the storage key holding the JSON-encoded history.
const Key = "search-history"

// KV is the durable key/value backend the history is written through to.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put overwrites the value for key.
	Put(ctx context.Context, key string, value []byte) error
}

// Store owns the search history.
type Store struct {
	kv      KV
	logger  *slog.Logger
	metrics *observability.Metrics

	mu      sync.Mutex
	entries []string // oldest first
	loaded  atomic.Bool
}

// NewStore creates an empty store backed by kv. Call Load before use.
func NewStore(kv KV, logger *slog.Logger, metrics *observability.Metrics) *Store {
	return &Store{
		kv:      kv,
		logger:  logger,
		metrics: metrics,
	}
}

// Load restores the persisted history. A missing key yields an empty
// history. Undecodable data is logged and treated as empty; only a backend
// read failure is returned.
func (s *Store) Load(ctx context.Context) error {
	raw, ok, err := s.kv.Get(ctx, Key)
	if err != nil {
		return fmt.Errorf("load search history: %w", err)
	}

	var entries []string
	if ok && len(raw) > 0 {
		if err := json.Unmarshal(raw, &entries); err != nil {
			s.logger.Warn("discarding corrupt search history", "error", err)
			entries = nil
		}
	}

	s.mu.Lock()
	s.entries = dedupe(entries)
	n := len(s.entries)
	s.mu.Unlock()

	s.metrics.HistoryEntries.Set(float64(n))
	s.loaded.Store(true)
	s.logger.Info("search history loaded", "entries", n)
	return nil
}

// Append records search unless an identical entry exists. Matching is exact
// and case-sensitive. It reports whether the history changed. The full list
// is persisted before the in-memory copy is updated, so a failed write leaves
// the history as it was.
func (s *Store) Append(ctx context.Context, search string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.entries, search) {
		return false, nil
	}

	next := append(slices.Clone(s.entries), search)
	data, err := json.Marshal(next)
	if err != nil {
		return false, fmt.Errorf("encode search history: %w", err)
	}
	if err := s.kv.Put(ctx, Key, data); err != nil {
		return false, fmt.Errorf("persist search history: %w", err)
	}

	s.entries = next
	s.metrics.HistoryAppends.Inc()
	s.metrics.HistoryEntries.Set(float64(len(next)))
	return true, nil
}

// List returns the entries newest first, the order they are rendered in.
func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := slices.Clone(s.entries)
	slices.Reverse(out)
	return out
}

// Entries returns the entries oldest first, as stored.
func (s *Store) Entries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}

// At returns the n-th rendered entry, 1-based and newest first.
func (s *Store) At(n int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n < 1 || n > len(s.entries) {
		return "", false
	}
	return s.entries[len(s.entries)-n], true
}

// CheckReadiness returns nil once the history has been loaded.
func (s *Store) CheckReadiness(_ context.Context) error {
	if !s.loaded.Load() {
		return errors.New("search history not loaded")
	}
	return nil
}

func dedupe(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if !slices.Contains(out, e) {
			out = append(out, e)
		}
	}
	return out
}
