package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/medley-sh/medley/internal/provider"
)

// TTL is the maximum age of a cached search entry. Entries older than
// this are treated as absent and evicted on read. Shared by all
// providers; there is no per-entry override.
const TTL = 300 * time.Second

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source, for expiry tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store memoizes search results for a single provider in one JSON file,
// keyed by query string. The file maps query -> {timestamp, results}.
//
// The store is fail-open: any read, write, or decode failure degrades
// to a cache miss. A search must never fail because the cache is
// unreadable; caching is a pure optimization layer.
//
// The file is read fully on each Get/Set and written back fully.
// Concurrent external processes racing on the same file lose whole
// writes (last-writer-wins); that race is accepted and shows up as a
// cache miss, never as corruption surfacing to the caller.
type Store struct {
	path string
	now  func() time.Time
}

// NewStore creates a Store for the named provider, backed by
// <dir>/<provider>_search.json. The base directory is injected by the
// caller; the store never consults ambient state to find its file.
func NewStore(dir, providerName string, opts ...Option) *Store {
	s := &Store{
		path: filepath.Join(dir, providerName+"_search.json"),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// entry is the persisted record for one query.
type entry struct {
	Timestamp int64              `json:"timestamp"`
	Results   []provider.Package `json:"results"`
}

// Get returns the cached results for query and true, or (nil, false)
// when no fresh entry exists. An expired entry found here is deleted
// from the store as a side effect (lazy eviction).
//
// A cached empty result list is a hit: Get returns an empty slice and
// true, distinguishable from an absent entry.
func (s *Store) Get(query string) ([]provider.Package, bool) {
	entries := s.load()

	e, ok := entries[query]
	if !ok {
		return nil, false
	}

	if s.now().Unix()-e.Timestamp > int64(TTL.Seconds()) {
		delete(entries, query)
		s.save(entries)
		return nil, false
	}

	if e.Results == nil {
		return []provider.Package{}, true
	}
	return e.Results, true
}

// Set records results for query, overwriting any existing entry.
// An empty result list is stored and remains distinguishable from an
// absent entry on read.
func (s *Store) Set(query string, results []provider.Package) {
	if results == nil {
		results = []provider.Package{}
	}

	entries := s.load()
	entries[query] = entry{
		Timestamp: s.now().Unix(),
		Results:   results,
	}
	s.save(entries)
}

// Clear removes every entry for this provider.
func (s *Store) Clear() {
	// Removing the file is equivalent to an empty store; a failed
	// removal degrades to stale entries that expire on their own.
	_ = os.Remove(s.path)
}

// ClearExpired removes only the expired entries, leaving fresh ones in
// place. Used by explicit cache maintenance; Get already evicts the
// keys it touches.
func (s *Store) ClearExpired() {
	entries := s.load()

	cutoff := s.now().Unix() - int64(TTL.Seconds())
	removed := false
	for query, e := range entries {
		if e.Timestamp < cutoff {
			delete(entries, query)
			removed = true
		}
	}

	if removed {
		s.save(entries)
	}
}

// load reads the whole store into memory. Missing, unreadable, or
// corrupt files all yield an empty map.
func (s *Store) load() map[string]entry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return make(map[string]entry)
	}

	var entries map[string]entry
	if err := json.Unmarshal(data, &entries); err != nil || entries == nil {
		return make(map[string]entry)
	}
	return entries
}

// save writes the whole store back, atomically via temp file + rename
// so a crashed writer cannot leave a torn file. Write failures are
// silently dropped; the next search simply misses.
func (s *Store) save(entries map[string]entry) {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp) // best-effort cleanup
	}
}
