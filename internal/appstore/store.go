package appstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kivosy/factory/internal/kvstore"
	"github.com/kivosy/factory/internal/log"
)

const (
	// appPrefix prefixes the durable-store key of each app's full HTML.
	appPrefix = "factory_app_"

	// indexKey is the durable-store key of the JSON app index.
	indexKey = "factory_app_index"
)

// Store persists generated apps in the durable key-value store.
//
// Each app is written under two keys: the full HTML record under
// appPrefix+uuid, and one metadata entry in the bounded, most-recent-first
// index under indexKey. The two writes are independent read-modify-write
// operations on distinct keys; a crash between them can leave the store
// inconsistent (accepted best-effort durability, not ACID).
type Store struct {
	kv     kvstore.Store
	now    func() time.Time
	logger log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store backed by kv.
func New(kv kvstore.Store, logger log.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = log.NewNop()
	}
	s := &Store{kv: kv, now: time.Now, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save persists html under id and prepends a metadata entry to the index,
// evicting past the index cap. Saving under an existing id overwrites the
// HTML and restamps the metadata; the identifier is stable across such
// modifications.
//
// Write failures (e.g. store capacity) are surfaced, never swallowed: if the
// record write fails nothing else is attempted, and if the index write fails
// the error is returned even though the record is already in place.
func (s *Store) Save(id uuid.UUID, html, prompt string) (IndexEntry, error) {
	entry := newIndexEntry(id, html, prompt, s.now())

	if err := s.kv.Set(appPrefix+entry.UUID, html); err != nil {
		return IndexEntry{}, fmt.Errorf("saving app %s: %w", shortID(id), err)
	}

	index := s.Index()
	index = dropEntry(index, entry.UUID) // re-save restamps, never duplicates
	index = prepend(index, entry)
	if len(index) > maxIndexEntries {
		evicted := index[len(index)-1]
		index = index[:maxIndexEntries]
		s.logger.Debug("index cap reached, evicting oldest entry",
			"evicted_uuid", evicted.UUID)
	}

	if err := s.writeIndex(index); err != nil {
		return IndexEntry{}, fmt.Errorf("saving app %s: %w", shortID(id), err)
	}

	s.logger.Debug("saved app",
		"app_id", shortID(id),
		"size_kb", entry.SizeKB,
		"index_len", len(index))
	return entry, nil
}

// Get returns the full HTML of the app with the given id.
// Returns ErrNotFound if no record exists.
func (s *Store) Get(id uuid.UUID) (string, error) {
	html, err := s.kv.Get(appPrefix + id.String())
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("loading app %s: %w", shortID(id), err)
	}
	return html, nil
}

// Index returns the app index, most-recent-first. Missing or corrupt backing
// data yields an empty index; Index never fails.
func (s *Store) Index() []IndexEntry {
	raw, err := s.kv.Get(indexKey)
	if err != nil {
		return nil
	}

	var index []IndexEntry
	if err := json.Unmarshal([]byte(raw), &index); err != nil {
		s.logger.Warn("corrupt app index, treating as empty", "error", err)
		return nil
	}
	return index
}

// Delete removes the app's full record and its index entry. Deleting an
// absent id is a no-op, not an error.
func (s *Store) Delete(id uuid.UUID) error {
	if err := s.kv.Delete(appPrefix + id.String()); err != nil {
		return fmt.Errorf("deleting app %s: %w", shortID(id), err)
	}

	index := s.Index()
	filtered := dropEntry(index, id.String())
	if len(filtered) == len(index) {
		return nil // not indexed, nothing to rewrite
	}

	if err := s.writeIndex(filtered); err != nil {
		return fmt.Errorf("deleting app %s: %w", shortID(id), err)
	}

	s.logger.Debug("deleted app", "app_id", shortID(id))
	return nil
}

func (s *Store) writeIndex(index []IndexEntry) error {
	if index == nil {
		index = []IndexEntry{}
	}
	raw, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	if err := s.kv.Set(indexKey, string(raw)); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	return nil
}

func dropEntry(index []IndexEntry, id string) []IndexEntry {
	out := index[:0:0]
	for _, entry := range index {
		if entry.UUID != id {
			out = append(out, entry)
		}
	}
	return out
}

func prepend(index []IndexEntry, entry IndexEntry) []IndexEntry {
	out := make([]IndexEntry, 0, len(index)+1)
	out = append(out, entry)
	return append(out, index...)
}

// sizeKB renders the size of html in kilobytes with one decimal.
func sizeKB(html string) string {
	return fmt.Sprintf("%.1f", float64(len(html))/1024)
}

// shortID is the 8-character display prefix used in logs and branding.
func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
