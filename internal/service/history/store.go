package history

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayizan-labs/mythos/backend/internal/model/story"
	"github.com/ayizan-labs/mythos/backend/internal/storage"
)

const (
	storageKey = "mythos_history"
	maxItems   = 5
)

// Store owns the bounded, persisted window of past stories: newest first,
// never more than maxItems. It is the only writer of its storage key.
type Store struct {
	mu      sync.Mutex
	storage *storage.Store
	items   []story.HistoryItem
}

// NewStore loads any previously persisted history. A corrupted persisted
// value is discarded wholesale and the store starts empty; no partial
// recovery is attempted.
func NewStore(ctx context.Context, st *storage.Store) *Store {
	s := &Store{storage: st}

	raw, err := st.Get(ctx, storageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			log.Printf("[history] failed to load persisted history: %v", err)
		}
		return s
	}

	var items []story.HistoryItem
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Printf("[history] discarding corrupted persisted history: %v", err)
		if err := st.Delete(ctx, storageKey); err != nil {
			log.Printf("[history] failed to remove corrupted history: %v", err)
		}
		return s
	}

	s.items = items
	return s
}

// Append records a freshly generated story at the head of the window and
// persists the result. Persistence failures are absorbed: after the one
// shrink-and-retry they are logged and the in-memory list keeps its last
// successfully persisted state.
func (s *Store) Append(ctx context.Context, st story.Story, req story.Request) story.HistoryItem {
	item := story.HistoryItem{
		Story:         st,
		ID:            uuid.NewString(),
		Timestamp:     time.Now().UTC(),
		OriginalTopic: req.Topic,
		MediaType:     req.MediaType,
		Genre:         req.Genre,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := append([]story.HistoryItem{item}, s.items...)
	if len(updated) > maxItems {
		updated = updated[:maxItems]
	}

	if persisted, ok := s.persist(ctx, updated); ok {
		s.items = persisted
	}

	return item
}

// persist writes the list, retrying exactly once with every audio handle
// stripped when the storage quota is hit. Audio is the largest payload, so
// dropping it is the one shrink that reliably helps.
func (s *Store) persist(ctx context.Context, items []story.HistoryItem) ([]story.HistoryItem, bool) {
	err := s.write(ctx, items)
	if err == nil {
		return items, true
	}
	if !errors.Is(err, storage.ErrQuotaExceeded) {
		log.Printf("[history] failed to persist history: %v", err)
		return nil, false
	}

	stripped := make([]story.HistoryItem, len(items))
	copy(stripped, items)
	for i := range stripped {
		stripped[i].AudioURL = ""
	}

	if err := s.write(ctx, stripped); err != nil {
		log.Printf("[history] impossible de sauvegarder l'historique: %v", err)
		return nil, false
	}
	return stripped, true
}

func (s *Store) write(ctx context.Context, items []story.HistoryItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.storage.Set(ctx, storageKey, raw)
}

// Clear empties both the in-memory and the persisted list. It performs no
// confirmation of its own and is safe to call repeatedly.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	if err := s.storage.Delete(ctx, storageKey); err != nil {
		log.Printf("[history] failed to clear persisted history: %v", err)
	}
}

// List returns the history window, newest first.
func (s *Store) List() []story.HistoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]story.HistoryItem, len(s.items))
	copy(items, s.items)
	return items
}

// Len reports the current window size.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
