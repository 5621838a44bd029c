package results

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Store defines persistence for analyzed recordings.
type Store interface {
	Save(ctx context.Context, rec *Recording) error
	Get(ctx context.Context, id uuid.UUID) (*Recording, error)
	// List returns recordings newest first. A limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]Recording, error)
	Count(ctx context.Context) (int, error)
}

// MemoryStore keeps recordings in memory, for development and tests.
type MemoryStore struct {
	mu         sync.RWMutex
	recordings map[uuid.UUID]*Recording
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		recordings: make(map[uuid.UUID]*Recording),
	}
}

// Save stores a copy of the recording, assigning an ID if it has none.
func (s *MemoryStore) Save(_ context.Context, rec *Recording) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	stored := *rec
	stored.Emotions = make([]EmotionScore, len(rec.Emotions))
	copy(stored.Emotions, rec.Emotions)

	s.mu.Lock()
	s.recordings[stored.ID] = &stored
	s.mu.Unlock()

	return nil
}

// Get retrieves a recording by ID. Returns ErrNotFound if absent.
func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*Recording, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.recordings[id]
	if !ok {
		return nil, ErrNotFound
	}

	out := *rec
	return &out, nil
}

// List returns recordings newest first.
func (s *MemoryStore) List(_ context.Context, limit int) ([]Recording, error) {
	s.mu.RLock()
	out := make([]Recording, 0, len(s.recordings))
	for _, rec := range s.recordings {
		out = append(out, *rec)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Count returns the number of stored recordings.
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recordings), nil
}

// Ensure both stores implement Store.
var _ Store = (*MemoryStore)(nil)
