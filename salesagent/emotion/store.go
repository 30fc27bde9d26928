package emotion

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrEmptyKey is returned when a lead key is blank.
var ErrEmptyKey = errors.New("emotion: empty lead key")

// Store persists one PAD vector per key. Get reports found=false, not an error, for a key with
// no record.
type Store interface {
	Get(ctx context.Context, key string) (Vector, bool, error)
	Upsert(ctx context.Context, key string, v Vector) error
	Delete(ctx context.Context, key string) error
}

// Record is the persisted form used by the file and Redis stores.
type Record struct {
	Key       string    `json:"key"`
	Vector    Vector    `json:"vector"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MemoryStore keeps vectors in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	vectors map[string]Vector
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{vectors: make(map[string]Vector)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (Vector, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vectors[key]
	return v, ok, nil
}

func (s *MemoryStore) Upsert(_ context.Context, key string, v Vector) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vectors[key] = v
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vectors, key)
	return nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors)
}

var _ Store = (*MemoryStore)(nil)
