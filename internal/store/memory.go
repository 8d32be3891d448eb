package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

type memoryRepository struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

func NewMemory() Repository {
	return &memoryRepository{sessions: make(map[string][]byte)}
}

var _ Repository = (*memoryRepository)(nil)

// Records are kept serialized so callers never share memory with the store.
func (r *memoryRepository) Save(ctx context.Context, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	r.mu.Lock()
	r.sessions[rec.Code] = data
	r.mu.Unlock()
	return nil
}

func (r *memoryRepository) Load(ctx context.Context, code string) (*Record, error) {
	r.mu.RLock()
	data, ok := r.sessions[code]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &rec, nil
}

func (r *memoryRepository) Delete(ctx context.Context, code string) error {
	r.mu.Lock()
	delete(r.sessions, code)
	r.mu.Unlock()
	return nil
}
