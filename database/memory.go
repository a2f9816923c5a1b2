package database

import (
	"context"
	"sync"
	"time"

	"github.com/mindsgn-studio/mission-to-mars/internal/model"
)

// MemoryStore is a process-local store for development and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	snap *model.StoredSnapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Current(context.Context) (*model.StoredSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil {
		return nil, nil
	}
	c := clone(*s.snap)
	return &c, nil
}

func (s *MemoryStore) Replace(_ context.Context, snap model.Snapshot) error {
	stored := clone(model.StoredSnapshot{Snapshot: snap, UpdatedAt: time.Now().UTC()})

	s.mu.Lock()
	s.snap = &stored
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close(context.Context) error {
	return nil
}

// clone copies the slices so callers never share backing arrays with the
// store.
func clone(s model.StoredSnapshot) model.StoredSnapshot {
	s.Facts = append([]model.Fact(nil), s.Facts...)
	s.Hemispheres = append([]model.Hemisphere(nil), s.Hemispheres...)
	return s
}
