// Package service connects the scraper to the snapshot store.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mindsgn-studio/mission-to-mars/internal/model"
	"go.uber.org/zap"
)

type Service struct {
	scraper Scraper
	store   Store
	logger  *zap.Logger

	// mu serializes refreshes so two triggers never interleave writes.
	mu sync.Mutex
}

func New(scraper Scraper, store Store, logger *zap.Logger) *Service {
	return &Service{
		scraper: scraper,
		store:   store,
		logger:  logger,
	}
}

// Current returns the stored snapshot, or nil before the first refresh.
func (s *Service) Current(ctx context.Context) (*model.StoredSnapshot, error) {
	snap, err := s.store.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return snap, nil
}

// Refresh scrapes every field and only then replaces the stored snapshot.
// If the scrape fails the store is not touched.
func (s *Service) Refresh(ctx context.Context) (*model.StoredSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := time.Now()
	snap, err := s.scraper.Scrape(ctx)
	if err != nil {
		s.logger.Warn("refresh aborted, keeping stored snapshot", zap.Error(err))
		return nil, err
	}
	if snap == nil {
		return nil, errors.New("scraper returned no snapshot")
	}

	if err := s.store.Replace(ctx, *snap); err != nil {
		return nil, fmt.Errorf("store snapshot: %w", err)
	}
	s.logger.Info("snapshot replaced", zap.Duration("took", time.Since(started)))

	return s.Current(ctx)
}

func (s *Service) Close(ctx context.Context) error {
	return s.store.Close(ctx)
}
