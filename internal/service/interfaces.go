package service

import (
	"context"

	"github.com/mindsgn-studio/mission-to-mars/internal/model"
)

type Scraper interface {
	Scrape(ctx context.Context) (*model.Snapshot, error)
}

// Store holds at most one snapshot.
type Store interface {
	// Current returns nil when nothing has been stored yet.
	Current(ctx context.Context) (*model.StoredSnapshot, error)
	// Replace creates or overwrites the stored snapshot as a whole.
	Replace(ctx context.Context, snap model.Snapshot) error
	Close(ctx context.Context) error
}
