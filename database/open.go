// Package database provides the single-snapshot stores.
package database

import (
	"context"
	"fmt"

	"github.com/mindsgn-studio/mission-to-mars/internal/model"
	"github.com/mindsgn-studio/mission-to-mars/internal/service"
	"go.uber.org/zap"
)

// Open returns the store named by cfg.StoreDriver.
func Open(ctx context.Context, cfg model.Config, logger *zap.Logger) (service.Store, error) {
	logger = logger.Named("store")
	switch cfg.StoreDriver {
	case "mongo":
		return NewMongoStore(ctx, cfg.MongoURI, cfg.DBName, cfg.SnapshotColl, logger)
	case "postgres":
		return NewPostgresStore(ctx, cfg.PostgresDSN, logger)
	case "memory":
		logger.Warn("using in-memory store, snapshots are lost on exit")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
