package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/mindsgn-studio/mission-to-mars/internal/model"
	"go.uber.org/zap"
)

const createSnapshotTable = `
CREATE TABLE IF NOT EXISTS mars_snapshot (
	id         SMALLINT PRIMARY KEY CHECK (id = 1),
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

// PostgresStore keeps the snapshot as a single JSONB row.
type PostgresStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPostgresStore(parentCtx context.Context, dsn string, logger *zap.Logger) (*PostgresStore, error) {
	ctx, cancel := context.WithTimeout(parentCtx, DefaultConnectTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if _, err := db.ExecContext(ctx, createSnapshotTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}

	logger.Info("connected to postgres")
	return &PostgresStore{db: db, logger: logger}, nil
}

type snapshotRow struct {
	Data      []byte    `db:"data"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (s *PostgresStore) Current(parentCtx context.Context) (*model.StoredSnapshot, error) {
	ctx, cancel := context.WithTimeout(parentCtx, DefaultDBOpTimeout)
	defer cancel()

	var row snapshotRow
	err := s.db.GetContext(ctx, &row, `SELECT data, updated_at FROM mars_snapshot WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select snapshot: %w", err)
	}

	stored := model.StoredSnapshot{UpdatedAt: row.UpdatedAt}
	if err := json.Unmarshal(row.Data, &stored.Snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &stored, nil
}

func (s *PostgresStore) Replace(parentCtx context.Context, snap model.Snapshot) error {
	ctx, cancel := context.WithTimeout(parentCtx, DefaultDBOpTimeout)
	defer cancel()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	sqlStatement := `
	INSERT INTO mars_snapshot (id, data, updated_at)
	VALUES (1, $1, $2)
	ON CONFLICT (id) DO UPDATE
	SET data = excluded.data,
		updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, sqlStatement, data, time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	s.logger.Debug("replaced snapshot")
	return nil
}

func (s *PostgresStore) Close(context.Context) error {
	return s.db.Close()
}
