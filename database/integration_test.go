//go:build integration

package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/mindsgn-studio/mission-to-mars/internal/service"
)

// StoreSuite runs the same checks against every container-backed store.
type StoreSuite struct {
	suite.Suite
	ctx   context.Context
	store service.Store
	reset func()
}

func (s *StoreSuite) SetupTest() {
	if s.reset != nil {
		s.reset()
	}
}

func (s *StoreSuite) TestCurrent_Empty() {
	got, err := s.store.Current(s.ctx)
	s.NoError(err)
	s.Nil(got)
}

func (s *StoreSuite) TestReplace_Insert() {
	s.Require().NoError(s.store.Replace(s.ctx, testSnapshot("first")))

	got, err := s.store.Current(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(testSnapshot("first"), got.Snapshot)
	s.WithinDuration(time.Now(), got.UpdatedAt, time.Minute)
}

func (s *StoreSuite) TestReplace_Overwrites() {
	s.Require().NoError(s.store.Replace(s.ctx, testSnapshot("first")))
	s.Require().NoError(s.store.Replace(s.ctx, testSnapshot("second")))

	got, err := s.store.Current(s.ctx)
	s.Require().NoError(err)
	s.Equal("second", got.LatestNews.Title)
}

type MongoStoreSuite struct {
	StoreSuite
	container *mongodb.MongoDBContainer
}

func (s *MongoStoreSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := mongodb.Run(s.ctx, "mongo:7")
	s.Require().NoError(err)
	s.container = container

	uri, err := container.ConnectionString(s.ctx)
	s.Require().NoError(err)

	store, err := NewMongoStore(s.ctx, uri, "mars_test", "snapshots", zap.NewNop())
	s.Require().NoError(err)
	s.store = store
	s.reset = func() {
		_, _ = store.coll.DeleteMany(s.ctx, map[string]any{})
	}
}

func (s *MongoStoreSuite) TestReplace_SingleDocument() {
	store := s.store.(*MongoStore)
	for i := 0; i < 3; i++ {
		s.Require().NoError(store.Replace(s.ctx, testSnapshot("again")))
	}

	n, err := store.coll.CountDocuments(s.ctx, map[string]any{})
	s.NoError(err)
	s.EqualValues(1, n)
}

func (s *MongoStoreSuite) TearDownSuite() {
	if s.store != nil {
		_ = s.store.Close(s.ctx)
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func TestMongoStoreSuite(t *testing.T) {
	suite.Run(t, new(MongoStoreSuite))
}

type PostgresStoreSuite struct {
	StoreSuite
	container *postgres.PostgresContainer
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("mars_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	store, err := NewPostgresStore(s.ctx, dsn, zap.NewNop())
	s.Require().NoError(err)
	s.store = store
	s.reset = func() {
		_, _ = store.db.ExecContext(s.ctx, "DELETE FROM mars_snapshot")
	}
}

func (s *PostgresStoreSuite) TearDownSuite() {
	if s.store != nil {
		_ = s.store.Close(s.ctx)
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}
