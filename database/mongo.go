package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mindsgn-studio/mission-to-mars/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	DefaultConnectTimeout = 30 * time.Second
	DefaultDBOpTimeout    = 10 * time.Second
)

// MongoStore keeps the snapshot as the only document of one collection.
type MongoStore struct {
	mongoClient *mongo.Client
	coll        *mongo.Collection
	logger      *zap.Logger
}

func NewMongoStore(parentCtx context.Context, uri, dbName, collName string, logger *zap.Logger) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(parentCtx, DefaultConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to mongo", zap.String("db", dbName), zap.String("collection", collName))
	return &MongoStore{
		mongoClient: client,
		coll:        client.Database(dbName).Collection(collName),
		logger:      logger,
	}, nil
}

func (s *MongoStore) Current(parentCtx context.Context) (*model.StoredSnapshot, error) {
	ctx, cancel := context.WithTimeout(parentCtx, DefaultDBOpTimeout)
	defer cancel()

	var doc model.StoredSnapshot
	err := s.coll.FindOne(ctx, bson.M{}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	return &doc, nil
}

// Replace swaps the whole document in one write, inserting it the first
// time.
func (s *MongoStore) Replace(parentCtx context.Context, snap model.Snapshot) error {
	ctx, cancel := context.WithTimeout(parentCtx, DefaultDBOpTimeout)
	defer cancel()

	doc := model.StoredSnapshot{
		Snapshot:  snap,
		UpdatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	opts := options.Replace().SetUpsert(true)

	res, err := s.coll.ReplaceOne(ctx, bson.M{}, doc, opts)
	if err != nil {
		return fmt.Errorf("mongo replace: %w", err)
	}
	s.logger.Debug("replaced snapshot",
		zap.Int64("matched", res.MatchedCount),
		zap.Bool("inserted", res.UpsertedCount > 0))
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.mongoClient.Disconnect(ctx)
}
