// Package mongostore implements store.Store on top of a MongoDB collection.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/pocketledger/backend/pkg/models"
	"github.com/pocketledger/backend/pkg/store"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is a MongoDB backed collection of documents of type T.
type Store[T any] struct {
	coll *mongo.Collection
}

var (
	_ store.Store[models.Transaction] = (*Store[models.Transaction])(nil)
	_ store.Store[models.Budget]      = (*Store[models.Budget])(nil)
)

// New returns a store for the named collection of db.
func New[T any](db *mongo.Database, collection string) *Store[T] {
	return &Store[T]{coll: db.Collection(collection)}
}

// Connect establishes a connection to MongoDB and returns the database.
//
// The client uses Registry so that decimals survive the round trip.
func Connect(ctx context.Context, uri, database string) (*mongo.Database, error) {
	log.Debug().Str("database", database).Msg("Connecting to MongoDB")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetRegistry(Registry()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(database)
	for _, name := range []string{store.Transactions, store.Budgets} {
		_, err = db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "owner", Value: 1}},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create owner index on %s: %w", name, err)
		}
	}

	log.Info().Str("database", database).Msg("Connected to MongoDB")
	return db, nil
}

func (s *Store[T]) Get(ctx context.Context, id string) (T, error) {
	var doc T
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		return doc, wrap(err)
	}

	return doc, nil
}

// Put replaces the document with the given id, inserting it if needed.
func (s *Store[T]) Put(ctx context.Context, id string, doc T) error {
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return wrap(err)
	}

	return nil
}

func (s *Store[T]) Patch(ctx context.Context, id string, fields map[string]any) error {
	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return wrap(err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("patch %s: %w", id, models.ErrResourceNotFound)
	}

	return nil
}

func (s *Store[T]) Delete(ctx context.Context, id string) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrap(err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("delete %s: %w", id, models.ErrResourceNotFound)
	}

	return nil
}

func (s *Store[T]) Query(ctx context.Context, q store.Query) ([]T, error) {
	opts := options.Find()
	if q.OrderBy != "" {
		direction := 1
		if q.Descending {
			direction = -1
		}
		opts.SetSort(bson.D{{Key: q.OrderBy, Value: direction}})
	}

	cursor, err := s.coll.Find(ctx, bson.M{q.Field: q.Value}, opts)
	if err != nil {
		return nil, wrap(err)
	}

	docs := make([]T, 0)
	err = cursor.All(ctx, &docs)
	if err != nil {
		return nil, wrap(err)
	}

	return docs, nil
}

// Ping checks that the primary of the deployment is reachable.
func (s *Store[T]) Ping(ctx context.Context) error {
	if err := s.coll.Database().Client().Ping(ctx, nil); err != nil {
		return wrap(err)
	}

	return nil
}

func wrap(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %w", models.ErrResourceNotFound, err)
	}

	return fmt.Errorf("%w: %w", models.ErrRemote, err)
}
