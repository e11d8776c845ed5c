package repo

import (
	"context"
	"fmt"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ i.RunRepo = &RunRepo{}

// RunRepo stores completed maze runs.
type RunRepo struct {
	collection *mongo.Collection
}

// NewRunRepo creates a RunRepo over the named collection.
func NewRunRepo(client *mongo.Client, dbName, collectionName string) *RunRepo {
	return &RunRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// EnsureIndexes creates the index used to list a player's runs.
func (r *RunRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "playerId", Value: 1}, {Key: "finishedAt", Value: -1}},
	})
	return err
}

// Save inserts a completed run.
func (r *RunRepo) Save(ctx context.Context, run *dmn.Run) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, run); err != nil {
		return fmt.Errorf("%w: %s", ErrUnexpected, err)
	}
	return nil
}

// ByPlayer returns the player's most recent runs, newest first.
func (r *RunRepo) ByPlayer(ctx context.Context, playerID uuid.UUID, limit int64) ([]*dmn.Run, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "finishedAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"playerId": playerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnexpected, err)
	}
	defer cursor.Close(ctx)

	var runs []*dmn.Run
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnexpected, err)
	}
	return runs, nil
}
