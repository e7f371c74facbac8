package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze3d/domain"
	"github.com/beka-birhanu/vinom-maze3d/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	writeTimeout = 2 * time.Second
	readTimeout  = 2 * time.Second

	// maxOwnerMazes caps a single ByOwner listing.
	maxOwnerMazes = 200
)

var _ i.MazeRepo = &MazeRepo{}

// MazeRepo stores saved maze records.
type MazeRepo struct {
	collection *mongo.Collection
}

// NewMazeRepo creates a new MazeRepo with the given MongoDB client, database name, and collection name.
func NewMazeRepo(client *mongo.Client, dbName, collectionName string) *MazeRepo {
	return &MazeRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// EnsureIndexes creates the owner listing index.
func (m *MazeRepo) EnsureIndexes(ctx context.Context) error {
	_, err := m.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

// Save inserts a record. Records are immutable once saved.
func (m *MazeRepo) Save(ctx context.Context, record *dmn.MazeRecord) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if _, err := m.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("inserting maze %s: %w", record.ID, err)
	}
	return nil
}

// ByID retrieves a record by its ID.
func (m *MazeRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var record dmn.MazeRecord
	if err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("maze %s %w", id, dmn.ErrNotFound)
		}
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	return &record, nil
}

// ByOwner lists the owner's records, newest first.
func (m *MazeRepo) ByOwner(ctx context.Context, ownerID uuid.UUID) ([]*dmn.MazeRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(maxOwnerMazes)
	cursor, err := m.collection.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]*dmn.MazeRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decoding mazes of %s: %w", ownerID, err)
	}
	return records, nil
}
