package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze3d/domain"
	"github.com/beka-birhanu/vinom-maze3d/identity"
	"github.com/beka-birhanu/vinom-maze3d/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrUsernameConflict = errors.New("username conflict")

var _ i.DesignerRepo = &DesignerRepo{}

// DesignerRepo handles the persistence of designer accounts.
type DesignerRepo struct {
	collection *mongo.Collection
}

// NewDesignerRepo creates a new DesignerRepo with the given MongoDB client, database name, and collection name.
func NewDesignerRepo(client *mongo.Client, dbName, collectionName string) *DesignerRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &DesignerRepo{
		collection: collection,
	}
}

// EnsureIndexes creates the unique username index.
func (d *DesignerRepo) EnsureIndexes(ctx context.Context) error {
	_, err := d.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Save inserts or updates a designer in the repository.
func (d *DesignerRepo) Save(designer *identity.Designer) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	filter := bson.M{"_id": designer.ID}
	update := bson.M{
		"$set": bson.M{
			"username":     designer.Username,
			"passwordHash": designer.PasswordHash,
			"updatedAt":    time.Now(),
		},
		"$setOnInsert": bson.M{
			"createdAt": designer.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := d.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrUsernameConflict
		}
		return fmt.Errorf("unexpected error: %w", err)
	}

	return nil
}

// ByID retrieves a designer by their ID.
func (d *DesignerRepo) ByID(id uuid.UUID) (*identity.Designer, error) {
	return d.findOne(bson.M{"_id": id})
}

// ByUsername retrieves a designer by their username.
func (d *DesignerRepo) ByUsername(username string) (*identity.Designer, error) {
	return d.findOne(bson.M{"username": username})
}

func (d *DesignerRepo) findOne(filter bson.M) (*identity.Designer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var designer identity.Designer
	if err := d.collection.FindOne(ctx, filter).Decode(&designer); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("designer %w", dmn.ErrNotFound)
		}
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	return &designer, nil
}
