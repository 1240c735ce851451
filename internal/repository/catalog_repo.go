package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pulsecheck/internal/model"
)

// CatalogRepo handles MongoDB operations for question catalogs. Catalogs are
// write-once: a published version is never updated, only superseded.
type CatalogRepo interface {
	Create(ctx context.Context, catalog *model.Catalog) (string, error)
	GetByVersion(ctx context.Context, version string) (*model.Catalog, error)
	GetLatest(ctx context.Context) (*model.Catalog, error)
}

type catalogRepo struct {
	collection *mongo.Collection
}

// NewCatalogRepo creates a new catalog repository
func NewCatalogRepo(db *mongo.Database) CatalogRepo {
	return &catalogRepo{
		collection: db.Collection("catalogs"),
	}
}

func (r *catalogRepo) Create(ctx context.Context, catalog *model.Catalog) (string, error) {
	result, err := r.collection.InsertOne(ctx, catalog)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	return oid.Hex(), nil
}

func (r *catalogRepo) GetByVersion(ctx context.Context, version string) (*model.Catalog, error) {
	var catalog model.Catalog
	err := r.collection.FindOne(ctx, bson.M{"survey.version": version}).Decode(&catalog)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &catalog, nil
}

func (r *catalogRepo) GetLatest(ctx context.Context) (*model.Catalog, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})
	var catalog model.Catalog
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&catalog)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &catalog, nil
}
