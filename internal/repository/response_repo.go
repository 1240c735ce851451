package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pulsecheck/internal/model"
)

// ResponseRepo handles MongoDB operations for response records. ListByVersion
// is the read contract the benchmarking engine depends on: every record for a
// version, including excluded ones - the engine applies the statistics filter
// itself.
type ResponseRepo interface {
	Create(ctx context.Context, record *model.ResponseRecord) error
	GetByID(ctx context.Context, id string) (*model.ResponseRecord, error)
	ListByVersion(ctx context.Context, surveyVersion string) ([]*model.ResponseRecord, error)
	SetExcludeFromStats(ctx context.Context, id string, excluded bool) error
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("responses"),
	}
}

func (r *responseRepo) Create(ctx context.Context, record *model.ResponseRecord) error {
	if record.CompletedAt.IsZero() {
		record.CompletedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		record.ID = oid.Hex()
	}
	return nil
}

func (r *responseRepo) GetByID(ctx context.Context, id string) (*model.ResponseRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var record model.ResponseRecord
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	record.ID = id
	return &record, nil
}

func (r *responseRepo) ListByVersion(ctx context.Context, surveyVersion string) ([]*model.ResponseRecord, error) {
	// Sorted by completion time so repeated aggregations over an unchanged
	// store see the records in the same order.
	opts := options.Find().SetSort(bson.D{{Key: "completedAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"surveyVersion": surveyVersion}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.ResponseRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *responseRepo) SetExcludeFromStats(ctx context.Context, id string, excluded bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"excludeFromStats": excluded}})
	return err
}
