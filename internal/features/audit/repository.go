package audit

import (
	"context"
	"time"

	common_models "go-dashboard/internal/common/models"
	"go-dashboard/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AuditRepository interface {
	Insert(ctx context.Context, entry *common_models.AuditLog) error
	FindByUserKey(ctx context.Context, userKey primitive.ObjectID, limit int64) ([]common_models.AuditLog, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type AuditRepositoryImpl struct {
	collection *mongo.Collection
}

func NewAuditRepository(db *database.MongodbDB) AuditRepository {
	return &AuditRepositoryImpl{
		collection: db.DB.Collection("audit_logs"),
	}
}

func (r *AuditRepositoryImpl) Insert(ctx context.Context, entry *common_models.AuditLog) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	entry.Timestamp = time.Now()

	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

func (r *AuditRepositoryImpl) FindByUserKey(ctx context.Context, userKey primitive.ObjectID, limit int64) ([]common_models.AuditLog, error) {
	opts := options.Find().
		SetSort(bson.M{"timestamp": -1}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"user_key": userKey}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []common_models.AuditLog
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *AuditRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"timestamp": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
