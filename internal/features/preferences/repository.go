package preferences

import (
	"context"
	"time"

	"go-dashboard/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PreferencesRepository interface {
	// FindByUserKey returns (nil, nil) when the user has no document yet;
	// a missing document is a valid empty state, not an error.
	FindByUserKey(ctx context.Context, userKey primitive.ObjectID) (*PreferencesDocument, error)
	Create(ctx context.Context, doc *PreferencesDocument) error
	// Save replaces the whole stored document with doc. There is no partial
	// update path: the layout array is always written as one unit.
	Save(ctx context.Context, doc *PreferencesDocument) error
}

type PreferencesRepositoryImpl struct {
	collection *mongo.Collection
}

func NewPreferencesRepository(db *database.MongodbDB) PreferencesRepository {
	return &PreferencesRepositoryImpl{
		collection: db.DB.Collection("dashboard_preferences"),
	}
}

func (r *PreferencesRepositoryImpl) FindByUserKey(ctx context.Context, userKey primitive.ObjectID) (*PreferencesDocument, error) {
	var doc PreferencesDocument
	err := r.collection.FindOne(ctx, bson.M{"userId": userKey}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (r *PreferencesRepositoryImpl) Create(ctx context.Context, doc *PreferencesDocument) error {
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, doc)
	return err
}

func (r *PreferencesRepositoryImpl) Save(ctx context.Context, doc *PreferencesDocument) error {
	doc.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
