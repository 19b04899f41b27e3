package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"spicysweet/internal/model"
)

// ContentRepo stores named question sets. The built-in set is seeded by
// cmd/seed; deployments can replace it without a rebuild.
type ContentRepo interface {
	Upsert(ctx context.Context, set *model.ContentSet) error
	GetByName(ctx context.Context, name string) (*model.ContentSet, error)
}

type contentRepo struct {
	collection *mongo.Collection
}

func NewContentRepo(db *mongo.Database) ContentRepo {
	return &contentRepo{
		collection: db.Collection("content_sets"),
	}
}

func (r *contentRepo) Upsert(ctx context.Context, set *model.ContentSet) error {
	opts := replaceUpsert()
	_, err := r.collection.ReplaceOne(ctx, map[string]interface{}{"name": set.Name}, set, opts)
	return err
}

func (r *contentRepo) GetByName(ctx context.Context, name string) (*model.ContentSet, error) {
	var set model.ContentSet
	err := r.collection.FindOne(ctx, map[string]interface{}{"name": name}).Decode(&set)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Set not found
		}
		return nil, err
	}
	return &set, nil
}
