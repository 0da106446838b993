package mongo

import (
	"context"
	"errors"

	"t3chadvance/coaching-app/internal/domain"
	"t3chadvance/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const successPathCollectionName = "success_path_categories"

// mongoSuccessPathRepository implements repository.SuccessPathRepository.
type mongoSuccessPathRepository struct {
	collection *mongo.Collection
}

// NewMongoSuccessPathRepository creates a new success-path repository backed by MongoDB.
func NewMongoSuccessPathRepository(db *mongo.Database) repository.SuccessPathRepository {
	return &mongoSuccessPathRepository{
		collection: db.Collection(successPathCollectionName),
	}
}

// Create inserts a new category with its initial questions.
func (r *mongoSuccessPathRepository) Create(ctx context.Context, category *domain.SuccessPathCategory) (primitive.ObjectID, error) {
	if category.Category == "" {
		return primitive.NilObjectID, errors.New("category name is required")
	}

	category.ID = primitive.NewObjectID()

	result, err := r.collection.InsertOne(ctx, category)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByCategory retrieves a category by its unique name.
func (r *mongoSuccessPathRepository) GetByCategory(ctx context.Context, name string) (*domain.SuccessPathCategory, error) {
	var category domain.SuccessPathCategory
	err := r.collection.FindOne(ctx, bson.M{"category": name}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// GetAll retrieves every category with its embedded questions.
func (r *mongoSuccessPathRepository) GetAll(ctx context.Context) ([]domain.SuccessPathCategory, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []domain.SuccessPathCategory
	if err = cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Update persists the full question list of a category.
func (r *mongoSuccessPathRepository) Update(ctx context.Context, category *domain.SuccessPathCategory) error {
	if category.ID == primitive.NilObjectID {
		return errors.New("category ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"questions": category.Questions,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": category.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureSuccessPathIndexes creates necessary indexes for the categories collection.
func EnsureSuccessPathIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Index creation failure is non-fatal at startup.
	}
}
