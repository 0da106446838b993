package mongo

import (
	"context"
	"errors"
	"time"

	"t3chadvance/coaching-app/internal/domain"
	"t3chadvance/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const businessPlanCollectionName = "business_plan_responses"

// mongoBusinessPlanRepository implements repository.BusinessPlanRepository.
type mongoBusinessPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoBusinessPlanRepository creates a new business-plan repository backed by MongoDB.
func NewMongoBusinessPlanRepository(db *mongo.Database) repository.BusinessPlanRepository {
	return &mongoBusinessPlanRepository{
		collection: db.Collection(businessPlanCollectionName),
	}
}

// Upsert replaces the user's response document, creating it on first save.
func (r *mongoBusinessPlanRepository) Upsert(ctx context.Context, response *domain.BusinessPlanResponse) error {
	if response.UserID == "" {
		return errors.New("business plan response user ID is required")
	}

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"quizAnswers":    response.QuizAnswers,
			"writtenAnswers": response.WrittenAnswers,
			"updatedAt":      now,
		},
		"$setOnInsert": bson.M{
			"userId":    response.UserID,
			"createdAt": now,
		},
	}

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"userId": response.UserID},
		update,
		options.Update().SetUpsert(true),
	)
	return err
}

// GetByUserID retrieves the response document for one user.
func (r *mongoBusinessPlanRepository) GetByUserID(ctx context.Context, userID string) (*domain.BusinessPlanResponse, error) {
	var response domain.BusinessPlanResponse
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&response)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &response, nil
}

// EnsureBusinessPlanIndexes creates necessary indexes for the responses collection.
func EnsureBusinessPlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Index creation failure is non-fatal at startup.
	}
}
