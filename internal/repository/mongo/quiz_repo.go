package mongo

import (
	"context"
	"errors"
	"time"

	"t3chadvance/coaching-app/internal/domain"
	"t3chadvance/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const quizCollectionName = "quizzes"

// mongoQuizRepository implements repository.QuizRepository using MongoDB.
type mongoQuizRepository struct {
	collection *mongo.Collection
}

// NewMongoQuizRepository creates a new quiz repository backed by MongoDB.
func NewMongoQuizRepository(db *mongo.Database) repository.QuizRepository {
	return &mongoQuizRepository{
		collection: db.Collection(quizCollectionName),
	}
}

// Create inserts a new quiz question.
func (r *mongoQuizRepository) Create(ctx context.Context, quiz *domain.Quiz) (primitive.ObjectID, error) {
	if quiz.Question == "" {
		return primitive.NilObjectID, errors.New("quiz question is required")
	}

	quiz.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	quiz.CreatedAt = now
	quiz.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, quiz)
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

// GetByID retrieves a quiz by its ID.
func (r *mongoQuizRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Quiz, error) {
	var quiz domain.Quiz
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&quiz)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetAll retrieves all quizzes, newest first.
func (r *mongoQuizRepository) GetAll(ctx context.Context) ([]domain.Quiz, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var quizzes []domain.Quiz
	if err = cursor.All(ctx, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

// Update modifies an existing quiz question and its answers.
func (r *mongoQuizRepository) Update(ctx context.Context, quiz *domain.Quiz) error {
	if quiz.ID == primitive.NilObjectID {
		return errors.New("quiz ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"question":  quiz.Question,
			"answers":   quiz.Answers,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": quiz.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a quiz by id.
func (r *mongoQuizRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureQuizIndexes creates necessary indexes for the quizzes collection.
func EnsureQuizIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "question", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Index creation failure is non-fatal at startup.
	}
}
