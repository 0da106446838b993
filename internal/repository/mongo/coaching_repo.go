package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"t3chadvance/coaching-app/internal/domain"
	"t3chadvance/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const coachingCollectionName = "coaching_users"

// mongoCoachingRepository implements repository.CoachingRepository using MongoDB.
type mongoCoachingRepository struct {
	collection *mongo.Collection
}

// NewMongoCoachingRepository creates a new coaching repository backed by MongoDB.
func NewMongoCoachingRepository(db *mongo.Database) repository.CoachingRepository {
	return &mongoCoachingRepository{
		collection: db.Collection(coachingCollectionName),
	}
}

// Create inserts a new coaching booking.
func (r *mongoCoachingRepository) Create(ctx context.Context, user *domain.CoachingUser) (primitive.ObjectID, error) {
	if user.Name == "" || user.Email == "" {
		return primitive.NilObjectID, errors.New("coaching user name and email are required")
	}

	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, user)
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

// GetByID retrieves a booking by its ObjectID.
func (r *mongoCoachingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.CoachingUser, error) {
	var user domain.CoachingUser
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetAll retrieves every booking, newest first.
func (r *mongoCoachingRepository) GetAll(ctx context.Context) ([]domain.CoachingUser, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []domain.CoachingUser
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// Search executes a resolved coaching query: either an exact status match
// or a case-insensitive name-substring match.
func (r *mongoCoachingRepository) Search(ctx context.Context, query domain.CoachingQuery) ([]domain.CoachingUser, error) {
	var filter bson.M
	switch query.Kind {
	case domain.QueryByStatus:
		filter = bson.M{"status": query.Status}
	case domain.QueryByNameContains:
		filter = bson.M{"name": bson.M{"$regex": regexp.QuoteMeta(query.Name), "$options": "i"}}
	default:
		return nil, errors.New("unknown coaching query kind")
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []domain.CoachingUser
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Update persists all mutable fields of the booking. The slot workflow
// relies on this being a single-document write.
func (r *mongoCoachingRepository) Update(ctx context.Context, user *domain.CoachingUser) error {
	if user.ID == primitive.NilObjectID {
		return errors.New("coaching user ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"name":      user.Name,
			"email":     user.Email,
			"date":      user.Date,
			"time":      user.Time,
			"status":    user.Status,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a booking by id.
func (r *mongoCoachingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Count returns the total number of bookings.
func (r *mongoCoachingRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// CountByStatus returns the number of bookings with the given status.
func (r *mongoCoachingRepository) CountByStatus(ctx context.Context, status domain.Status) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}

// EnsureCoachingIndexes creates necessary indexes for the coaching collection.
func EnsureCoachingIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Index creation failure is non-fatal at startup.
	}
}
