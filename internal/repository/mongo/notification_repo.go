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

const notificationCollectionName = "notification_history"

// mongoNotificationRepository implements repository.NotificationHistoryRepository.
type mongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new history repository backed by MongoDB.
func NewMongoNotificationRepository(db *mongo.Database) repository.NotificationHistoryRepository {
	return &mongoNotificationRepository{
		collection: db.Collection(notificationCollectionName),
	}
}

// Create inserts one attempted-delivery record.
func (r *mongoNotificationRepository) Create(ctx context.Context, record *domain.NotificationHistory) (primitive.ObjectID, error) {
	if record.FCMToken == "" {
		return primitive.NilObjectID, errors.New("history record fcm token is required")
	}

	record.ID = primitive.NewObjectID()
	if record.SentAt.IsZero() {
		record.SentAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// MarkRead flips the read flag and returns the updated record.
func (r *mongoNotificationRepository) MarkRead(ctx context.Context, id primitive.ObjectID) (*domain.NotificationHistory, error) {
	var record domain.NotificationHistory

	after := options.After
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"read": true}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// GetUnreadByUserID retrieves a user's unread records, newest first.
func (r *mongoNotificationRepository) GetUnreadByUserID(ctx context.Context, userID string) ([]domain.NotificationHistory, error) {
	filter := bson.M{"userId": userID, "read": false}
	findOptions := options.Find().SetSort(bson.D{{Key: "sentAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domain.NotificationHistory
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetAll retrieves every history record, newest first.
func (r *mongoNotificationRepository) GetAll(ctx context.Context) ([]domain.NotificationHistory, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "sentAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domain.NotificationHistory
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// EnsureNotificationIndexes creates necessary indexes for the history collection.
func EnsureNotificationIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "read", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "sentAt", Value: -1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Index creation failure is non-fatal at startup.
	}
}
