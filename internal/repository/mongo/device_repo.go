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

const deviceCollectionName = "devices"

// mongoDeviceRepository implements repository.DeviceRepository using MongoDB.
type mongoDeviceRepository struct {
	collection *mongo.Collection
}

// NewMongoDeviceRepository creates a new device repository backed by MongoDB.
func NewMongoDeviceRepository(db *mongo.Database) repository.DeviceRepository {
	return &mongoDeviceRepository{
		collection: db.Collection(deviceCollectionName),
	}
}

// Create inserts a new device registration.
func (r *mongoDeviceRepository) Create(ctx context.Context, device *domain.Device) (primitive.ObjectID, error) {
	if device.FCMToken == "" {
		return primitive.NilObjectID, errors.New("device fcm token is required")
	}

	device.ID = primitive.NewObjectID()
	if device.LastActive.IsZero() {
		device.LastActive = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, device)
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

// GetByToken retrieves a registration by its FCM token.
func (r *mongoDeviceRepository) GetByToken(ctx context.Context, fcmToken string) (*domain.Device, error) {
	var device domain.Device
	err := r.collection.FindOne(ctx, bson.M{"fcmToken": fcmToken}).Decode(&device)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &device, nil
}

// GetAll retrieves every registered device.
func (r *mongoDeviceRepository) GetAll(ctx context.Context) ([]domain.Device, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var devices []domain.Device
	if err = cursor.All(ctx, &devices); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return devices, nil
}

// DeleteByToken removes the registration holding the given token. Used by
// the fan-out engine to prune tokens the gateway reported as invalid.
func (r *mongoDeviceRepository) DeleteByToken(ctx context.Context, fcmToken string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"fcmToken": fcmToken})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureDeviceIndexes creates necessary indexes for the devices collection.
func EnsureDeviceIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "fcmToken", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Index creation failure is non-fatal at startup.
	}
}
