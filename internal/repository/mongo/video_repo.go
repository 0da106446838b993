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

const videoCollectionName = "videos"

// mongoVideoRepository implements repository.VideoRepository using MongoDB.
type mongoVideoRepository struct {
	collection *mongo.Collection
}

// NewMongoVideoRepository creates a new video repository backed by MongoDB.
func NewMongoVideoRepository(db *mongo.Database) repository.VideoRepository {
	return &mongoVideoRepository{
		collection: db.Collection(videoCollectionName),
	}
}

// Create inserts a new video document.
func (r *mongoVideoRepository) Create(ctx context.Context, video *domain.Video) (primitive.ObjectID, error) {
	video.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	video.CreatedAt = now
	video.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, video)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a video by its ID.
func (r *mongoVideoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error) {
	var video domain.Video
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&video)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &video, nil
}

// GetAll retrieves all videos, newest first.
func (r *mongoVideoRepository) GetAll(ctx context.Context) ([]domain.Video, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var videos []domain.Video
	if err = cursor.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// Update modifies an existing video document.
func (r *mongoVideoRepository) Update(ctx context.Context, video *domain.Video) error {
	if video.ID == primitive.NilObjectID {
		return errors.New("video ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"title":     video.Title,
			"filename":  video.Filename,
			"filepath":  video.Filepath,
			"url":       video.URL,
			"mark":      video.Mark,
			"category":  video.Category,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": video.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a video by id.
func (r *mongoVideoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureVideoIndexes creates necessary indexes for the videos collection.
func EnsureVideoIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "title", Value: "text"}},
			Options: options.Index().SetName("video_title_search"),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Index creation failure is non-fatal at startup.
	}
}
