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

const playlistCollectionName = "playlists"

// mongoPlaylistRepository implements repository.PlaylistRepository using MongoDB.
type mongoPlaylistRepository struct {
	collection *mongo.Collection
}

// NewMongoPlaylistRepository creates a new playlist repository backed by MongoDB.
func NewMongoPlaylistRepository(db *mongo.Database) repository.PlaylistRepository {
	return &mongoPlaylistRepository{
		collection: db.Collection(playlistCollectionName),
	}
}

// Create inserts a new playlist.
func (r *mongoPlaylistRepository) Create(ctx context.Context, playlist *domain.Playlist) (primitive.ObjectID, error) {
	if playlist.Name == "" {
		return primitive.NilObjectID, errors.New("playlist name is required")
	}

	playlist.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	playlist.CreatedAt = now
	playlist.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, playlist)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a playlist by its ID.
func (r *mongoPlaylistRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Playlist, error) {
	var playlist domain.Playlist
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&playlist)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &playlist, nil
}

// GetAll retrieves all playlists.
func (r *mongoPlaylistRepository) GetAll(ctx context.Context) ([]domain.Playlist, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var playlists []domain.Playlist
	if err = cursor.All(ctx, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// Update modifies a playlist's name, description and video list.
func (r *mongoPlaylistRepository) Update(ctx context.Context, playlist *domain.Playlist) error {
	if playlist.ID == primitive.NilObjectID {
		return errors.New("playlist ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"name":        playlist.Name,
			"description": playlist.Description,
			"videoIds":    playlist.VideoIDs,
			"updatedAt":   time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": playlist.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a playlist by id.
func (r *mongoPlaylistRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddVideo appends a video to a playlist. $addToSet keeps the list free of
// duplicates when the same video is added twice.
func (r *mongoPlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID primitive.ObjectID) error {
	update := bson.M{
		"$addToSet": bson.M{"videoIds": videoID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": playlistID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePlaylistIndexes creates necessary indexes for the playlists collection.
func EnsurePlaylistIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Index creation failure is non-fatal at startup.
	}
}
