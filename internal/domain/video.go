package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video is an instructional video asset. Filepath/URL point at the object
// storage location; Mark and Category are free-form labels used by the
// mobile clients.
type Video struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Filename  string             `bson:"filename" json:"filename"`
	Filepath  string             `bson:"filepath" json:"filepath"`
	URL       string             `bson:"url" json:"url"`
	Mark      string             `bson:"mark" json:"mark"`
	Category  string             `bson:"category" json:"category"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Playlist is an ordered collection of boot-camp videos.
type Playlist struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	VideoIDs    []primitive.ObjectID `bson:"videoIds,omitempty" json:"videoIds,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}
