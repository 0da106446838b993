package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuizAnswer is one selectable answer with its score weight.
type QuizAnswer struct {
	Text  string `bson:"text" json:"text"`
	Score int    `bson:"score" json:"score"`
}

// Quiz is a single discover-strength quiz question.
type Quiz struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Question  string             `bson:"question" json:"question"` // unique
	Answers   []QuizAnswer       `bson:"answers" json:"answers"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
