package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SuccessPathQuestion is a question embedded in a success-path category.
// Questions carry their own ObjectID so they can be addressed inside the
// parent document.
type SuccessPathQuestion struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QuestionText string             `bson:"questionText" json:"questionText"`
	Answers      []string           `bson:"answers" json:"answers"`
}

// SuccessPathCategory groups success-path questions under a unique
// category name.
type SuccessPathCategory struct {
	ID        primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	Category  string                `bson:"category" json:"category"` // unique
	Questions []SuccessPathQuestion `bson:"questions" json:"questions"`
}

// DefaultSuccessPathAnswers is applied when a question is added without
// explicit answers.
var DefaultSuccessPathAnswers = []string{"Yes", "No"}
