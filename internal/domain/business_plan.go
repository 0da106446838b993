package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BusinessPlanQuizAnswer is one multiple-choice answer picked by a user.
type BusinessPlanQuizAnswer struct {
	Question       string `bson:"question" json:"question"`
	SelectedAnswer string `bson:"selectedAnswer" json:"selectedAnswer"`
}

// BusinessPlanWrittenAnswer is a free-text answer to an open question.
type BusinessPlanWrittenAnswer struct {
	Question string `bson:"question" json:"question"`
	Answer   string `bson:"answer" json:"answer"`
}

// BusinessPlanResponse holds one user's complete business-plan answers,
// the source material for the generated PDF report. One document per user.
type BusinessPlanResponse struct {
	ID             primitive.ObjectID          `bson:"_id,omitempty" json:"id"`
	UserID         string                      `bson:"userId" json:"userId"`
	QuizAnswers    []BusinessPlanQuizAnswer    `bson:"quizAnswers" json:"quizAnswers"`
	WrittenAnswers []BusinessPlanWrittenAnswer `bson:"writtenAnswers" json:"writtenAnswers"`
	CreatedAt      time.Time                   `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time                   `bson:"updatedAt" json:"updatedAt"`
}
