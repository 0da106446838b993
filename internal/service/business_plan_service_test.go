package service

import (
	"context"
	"testing"
	"time"

	"t3chadvance/coaching-app/internal/domain"
	"t3chadvance/coaching-app/internal/repository"

	"github.com/stretchr/testify/assert"
)

// fakeBusinessPlanRepo is an in-memory BusinessPlanRepository keyed by
// user ID.
type fakeBusinessPlanRepo struct {
	responses map[string]*domain.BusinessPlanResponse
}

func newFakeBusinessPlanRepo() *fakeBusinessPlanRepo {
	return &fakeBusinessPlanRepo{responses: make(map[string]*domain.BusinessPlanResponse)}
}

func (r *fakeBusinessPlanRepo) Upsert(ctx context.Context, response *domain.BusinessPlanResponse) error {
	copied := *response
	if existing, ok := r.responses[response.UserID]; ok {
		copied.ID = existing.ID
		copied.CreatedAt = existing.CreatedAt
	} else {
		copied.CreatedAt = time.Now()
	}
	copied.UpdatedAt = time.Now()
	r.responses[response.UserID] = &copied
	return nil
}

func (r *fakeBusinessPlanRepo) GetByUserID(ctx context.Context, userID string) (*domain.BusinessPlanResponse, error) {
	response, ok := r.responses[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *response
	return &copied, nil
}

func TestSaveResponseReplacesEarlierSubmission(t *testing.T) {
	svc := NewBusinessPlanService(newFakeBusinessPlanRepo(), newFakeUserRepo())

	_, err := svc.SaveResponse(context.Background(), "u1",
		[]domain.BusinessPlanQuizAnswer{{Question: "Q1", SelectedAnswer: "A"}}, nil)
	assert.NoError(t, err)

	_, err = svc.SaveResponse(context.Background(), "u1",
		[]domain.BusinessPlanQuizAnswer{{Question: "Q1", SelectedAnswer: "B"}},
		[]domain.BusinessPlanWrittenAnswer{{Question: "Q2", Answer: "text"}})
	assert.NoError(t, err)

	stored, err := svc.GetResponse(context.Background(), "u1")
	assert.NoError(t, err)
	if assert.Len(t, stored.QuizAnswers, 1) {
		assert.Equal(t, "B", stored.QuizAnswers[0].SelectedAnswer)
	}
	assert.Len(t, stored.WrittenAnswers, 1)
}

func TestSaveResponseValidation(t *testing.T) {
	svc := NewBusinessPlanService(newFakeBusinessPlanRepo(), newFakeUserRepo())

	_, err := svc.SaveResponse(context.Background(), "", []domain.BusinessPlanQuizAnswer{{Question: "Q", SelectedAnswer: "A"}}, nil)
	assert.ErrorIs(t, err, ErrBusinessPlanValidation)

	_, err = svc.SaveResponse(context.Background(), "u1", nil, nil)
	assert.ErrorIs(t, err, ErrBusinessPlanValidation)
}

func TestGetResponseUnknownUser(t *testing.T) {
	svc := NewBusinessPlanService(newFakeBusinessPlanRepo(), newFakeUserRepo())

	_, err := svc.GetResponse(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrBusinessPlanNotFound)
}

func TestGeneratePDF(t *testing.T) {
	svc := NewBusinessPlanService(newFakeBusinessPlanRepo(), newFakeUserRepo())

	_, err := svc.SaveResponse(context.Background(), "u1",
		[]domain.BusinessPlanQuizAnswer{{Question: "What is your market?", SelectedAnswer: "Local"}},
		[]domain.BusinessPlanWrittenAnswer{{Question: "Describe your plan.", Answer: "Grow steadily."}})
	assert.NoError(t, err)

	pdfBytes, err := svc.GeneratePDF(context.Background(), "u1")
	assert.NoError(t, err)
	assert.NotEmpty(t, pdfBytes)
	// A well-formed PDF starts with the version marker.
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestGeneratePDFNoResponses(t *testing.T) {
	svc := NewBusinessPlanService(newFakeBusinessPlanRepo(), newFakeUserRepo())

	_, err := svc.GeneratePDF(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrBusinessPlanNotFound)
}
