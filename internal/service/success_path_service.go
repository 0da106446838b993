package service

import (
	"context"
	"errors"

	"t3chadvance/coaching-app/internal/domain"
	"t3chadvance/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrCategoryNotFound      = errors.New("success path category not found")
	ErrQuestionNotFound      = errors.New("question not found in category")
	ErrSuccessPathValidation = errors.New("category and question text are required")
)

// SuccessPathQuestionUpdate carries the optional fields of a question
// update inside a category.
type SuccessPathQuestionUpdate struct {
	QuestionText *string
	Answers      []string
}

// SuccessPathService manages success-path categories and their embedded
// questions.
type SuccessPathService interface {
	AddQuestion(ctx context.Context, categoryName, questionText string, answers []string) (*domain.SuccessPathCategory, error)
	GetCategories(ctx context.Context) ([]domain.SuccessPathCategory, error)
	GetCategoryByName(ctx context.Context, categoryName string) (*domain.SuccessPathCategory, error)
	UpdateQuestion(ctx context.Context, categoryName string, questionID primitive.ObjectID, update SuccessPathQuestionUpdate) (*domain.SuccessPathCategory, error)
	DeleteQuestion(ctx context.Context, categoryName string, questionID primitive.ObjectID) (*domain.SuccessPathCategory, error)
}

type successPathService struct {
	successPathRepo repository.SuccessPathRepository
}

// NewSuccessPathService creates a new instance of successPathService.
func NewSuccessPathService(successPathRepo repository.SuccessPathRepository) SuccessPathService {
	return &successPathService{successPathRepo: successPathRepo}
}

// AddQuestion appends a question to a category, creating the category on
// first use. Questions without explicit answers default to Yes/No.
func (s *successPathService) AddQuestion(ctx context.Context, categoryName, questionText string, answers []string) (*domain.SuccessPathCategory, error) {
	if categoryName == "" || questionText == "" {
		return nil, ErrSuccessPathValidation
	}
	if len(answers) == 0 {
		answers = domain.DefaultSuccessPathAnswers
	}

	question := domain.SuccessPathQuestion{
		ID:           primitive.NewObjectID(),
		QuestionText: questionText,
		Answers:      answers,
	}

	category, err := s.successPathRepo.GetByCategory(ctx, categoryName)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		category = &domain.SuccessPathCategory{
			Category:  categoryName,
			Questions: []domain.SuccessPathQuestion{question},
		}
		id, err := s.successPathRepo.Create(ctx, category)
		if err != nil {
			return nil, err
		}
		category.ID = id
		return category, nil
	}

	category.Questions = append(category.Questions, question)
	if err := s.successPathRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategories returns every category with its questions.
func (s *successPathService) GetCategories(ctx context.Context) ([]domain.SuccessPathCategory, error) {
	return s.successPathRepo.GetAll(ctx)
}

// GetCategoryByName returns one category.
func (s *successPathService) GetCategoryByName(ctx context.Context, categoryName string) (*domain.SuccessPathCategory, error) {
	category, err := s.successPathRepo.GetByCategory(ctx, categoryName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// UpdateQuestion edits a question inside a category.
func (s *successPathService) UpdateQuestion(ctx context.Context, categoryName string, questionID primitive.ObjectID, update SuccessPathQuestionUpdate) (*domain.SuccessPathCategory, error) {
	category, err := s.successPathRepo.GetByCategory(ctx, categoryName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	found := false
	for i := range category.Questions {
		if category.Questions[i].ID == questionID {
			if update.QuestionText != nil {
				category.Questions[i].QuestionText = *update.QuestionText
			}
			if update.Answers != nil {
				category.Questions[i].Answers = update.Answers
			}
			found = true
			break
		}
	}
	if !found {
		return nil, ErrQuestionNotFound
	}

	if err := s.successPathRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteQuestion removes a question from a category. The category itself
// stays, even when its question list becomes empty.
func (s *successPathService) DeleteQuestion(ctx context.Context, categoryName string, questionID primitive.ObjectID) (*domain.SuccessPathCategory, error) {
	category, err := s.successPathRepo.GetByCategory(ctx, categoryName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	idx := -1
	for i := range category.Questions {
		if category.Questions[i].ID == questionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrQuestionNotFound
	}

	category.Questions = append(category.Questions[:idx], category.Questions[idx+1:]...)
	if err := s.successPathRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}
