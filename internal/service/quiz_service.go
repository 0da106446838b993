package service

import (
	"context"
	"errors"

	"t3chadvance/coaching-app/internal/domain"
	"t3chadvance/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrQuizAlreadyExists = errors.New("quiz with this question already exists")
	ErrNoQuizzesFound    = errors.New("no quizzes found")
	ErrQuizValidation    = errors.New("quiz validation failed")
)

// QuizService manages discover-strength quiz questions.
type QuizService interface {
	CreateQuiz(ctx context.Context, question string, answers []domain.QuizAnswer) (*domain.Quiz, error)
	GetQuizzes(ctx context.Context) ([]domain.Quiz, error)
	UpdateQuiz(ctx context.Context, id primitive.ObjectID, question string, answers []domain.QuizAnswer) (*domain.Quiz, error)
	DeleteQuiz(ctx context.Context, id primitive.ObjectID) (*domain.Quiz, error)
}

type quizService struct {
	quizRepo repository.QuizRepository
}

// NewQuizService creates a new instance of quizService.
func NewQuizService(quizRepo repository.QuizRepository) QuizService {
	return &quizService{quizRepo: quizRepo}
}

// CreateQuiz adds a new question with its scored answers.
func (s *quizService) CreateQuiz(ctx context.Context, question string, answers []domain.QuizAnswer) (*domain.Quiz, error) {
	if question == "" || len(answers) == 0 {
		return nil, ErrQuizValidation
	}

	quiz := &domain.Quiz{Question: question, Answers: answers}
	id, err := s.quizRepo.Create(ctx, quiz)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrQuizAlreadyExists
		}
		return nil, err
	}
	quiz.ID = id
	return quiz, nil
}

// GetQuizzes returns all questions. An empty quiz bank is reported as
// not-found rather than an empty list.
func (s *quizService) GetQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	quizzes, err := s.quizRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(quizzes) == 0 {
		return nil, ErrNoQuizzesFound
	}
	return quizzes, nil
}

// UpdateQuiz replaces a question's text and answers.
func (s *quizService) UpdateQuiz(ctx context.Context, id primitive.ObjectID, question string, answers []domain.QuizAnswer) (*domain.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	if question != "" {
		quiz.Question = question
	}
	if answers != nil {
		quiz.Answers = answers
	}

	if err := s.quizRepo.Update(ctx, quiz); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

// DeleteQuiz removes a question and returns its final state.
func (s *quizService) DeleteQuiz(ctx context.Context, id primitive.ObjectID) (*domain.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	if err := s.quizRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}
