package api

import (
	"errors"
	"fmt"
	"net/http"

	"t3chadvance/coaching-app/internal/domain"
	"t3chadvance/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

// QuizHandler holds the quiz service dependency.
type QuizHandler struct {
	quizService service.QuizService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// --- Request/Response Structs ---

type QuizAnswerInput struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score"`
}

type QuizRequest struct {
	Question string            `json:"question" binding:"required"`
	Answers  []QuizAnswerInput `json:"answers" binding:"required,min=1"`
}

// --- Handler Methods ---

// CreateQuiz adds a new question with its scored answers.
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	quiz, err := h.quizService.CreateQuiz(c.Request.Context(), req.Question, mapQuizAnswers(req.Answers))
	if err != nil {
		if errors.Is(err, service.ErrQuizAlreadyExists) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else if errors.Is(err, service.ErrQuizValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create quiz")
		}
		return
	}

	c.JSON(http.StatusCreated, quiz)
}

// GetQuizzes lists every question. An empty quiz bank is a 404.
func (h *QuizHandler) GetQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.GetQuizzes(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoQuizzesFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve quizzes")
		}
		return
	}

	c.JSON(http.StatusOK, quizzes)
}

// UpdateQuiz replaces a question's text and answers.
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	quiz, err := h.quizService.UpdateQuiz(c.Request.Context(), id, req.Question, mapQuizAnswers(req.Answers))
	if err != nil {
		if errors.Is(err, service.ErrQuizNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update quiz")
		}
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// DeleteQuiz removes a question.
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	quiz, err := h.quizService.DeleteQuiz(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrQuizNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete quiz")
		}
		return
	}

	c.JSON(http.StatusOK, quiz)
}

func mapQuizAnswers(inputs []QuizAnswerInput) []domain.QuizAnswer {
	answers := make([]domain.QuizAnswer, len(inputs))
	for i, a := range inputs {
		answers[i] = domain.QuizAnswer{Text: a.Text, Score: a.Score}
	}
	return answers
}
