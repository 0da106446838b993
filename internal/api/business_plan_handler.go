package api

import (
	"errors"
	"fmt"
	"net/http"

	"t3chadvance/coaching-app/internal/domain"
	"t3chadvance/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

// BusinessPlanHandler holds the business-plan service dependency.
type BusinessPlanHandler struct {
	businessPlanService service.BusinessPlanService
}

// NewBusinessPlanHandler creates a new BusinessPlanHandler.
func NewBusinessPlanHandler(businessPlanService service.BusinessPlanService) *BusinessPlanHandler {
	return &BusinessPlanHandler{businessPlanService: businessPlanService}
}

// --- Request/Response Structs ---

type QuizAnswerEntry struct {
	Question       string `json:"question" binding:"required"`
	SelectedAnswer string `json:"selectedAnswer" binding:"required"`
}

type WrittenAnswerEntry struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

type SaveResponseRequest struct {
	QuizAnswers    []QuizAnswerEntry    `json:"quizAnswers"`
	WrittenAnswers []WrittenAnswerEntry `json:"writtenAnswers"`
}

// --- Handler Methods ---

// SaveResponse stores the authenticated user's full answer set.
func (h *BusinessPlanHandler) SaveResponse(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req SaveResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	quizAnswers := make([]domain.BusinessPlanQuizAnswer, len(req.QuizAnswers))
	for i, qa := range req.QuizAnswers {
		quizAnswers[i] = domain.BusinessPlanQuizAnswer{Question: qa.Question, SelectedAnswer: qa.SelectedAnswer}
	}
	writtenAnswers := make([]domain.BusinessPlanWrittenAnswer, len(req.WrittenAnswers))
	for i, wa := range req.WrittenAnswers {
		writtenAnswers[i] = domain.BusinessPlanWrittenAnswer{Question: wa.Question, Answer: wa.Answer}
	}

	response, err := h.businessPlanService.SaveResponse(c.Request.Context(), userID, quizAnswers, writtenAnswers)
	if err != nil {
		if errors.Is(err, service.ErrBusinessPlanValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save business plan responses")
		}
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetResponse returns a user's stored answers.
func (h *BusinessPlanHandler) GetResponse(c *gin.Context) {
	userID := c.Param("userId")

	response, err := h.businessPlanService.GetResponse(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrBusinessPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve business plan responses")
		}
		return
	}

	c.JSON(http.StatusOK, response)
}

// GeneratePDF streams a user's business-plan report as a PDF attachment.
func (h *BusinessPlanHandler) GeneratePDF(c *gin.Context) {
	userID := c.Param("userId")

	pdfBytes, err := h.businessPlanService.GeneratePDF(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrBusinessPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate PDF report")
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="business_plan_%s.pdf"`, userID))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
