package api

import (
	"errors"
	"fmt"
	"net/http"

	"t3chadvance/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

// SuccessPathHandler holds the success-path service dependency.
type SuccessPathHandler struct {
	successPathService service.SuccessPathService
}

// NewSuccessPathHandler creates a new SuccessPathHandler.
func NewSuccessPathHandler(successPathService service.SuccessPathService) *SuccessPathHandler {
	return &SuccessPathHandler{successPathService: successPathService}
}

// --- Request/Response Structs ---

type AddQuestionRequest struct {
	Category     string   `json:"category" binding:"required"`
	QuestionText string   `json:"questionText" binding:"required"`
	Answers      []string `json:"answers"`
}

type UpdateQuestionRequest struct {
	QuestionText *string  `json:"questionText"`
	Answers      []string `json:"answers"`
}

// --- Handler Methods ---

// AddQuestion appends a question to a category, creating the category on
// first use. Omitted answers default to Yes/No.
func (h *SuccessPathHandler) AddQuestion(c *gin.Context) {
	var req AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	category, err := h.successPathService.AddQuestion(c.Request.Context(), req.Category, req.QuestionText, req.Answers)
	if err != nil {
		if errors.Is(err, service.ErrSuccessPathValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to add question")
		}
		return
	}

	c.JSON(http.StatusCreated, category)
}

// GetCategories lists every category with its questions.
func (h *SuccessPathHandler) GetCategories(c *gin.Context) {
	categories, err := h.successPathService.GetCategories(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategoryByName returns one category by its name.
func (h *SuccessPathHandler) GetCategoryByName(c *gin.Context) {
	name := c.Param("category")

	category, err := h.successPathService.GetCategoryByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve category")
		}
		return
	}

	c.JSON(http.StatusOK, category)
}

// UpdateQuestion edits a question inside a category.
func (h *SuccessPathHandler) UpdateQuestion(c *gin.Context) {
	name := c.Param("category")
	questionID, ok := parseObjectIDParam(c, "questionId")
	if !ok {
		return
	}

	var req UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	category, err := h.successPathService.UpdateQuestion(c.Request.Context(), name, questionID, service.SuccessPathQuestionUpdate{
		QuestionText: req.QuestionText,
		Answers:      req.Answers,
	})
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) || errors.Is(err, service.ErrQuestionNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update question")
		}
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteQuestion removes a question from a category. The category itself
// persists even when emptied.
func (h *SuccessPathHandler) DeleteQuestion(c *gin.Context) {
	name := c.Param("category")
	questionID, ok := parseObjectIDParam(c, "questionId")
	if !ok {
		return
	}

	category, err := h.successPathService.DeleteQuestion(c.Request.Context(), name, questionID)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) || errors.Is(err, service.ErrQuestionNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete question")
		}
		return
	}

	c.JSON(http.StatusOK, category)
}
