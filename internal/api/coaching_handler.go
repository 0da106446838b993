package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"t3chadvance/coaching-app/internal/domain"
	"t3chadvance/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CoachingHandler holds the coaching service dependency.
type CoachingHandler struct {
	coachingService service.CoachingService
}

// NewCoachingHandler creates a new CoachingHandler.
func NewCoachingHandler(coachingService service.CoachingService) *CoachingHandler {
	return &CoachingHandler{coachingService: coachingService}
}

// --- Request/Response Structs ---

type CreateBookingRequest struct {
	Name  string   `json:"name" binding:"required"`
	Email string   `json:"email" binding:"required,email"`
	Date  string   `json:"date" binding:"required"` // YYYY-MM-DD
	Time  []string `json:"time" binding:"required,min=1"`
}

type UpdateBookingRequest struct {
	Name  *string  `json:"name"`
	Email *string  `json:"email"`
	Date  *string  `json:"date"`
	Time  []string `json:"time"`
}

type SlotStatusRequest struct {
	Range  string `json:"range" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type TimeSlotResponse struct {
	Range string `json:"range"`
	Flag  bool   `json:"flag"`
}

type CoachingUserResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Date      time.Time          `json:"date"`
	Time      []TimeSlotResponse `json:"time"`
	Status    domain.Status      `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// --- Handler Methods ---

// CreateBooking submits a new coaching booking. All slots start
// unapproved and the booking status starts PENDING.
func (h *CoachingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	user, err := h.coachingService.CreateBooking(c.Request.Context(), req.Name, req.Email, date, req.Time)
	if err != nil {
		if errors.Is(err, service.ErrCoachingUserExists) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else if errors.Is(err, service.ErrCoachingValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create booking")
		}
		return
	}

	c.JSON(http.StatusCreated, MapCoachingUserToResponse(user))
}

// GetBookings returns every booking.
func (h *CoachingHandler) GetBookings(c *gin.Context) {
	users, err := h.coachingService.GetAll(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	responses := make([]CoachingUserResponse, len(users))
	for i, u := range users {
		responses[i] = MapCoachingUserToResponse(&u)
	}
	c.JSON(http.StatusOK, responses)
}

// GetBookingByID returns a single booking.
func (h *CoachingHandler) GetBookingByID(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.coachingService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCoachingUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve booking")
		}
		return
	}

	c.JSON(http.StatusOK, MapCoachingUserToResponse(user))
}

// SearchBookings resolves the q parameter into a status or name search.
// A q equal to PENDING, APPROVED or DENIED filters by status; anything
// else matches names case-insensitively.
func (h *CoachingHandler) SearchBookings(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	query := domain.ParseCoachingQuery(q)
	users, err := h.coachingService.Search(c.Request.Context(), query)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to search bookings")
		return
	}

	responses := make([]CoachingUserResponse, len(users))
	for i, u := range users {
		responses[i] = MapCoachingUserToResponse(&u)
	}
	c.JSON(http.StatusOK, responses)
}

// GetStats returns total, approved and denied booking counts.
func (h *CoachingHandler) GetStats(c *gin.Context) {
	stats, err := h.coachingService.Stats(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute booking stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// UpdateBooking applies a generic partial update to a booking.
func (h *CoachingHandler) UpdateBooking(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	update := service.CoachingUserUpdate{Name: req.Name, Email: req.Email}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		update.Date = &date
	}
	if req.Time != nil {
		slots := make([]domain.TimeSlot, len(req.Time))
		for i, r := range req.Time {
			slots[i] = domain.TimeSlot{Range: r}
		}
		update.Time = slots
	}

	user, err := h.coachingService.UpdateBooking(c.Request.Context(), id, update)
	if err != nil {
		if errors.Is(err, service.ErrCoachingUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrCoachingUserExists) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update booking")
		}
		return
	}

	c.JSON(http.StatusOK, MapCoachingUserToResponse(user))
}

// DeleteBooking removes a booking and returns its final state.
func (h *CoachingHandler) DeleteBooking(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.coachingService.DeleteBooking(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCoachingUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete booking")
		}
		return
	}

	c.JSON(http.StatusOK, MapCoachingUserToResponse(user))
}

// UpdateSlotStatus approves or denies one time slot on a booking. The
// booking status always reflects the most recent action.
func (h *CoachingHandler) UpdateSlotStatus(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req SlotStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.coachingService.UpdateSlotStatus(c.Request.Context(), id, req.Range, domain.Status(req.Action))
	if err != nil {
		if errors.Is(err, service.ErrInvalidSlotAction) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else if errors.Is(err, service.ErrCoachingUserNotFound) || errors.Is(err, service.ErrSlotNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update slot status")
		}
		return
	}

	c.JSON(http.StatusOK, MapCoachingUserToResponse(user))
}

// MapCoachingUserToResponse converts a domain CoachingUser to its DTO.
func MapCoachingUserToResponse(user *domain.CoachingUser) CoachingUserResponse {
	if user == nil {
		return CoachingUserResponse{}
	}

	slots := make([]TimeSlotResponse, len(user.Time))
	for i, s := range user.Time {
		slots[i] = TimeSlotResponse{Range: s.Range, Flag: s.Flag}
	}

	return CoachingUserResponse{
		ID:        user.ID.Hex(),
		Name:      user.Name,
		Email:     user.Email,
		Date:      user.Date,
		Time:      slots,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// parseObjectIDParam converts a path parameter to an ObjectID, aborting
// with 400 on malformed input.
func parseObjectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s format", name))
		return primitive.NilObjectID, false
	}
	return id, true
}

// parseObjectIDBody converts an ObjectID hex string from a request body,
// aborting with 400 on malformed input.
func parseObjectIDBody(c *gin.Context, hex, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s format", name))
		return primitive.NilObjectID, false
	}
	return id, true
}
