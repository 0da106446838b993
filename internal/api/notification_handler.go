package api

import (
	"errors"
	"fmt"
	"net/http"

	"t3chadvance/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationHandler holds the notification service dependency.
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// --- Request/Response Structs ---

type SaveTokenRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	FCMToken string `json:"fcmToken" binding:"required"`
}

type SendNotificationRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	GroupID     string `json:"groupId"`
	ContentID   string `json:"contentId"`
	ContentURL  string `json:"contentUrl"`
}

// --- Handler Methods ---

// SaveToken registers (or refreshes) a device push token.
func (h *NotificationHandler) SaveToken(c *gin.Context) {
	var req SaveTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	device, err := h.notificationService.SaveToken(c.Request.Context(), req.UserID, req.Username, req.Email, req.FCMToken)
	if err != nil {
		if errors.Is(err, service.ErrDeviceValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save device token")
		}
		return
	}

	c.JSON(http.StatusOK, device)
}

// SendNotification fans a message out to every registered device.
// Delivery problems are reported in the body, never as an HTTP error.
func (h *NotificationHandler) SendNotification(c *gin.Context) {
	var req SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	opts := service.SendOptions{ContentURL: req.ContentURL}
	if req.GroupID != "" {
		groupID, err := primitive.ObjectIDFromHex(req.GroupID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid groupId format")
			return
		}
		opts.GroupID = &groupID
	}
	if req.ContentID != "" {
		contentID, err := primitive.ObjectIDFromHex(req.ContentID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid contentId format")
			return
		}
		opts.ContentID = &contentID
	}

	result, err := h.notificationService.SendCustomNotification(c.Request.Context(), req.Title, req.Description, opts)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to send notification")
		return
	}

	c.JSON(http.StatusOK, result)
}

// MarkAsRead flips one history record's read flag.
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	history, err := h.notificationService.MarkAsRead(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to mark notification as read")
		}
		return
	}

	c.JSON(http.StatusOK, history)
}

// GetUnread lists a user's unread notifications, newest first.
func (h *NotificationHandler) GetUnread(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		abortWithError(c, http.StatusBadRequest, "userId is required")
		return
	}

	histories, err := h.notificationService.GetUnread(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve unread notifications")
		return
	}

	c.JSON(http.StatusOK, histories)
}

// GetAll lists every history record, newest first.
func (h *NotificationHandler) GetAll(c *gin.Context) {
	histories, err := h.notificationService.GetAll(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve notifications")
		return
	}

	c.JSON(http.StatusOK, histories)
}
