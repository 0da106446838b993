package api

import (
	"errors"
	"fmt"
	"net/http"

	"t3chadvance/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

// VideoHandler holds the video service dependency.
type VideoHandler struct {
	videoService service.VideoService
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(videoService service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// --- Request/Response Structs ---

type CreateVideoRequest struct {
	Title    string `json:"title" binding:"required"`
	Filename string `json:"filename" binding:"required"`
	Filepath string `json:"filepath" binding:"required"`
	URL      string `json:"url"`
	Mark     string `json:"mark"`
	Category string `json:"category"`
}

type UpdateVideoRequest struct {
	Title    *string `json:"title"`
	Filename *string `json:"filename"`
	Filepath *string `json:"filepath"`
	URL      *string `json:"url"`
	Mark     *string `json:"mark"`
	Category *string `json:"category"`
}

type UploadURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

type UploadURLResponse struct {
	ObjectKey string `json:"objectKey"`
	UploadURL string `json:"uploadUrl"`
}

type CreatePlaylistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type AddVideoToPlaylistRequest struct {
	VideoID string `json:"videoId" binding:"required"`
}

// --- Handler Methods ---

// CreateVideo registers a video record. The file itself is uploaded
// separately via a presigned URL.
func (h *VideoHandler) CreateVideo(c *gin.Context) {
	var req CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	video, err := h.videoService.CreateVideo(c.Request.Context(), req.Title, req.Filename, req.Filepath, req.URL, req.Mark, req.Category)
	if err != nil {
		if errors.Is(err, service.ErrVideoValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create video")
		}
		return
	}

	c.JSON(http.StatusCreated, video)
}

// GetVideos lists every video.
func (h *VideoHandler) GetVideos(c *gin.Context) {
	videos, err := h.videoService.GetVideos(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve videos")
		return
	}
	c.JSON(http.StatusOK, videos)
}

// GetVideoByID returns one video.
func (h *VideoHandler) GetVideoByID(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	video, err := h.videoService.GetVideoByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve video")
		}
		return
	}

	c.JSON(http.StatusOK, video)
}

// UpdateVideo applies a partial update to a video record.
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	video, err := h.videoService.UpdateVideo(c.Request.Context(), id, service.VideoUpdate{
		Title:    req.Title,
		Filename: req.Filename,
		Filepath: req.Filepath,
		URL:      req.URL,
		Mark:     req.Mark,
		Category: req.Category,
	})
	if err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update video")
		}
		return
	}

	c.JSON(http.StatusOK, video)
}

// DeleteVideo removes a video record and its stored file.
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	video, err := h.videoService.DeleteVideo(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete video")
		}
		return
	}

	c.JSON(http.StatusOK, video)
}

// RequestUploadURL issues a presigned PUT URL for a direct video upload.
func (h *VideoHandler) RequestUploadURL(c *gin.Context) {
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	objectKey, uploadURL, err := h.videoService.RequestUploadURL(c.Request.Context(), req.Filename, req.ContentType)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL")
		return
	}

	c.JSON(http.StatusOK, UploadURLResponse{ObjectKey: objectKey, UploadURL: uploadURL})
}

// CreatePlaylist creates an empty boot-camp playlist.
func (h *VideoHandler) CreatePlaylist(c *gin.Context) {
	var req CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	playlist, err := h.videoService.CreatePlaylist(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create playlist")
		return
	}

	c.JSON(http.StatusCreated, playlist)
}

// GetPlaylists lists every playlist.
func (h *VideoHandler) GetPlaylists(c *gin.Context) {
	playlists, err := h.videoService.GetPlaylists(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve playlists")
		return
	}
	c.JSON(http.StatusOK, playlists)
}

// GetPlaylistByID returns one playlist.
func (h *VideoHandler) GetPlaylistByID(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	playlist, err := h.videoService.GetPlaylistByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPlaylistNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve playlist")
		}
		return
	}

	c.JSON(http.StatusOK, playlist)
}

// DeletePlaylist removes a playlist. Videos themselves are unaffected.
func (h *VideoHandler) DeletePlaylist(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.videoService.DeletePlaylist(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrPlaylistNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete playlist")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Playlist deleted"})
}

// AddVideoToPlaylist appends a video to a playlist, ignoring duplicates.
func (h *VideoHandler) AddVideoToPlaylist(c *gin.Context) {
	playlistID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req AddVideoToPlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	videoID, ok := parseObjectIDBody(c, req.VideoID, "videoId")
	if !ok {
		return
	}

	playlist, err := h.videoService.AddVideoToPlaylist(c.Request.Context(), playlistID, videoID)
	if err != nil {
		if errors.Is(err, service.ErrPlaylistNotFound) || errors.Is(err, service.ErrVideoNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to add video to playlist")
		}
		return
	}

	c.JSON(http.StatusOK, playlist)
}
