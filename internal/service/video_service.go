package service

import (
	"context"
	"errors"
	"fmt"
	"path"

	"t3chadvance/coaching-app/internal/domain"
	"t3chadvance/coaching-app/internal/repository"
	"t3chadvance/coaching-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrVideoNotFound    = errors.New("video not found")
	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrVideoValidation  = errors.New("video validation failed")
)

// VideoUpdate carries the optional fields of a video update.
type VideoUpdate struct {
	Title    *string
	Filename *string
	Filepath *string
	URL      *string
	Mark     *string
	Category *string
}

// VideoService manages the instructional video library and boot-camp
// playlists. Video files live in object storage; uploads go directly from
// the client via presigned URLs.
type VideoService interface {
	CreateVideo(ctx context.Context, title, filename, filepath, url, mark, category string) (*domain.Video, error)
	GetVideos(ctx context.Context) ([]domain.Video, error)
	GetVideoByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error)
	UpdateVideo(ctx context.Context, id primitive.ObjectID, update VideoUpdate) (*domain.Video, error)
	DeleteVideo(ctx context.Context, id primitive.ObjectID) (*domain.Video, error)
	RequestUploadURL(ctx context.Context, filename, contentType string) (objectKey, uploadURL string, err error)

	CreatePlaylist(ctx context.Context, name, description string) (*domain.Playlist, error)
	GetPlaylists(ctx context.Context) ([]domain.Playlist, error)
	GetPlaylistByID(ctx context.Context, id primitive.ObjectID) (*domain.Playlist, error)
	DeletePlaylist(ctx context.Context, id primitive.ObjectID) error
	AddVideoToPlaylist(ctx context.Context, playlistID, videoID primitive.ObjectID) (*domain.Playlist, error)
}

type videoService struct {
	videoRepo    repository.VideoRepository
	playlistRepo repository.PlaylistRepository
	fileStorage  storage.FileStorage
}

// NewVideoService creates a new instance of videoService.
func NewVideoService(
	videoRepo repository.VideoRepository,
	playlistRepo repository.PlaylistRepository,
	fileStorage storage.FileStorage,
) VideoService {
	return &videoService{
		videoRepo:    videoRepo,
		playlistRepo: playlistRepo,
		fileStorage:  fileStorage,
	}
}

// CreateVideo registers a video's metadata. The file itself is expected to
// already be in object storage (see RequestUploadURL).
func (s *videoService) CreateVideo(ctx context.Context, title, filename, filepath, url, mark, category string) (*domain.Video, error) {
	if title == "" {
		return nil, ErrVideoValidation
	}

	video := &domain.Video{
		Title:    title,
		Filename: filename,
		Filepath: filepath,
		URL:      url,
		Mark:     mark,
		Category: category,
	}
	id, err := s.videoRepo.Create(ctx, video)
	if err != nil {
		return nil, err
	}
	video.ID = id
	return video, nil
}

// GetVideos returns the whole library.
func (s *videoService) GetVideos(ctx context.Context) ([]domain.Video, error) {
	return s.videoRepo.GetAll(ctx)
}

// GetVideoByID returns a single video. A video stored without a public
// URL gets a short-lived presigned download link instead.
func (s *videoService) GetVideoByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if video.URL == "" && video.Filepath != "" {
		downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, video.Filepath, storage.DefaultPresignedURLExpiry)
		if err != nil {
			return nil, err
		}
		video.URL = downloadURL
	}
	return video, nil
}

// UpdateVideo applies a partial metadata update.
func (s *videoService) UpdateVideo(ctx context.Context, id primitive.ObjectID, update VideoUpdate) (*domain.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if update.Title != nil {
		video.Title = *update.Title
	}
	if update.Filename != nil {
		video.Filename = *update.Filename
	}
	if update.Filepath != nil {
		video.Filepath = *update.Filepath
	}
	if update.URL != nil {
		video.URL = *update.URL
	}
	if update.Mark != nil {
		video.Mark = *update.Mark
	}
	if update.Category != nil {
		video.Category = *update.Category
	}

	if err := s.videoRepo.Update(ctx, video); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return video, nil
}

// DeleteVideo removes the metadata and, when the video has an object key,
// the stored file. A storage delete failure does not resurrect the record.
func (s *videoService) DeleteVideo(ctx context.Context, id primitive.ObjectID) (*domain.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if err := s.videoRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if video.Filepath != "" {
		_ = s.fileStorage.DeleteObject(ctx, video.Filepath)
	}
	return video, nil
}

// RequestUploadURL issues a presigned PUT URL for a new video file. The
// object key namespaces uploads by a fresh UUID to avoid collisions.
func (s *videoService) RequestUploadURL(ctx context.Context, filename, contentType string) (string, string, error) {
	if filename == "" || contentType == "" {
		return "", "", ErrVideoValidation
	}

	objectKey := fmt.Sprintf("videos/%s%s", uuid.NewString(), path.Ext(filename))
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", "", err
	}
	return objectKey, uploadURL, nil
}

// CreatePlaylist adds an empty playlist.
func (s *videoService) CreatePlaylist(ctx context.Context, name, description string) (*domain.Playlist, error) {
	if name == "" {
		return nil, ErrVideoValidation
	}

	playlist := &domain.Playlist{Name: name, Description: description}
	id, err := s.playlistRepo.Create(ctx, playlist)
	if err != nil {
		return nil, err
	}
	playlist.ID = id
	return playlist, nil
}

// GetPlaylists returns all playlists.
func (s *videoService) GetPlaylists(ctx context.Context) ([]domain.Playlist, error) {
	return s.playlistRepo.GetAll(ctx)
}

// GetPlaylistByID returns a single playlist.
func (s *videoService) GetPlaylistByID(ctx context.Context, id primitive.ObjectID) (*domain.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}
	return playlist, nil
}

// DeletePlaylist removes a playlist. Videos referenced by it are untouched.
func (s *videoService) DeletePlaylist(ctx context.Context, id primitive.ObjectID) error {
	if err := s.playlistRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlaylistNotFound
		}
		return err
	}
	return nil
}

// AddVideoToPlaylist appends an existing video to a playlist and returns
// the updated playlist.
func (s *videoService) AddVideoToPlaylist(ctx context.Context, playlistID, videoID primitive.ObjectID) (*domain.Playlist, error) {
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if err := s.playlistRepo.AddVideo(ctx, playlistID, videoID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}

	return s.playlistRepo.GetByID(ctx, playlistID)
}
