package repository

import (
	"context"

	"t3chadvance/coaching-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicateKey = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// CoachingRepository defines the interface for coaching booking data.
type CoachingRepository interface {
	Create(ctx context.Context, user *domain.CoachingUser) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.CoachingUser, error)
	GetAll(ctx context.Context) ([]domain.CoachingUser, error)
	Search(ctx context.Context, query domain.CoachingQuery) ([]domain.CoachingUser, error)
	// Update persists the full mutable state of the booking (read-modify-write;
	// last write wins, no optimistic concurrency check).
	Update(ctx context.Context, user *domain.CoachingUser) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.Status) (int64, error)
}

// DeviceRepository defines the interface for push device registrations.
type DeviceRepository interface {
	Create(ctx context.Context, device *domain.Device) (primitive.ObjectID, error)
	GetByToken(ctx context.Context, fcmToken string) (*domain.Device, error)
	GetAll(ctx context.Context) ([]domain.Device, error)
	DeleteByToken(ctx context.Context, fcmToken string) error
}

// NotificationHistoryRepository defines the interface for delivery history.
type NotificationHistoryRepository interface {
	Create(ctx context.Context, record *domain.NotificationHistory) (primitive.ObjectID, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) (*domain.NotificationHistory, error)
	GetUnreadByUserID(ctx context.Context, userID string) ([]domain.NotificationHistory, error)
	GetAll(ctx context.Context) ([]domain.NotificationHistory, error)
}

// UserRepository defines the interface for platform accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// QuizRepository defines the interface for discover-strength quizzes.
type QuizRepository interface {
	Create(ctx context.Context, quiz *domain.Quiz) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Quiz, error)
	GetAll(ctx context.Context) ([]domain.Quiz, error)
	Update(ctx context.Context, quiz *domain.Quiz) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// VideoRepository defines the interface for instructional videos.
type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error)
	GetAll(ctx context.Context) ([]domain.Video, error)
	Update(ctx context.Context, video *domain.Video) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PlaylistRepository defines the interface for boot-camp playlists.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *domain.Playlist) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Playlist, error)
	GetAll(ctx context.Context) ([]domain.Playlist, error)
	Update(ctx context.Context, playlist *domain.Playlist) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddVideo(ctx context.Context, playlistID, videoID primitive.ObjectID) error
}

// SuccessPathRepository defines the interface for success-path categories.
// Question mutations are read-modify-write on the parent category document.
type SuccessPathRepository interface {
	Create(ctx context.Context, category *domain.SuccessPathCategory) (primitive.ObjectID, error)
	GetByCategory(ctx context.Context, name string) (*domain.SuccessPathCategory, error)
	GetAll(ctx context.Context) ([]domain.SuccessPathCategory, error)
	Update(ctx context.Context, category *domain.SuccessPathCategory) error
}

// BusinessPlanRepository defines the interface for business-plan responses.
type BusinessPlanRepository interface {
	// Upsert replaces the user's response document, creating it on first save.
	Upsert(ctx context.Context, response *domain.BusinessPlanResponse) error
	GetByUserID(ctx context.Context, userID string) (*domain.BusinessPlanResponse, error)
}
