package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"t3chadvance/coaching-app/internal/domain"
	"t3chadvance/coaching-app/internal/push"
	"t3chadvance/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrDeviceValidation     = errors.New("userId, username, email and fcmToken are required")
	ErrNotificationNotFound = errors.New("notification not found")
)

// SendOptions carries the optional content references attached to every
// history record of a fan-out.
type SendOptions struct {
	GroupID    *primitive.ObjectID
	ContentID  *primitive.ObjectID
	ContentURL string
}

// BatchResult summarizes one gateway batch call.
type BatchResult struct {
	Tokens       int    `json:"tokens"`
	SuccessCount int    `json:"successCount"`
	FailureCount int    `json:"failureCount"`
	Error        string `json:"error,omitempty"`
}

// SendResult is the aggregate outcome of one fan-out. Delivery problems
// never surface as Go errors; the caller decides what counts as failure.
type SendResult struct {
	Success   bool          `json:"success"`
	Message   string        `json:"message,omitempty"`
	Responses []BatchResult `json:"response,omitempty"`
}

// NotificationService registers devices and fans messages out to the fleet.
type NotificationService interface {
	SaveToken(ctx context.Context, userID, username, email, fcmToken string) (*domain.Device, error)
	SendCustomNotification(ctx context.Context, title, description string, opts SendOptions) (*SendResult, error)
	MarkAsRead(ctx context.Context, id primitive.ObjectID) (*domain.NotificationHistory, error)
	GetUnread(ctx context.Context, userID string) ([]domain.NotificationHistory, error)
	GetAll(ctx context.Context) ([]domain.NotificationHistory, error)
}

type notificationService struct {
	deviceRepo   repository.DeviceRepository
	historyRepo  repository.NotificationHistoryRepository
	gateway      push.Gateway
	chunkSize    int
	pruneInvalid bool
}

// NewNotificationService creates a new instance of notificationService.
// chunkSize is clamped to the gateway's per-call ceiling.
func NewNotificationService(
	deviceRepo repository.DeviceRepository,
	historyRepo repository.NotificationHistoryRepository,
	gateway push.Gateway,
	chunkSize int,
	pruneInvalid bool,
) NotificationService {
	if chunkSize <= 0 || chunkSize > push.MaxTokensPerCall {
		chunkSize = push.MaxTokensPerCall
	}
	return &notificationService{
		deviceRepo:   deviceRepo,
		historyRepo:  historyRepo,
		gateway:      gateway,
		chunkSize:    chunkSize,
		pruneInvalid: pruneInvalid,
	}
}

// SaveToken registers a device, deduplicating on the FCM token: a token
// seen before returns the existing registration untouched.
func (s *notificationService) SaveToken(ctx context.Context, userID, username, email, fcmToken string) (*domain.Device, error) {
	if userID == "" || username == "" || email == "" || fcmToken == "" {
		return nil, ErrDeviceValidation
	}

	existing, err := s.deviceRepo.GetByToken(ctx, fcmToken)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	device := &domain.Device{
		UserID:     userID,
		Username:   username,
		Email:      email,
		FCMToken:   fcmToken,
		LastActive: time.Now().UTC(),
	}

	id, err := s.deviceRepo.Create(ctx, device)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			// Raced with another registration of the same token.
			return s.deviceRepo.GetByToken(ctx, fcmToken)
		}
		return nil, err
	}
	device.ID = id
	return device, nil
}

// SendCustomNotification delivers one message to every registered device.
// Tokens are partitioned into fixed-size batches dispatched concurrently;
// a batch that fails at the gateway does not abort its siblings, and
// history already written for other batches stays written. One history
// record is created per token of every batch the gateway answered,
// whether or not that token's delivery succeeded.
func (s *notificationService) SendCustomNotification(ctx context.Context, title, description string, opts SendOptions) (*SendResult, error) {
	devices, err := s.deviceRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	tokens := make([]string, 0, len(devices))
	owners := make(map[string]string, len(devices))
	for _, d := range devices {
		if d.FCMToken == "" {
			continue
		}
		tokens = append(tokens, d.FCMToken)
		owners[d.FCMToken] = d.UserID
	}

	// An empty fleet is a normal condition, not an error.
	if len(tokens) == 0 {
		return &SendResult{Success: false, Message: "No devices found"}, nil
	}

	batches := chunkTokens(tokens, s.chunkSize)
	results := make([]BatchResult, len(batches))

	msg := push.Message{Title: title, Body: description}
	if opts.ContentURL != "" {
		msg.Data = map[string]string{"contentUrl": opts.ContentURL}
	}

	var wg sync.WaitGroup
	for i, batch := range batches {
		wg.Add(1)
		go func(i int, batch []string) {
			defer wg.Done()
			results[i] = s.dispatchBatch(ctx, batch, title, description, msg, opts, owners)
		}(i, batch)
	}
	wg.Wait()

	return &SendResult{Success: true, Responses: results}, nil
}

// dispatchBatch sends one batch and records its history. A gateway error
// marks only this batch; no history is written for it.
func (s *notificationService) dispatchBatch(
	ctx context.Context,
	batch []string,
	title, description string,
	msg push.Message,
	opts SendOptions,
	owners map[string]string,
) BatchResult {
	resp, err := s.gateway.SendMulticast(ctx, batch, msg)
	if err != nil {
		log.Printf("WARN: notification batch of %d tokens failed: %v", len(batch), err)
		return BatchResult{Tokens: len(batch), Error: err.Error()}
	}

	// Self-healing against stale tokens: registrations the gateway
	// rejected are dropped before history is written. Failures here must
	// not block delivery bookkeeping.
	if s.pruneInvalid {
		for _, token := range resp.FailedTokens() {
			if err := s.deviceRepo.DeleteByToken(ctx, token); err != nil && !errors.Is(err, repository.ErrNotFound) {
				log.Printf("WARN: failed to prune invalid token: %v", err)
			}
		}
	}

	for _, token := range batch {
		record := &domain.NotificationHistory{
			Title:       title,
			Description: description,
			FCMToken:    token,
			UserID:      owners[token],
			GroupID:     opts.GroupID,
			ContentID:   opts.ContentID,
			ContentURL:  opts.ContentURL,
			SentAt:      time.Now().UTC(),
		}
		if _, err := s.historyRepo.Create(ctx, record); err != nil {
			log.Printf("WARN: failed to write notification history: %v", err)
		}
	}

	return BatchResult{
		Tokens:       len(batch),
		SuccessCount: resp.SuccessCount,
		FailureCount: resp.FailureCount,
	}
}

// MarkAsRead flips a history record's read flag.
func (s *notificationService) MarkAsRead(ctx context.Context, id primitive.ObjectID) (*domain.NotificationHistory, error) {
	record, err := s.historyRepo.MarkRead(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return record, nil
}

// GetUnread returns a user's unread history records, newest first.
func (s *notificationService) GetUnread(ctx context.Context, userID string) ([]domain.NotificationHistory, error) {
	return s.historyRepo.GetUnreadByUserID(ctx, userID)
}

// GetAll returns every history record, newest first.
func (s *notificationService) GetAll(ctx context.Context) ([]domain.NotificationHistory, error) {
	return s.historyRepo.GetAll(ctx)
}

// chunkTokens partitions tokens into contiguous slices of at most size.
func chunkTokens(tokens []string, size int) [][]string {
	var batches [][]string
	for start := 0; start < len(tokens); start += size {
		end := start + size
		if end > len(tokens) {
			end = len(tokens)
		}
		batches = append(batches, tokens[start:end])
	}
	return batches
}
