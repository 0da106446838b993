package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"t3chadvance/coaching-app/internal/domain"
	"t3chadvance/coaching-app/internal/push"
	"t3chadvance/coaching-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeDeviceRepo is an in-memory DeviceRepository keyed by FCM token.
type fakeDeviceRepo struct {
	mu      sync.Mutex
	devices map[string]*domain.Device
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{devices: make(map[string]*domain.Device)}
}

func (r *fakeDeviceRepo) Create(ctx context.Context, device *domain.Device) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.devices[device.FCMToken]; ok {
		return primitive.NilObjectID, repository.ErrDuplicateKey
	}
	id := primitive.NewObjectID()
	copied := *device
	copied.ID = id
	r.devices[device.FCMToken] = &copied
	return id, nil
}

func (r *fakeDeviceRepo) GetByToken(ctx context.Context, token string) (*domain.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	device, ok := r.devices[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *device
	return &copied, nil
}

func (r *fakeDeviceRepo) GetAll(ctx context.Context) ([]domain.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var devices []domain.Device
	for _, d := range r.devices {
		devices = append(devices, *d)
	}
	return devices, nil
}

func (r *fakeDeviceRepo) DeleteByToken(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.devices[token]; !ok {
		return repository.ErrNotFound
	}
	delete(r.devices, token)
	return nil
}

// fakeHistoryRepo is an in-memory NotificationHistoryRepository. Batches
// write concurrently, so every method takes the lock.
type fakeHistoryRepo struct {
	mu      sync.Mutex
	records []domain.NotificationHistory
}

func (r *fakeHistoryRepo) Create(ctx context.Context, record *domain.NotificationHistory) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	copied := *record
	copied.ID = id
	r.records = append(r.records, copied)
	return id, nil
}

func (r *fakeHistoryRepo) MarkRead(ctx context.Context, id primitive.ObjectID) (*domain.NotificationHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == id {
			r.records[i].Read = true
			copied := r.records[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeHistoryRepo) GetUnreadByUserID(ctx context.Context, userID string) ([]domain.NotificationHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var unread []domain.NotificationHistory
	for _, rec := range r.records {
		if rec.UserID == userID && !rec.Read {
			unread = append(unread, rec)
		}
	}
	return unread, nil
}

func (r *fakeHistoryRepo) GetAll(ctx context.Context) ([]domain.NotificationHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.NotificationHistory(nil), r.records...), nil
}

func (r *fakeHistoryRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// fakeGateway records batch sizes and can fail whole batches or single
// tokens on demand.
type fakeGateway struct {
	mu         sync.Mutex
	batchSizes []int
	failBatch  map[int]bool    // batch ordinal (arrival order) -> whole-call error
	failTokens map[string]bool // per-token rejection
	calls      int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{failBatch: make(map[int]bool), failTokens: make(map[string]bool)}
}

func (g *fakeGateway) SendMulticast(ctx context.Context, tokens []string, msg push.Message) (*push.BatchResponse, error) {
	g.mu.Lock()
	ordinal := g.calls
	g.calls++
	g.batchSizes = append(g.batchSizes, len(tokens))
	g.mu.Unlock()

	if g.failBatch[ordinal] {
		return nil, errors.New("gateway unavailable")
	}

	resp := &push.BatchResponse{Results: make([]push.TokenResult, len(tokens))}
	for i, token := range tokens {
		if g.failTokens[token] {
			resp.Results[i] = push.TokenResult{Token: token, Error: "unregistered"}
			resp.FailureCount++
		} else {
			resp.Results[i] = push.TokenResult{Token: token, Success: true}
			resp.SuccessCount++
		}
	}
	return resp, nil
}

func registerDevices(t *testing.T, svc NotificationService, n int) []string {
	t.Helper()
	tokens := make([]string, n)
	for i := 0; i < n; i++ {
		tokens[i] = fmt.Sprintf("token-%d", i)
		_, err := svc.SaveToken(context.Background(), fmt.Sprintf("user-%d", i), fmt.Sprintf("User %d", i), fmt.Sprintf("u%d@example.com", i), tokens[i])
		assert.NoError(t, err)
	}
	return tokens
}

func TestSaveTokenDedupe(t *testing.T) {
	devices := newFakeDeviceRepo()
	svc := NewNotificationService(devices, &fakeHistoryRepo{}, newFakeGateway(), 500, false)

	first, err := svc.SaveToken(context.Background(), "u1", "User One", "u1@example.com", "tok")
	assert.NoError(t, err)

	// Same token again, even from different user data, returns the
	// existing registration.
	second, err := svc.SaveToken(context.Background(), "u2", "User Two", "u2@example.com", "tok")
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "u1", second.UserID)

	all, err := devices.GetAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSaveTokenValidation(t *testing.T) {
	svc := NewNotificationService(newFakeDeviceRepo(), &fakeHistoryRepo{}, newFakeGateway(), 500, false)

	_, err := svc.SaveToken(context.Background(), "", "name", "a@b.com", "tok")
	assert.ErrorIs(t, err, ErrDeviceValidation)

	_, err = svc.SaveToken(context.Background(), "u1", "name", "a@b.com", "")
	assert.ErrorIs(t, err, ErrDeviceValidation)
}

func TestSendWithNoDevices(t *testing.T) {
	history := &fakeHistoryRepo{}
	svc := NewNotificationService(newFakeDeviceRepo(), history, newFakeGateway(), 500, false)

	result, err := svc.SendCustomNotification(context.Background(), "Hello", "World", SendOptions{})
	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "No devices found", result.Message)
	assert.Empty(t, result.Responses)
	assert.Zero(t, history.count())
}

func TestSendChunksFleetIntoBatches(t *testing.T) {
	history := &fakeHistoryRepo{}
	gateway := newFakeGateway()
	svc := NewNotificationService(newFakeDeviceRepo(), history, gateway, 2, false)

	registerDevices(t, svc, 5)

	result, err := svc.SendCustomNotification(context.Background(), "Hello", "World", SendOptions{})
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Len(t, result.Responses, 3)

	// 5 tokens with chunk size 2 -> batches of 2, 2 and 1 in some
	// dispatch order.
	assert.ElementsMatch(t, []int{2, 2, 1}, gateway.batchSizes)

	// One history row per token across all batches.
	assert.Equal(t, 5, history.count())

	var successTotal int
	for _, batch := range result.Responses {
		assert.Empty(t, batch.Error)
		successTotal += batch.SuccessCount
	}
	assert.Equal(t, 5, successTotal)
}

func TestSendBatchFailureIsIsolated(t *testing.T) {
	history := &fakeHistoryRepo{}
	gateway := newFakeGateway()
	gateway.failBatch[0] = true // first batch call to arrive fails wholesale
	svc := NewNotificationService(newFakeDeviceRepo(), history, gateway, 2, false)

	registerDevices(t, svc, 4)

	result, err := svc.SendCustomNotification(context.Background(), "Hello", "World", SendOptions{})
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Len(t, result.Responses, 2)

	var failed, ok int
	for _, batch := range result.Responses {
		if batch.Error != "" {
			failed++
			assert.Zero(t, batch.SuccessCount)
		} else {
			ok++
			assert.Equal(t, 2, batch.SuccessCount)
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, ok)

	// History exists only for the batch the gateway answered.
	assert.Equal(t, 2, history.count())
}

func TestSendRecordsHistoryForFailedTokens(t *testing.T) {
	history := &fakeHistoryRepo{}
	gateway := newFakeGateway()
	gateway.failTokens["token-1"] = true
	svc := NewNotificationService(newFakeDeviceRepo(), history, gateway, 500, false)

	registerDevices(t, svc, 3)

	result, err := svc.SendCustomNotification(context.Background(), "Hello", "World", SendOptions{})
	assert.NoError(t, err)
	assert.True(t, result.Success)
	if assert.Len(t, result.Responses, 1) {
		assert.Equal(t, 2, result.Responses[0].SuccessCount)
		assert.Equal(t, 1, result.Responses[0].FailureCount)
	}

	// Attempted sends are recorded, delivered or not.
	assert.Equal(t, 3, history.count())
}

func TestSendPrunesInvalidTokens(t *testing.T) {
	devices := newFakeDeviceRepo()
	gateway := newFakeGateway()
	gateway.failTokens["token-1"] = true
	svc := NewNotificationService(devices, &fakeHistoryRepo{}, gateway, 500, true)

	registerDevices(t, svc, 3)

	_, err := svc.SendCustomNotification(context.Background(), "Hello", "World", SendOptions{})
	assert.NoError(t, err)

	_, err = devices.GetByToken(context.Background(), "token-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	remaining, err := devices.GetAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, remaining, 2)
}

func TestSendWithoutPruningKeepsInvalidTokens(t *testing.T) {
	devices := newFakeDeviceRepo()
	gateway := newFakeGateway()
	gateway.failTokens["token-1"] = true
	svc := NewNotificationService(devices, &fakeHistoryRepo{}, gateway, 500, false)

	registerDevices(t, svc, 3)

	_, err := svc.SendCustomNotification(context.Background(), "Hello", "World", SendOptions{})
	assert.NoError(t, err)

	remaining, err := devices.GetAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, remaining, 3)
}

func TestSendCarriesContentReferences(t *testing.T) {
	history := &fakeHistoryRepo{}
	svc := NewNotificationService(newFakeDeviceRepo(), history, newFakeGateway(), 500, false)

	registerDevices(t, svc, 1)

	groupID := primitive.NewObjectID()
	contentID := primitive.NewObjectID()
	_, err := svc.SendCustomNotification(context.Background(), "Hello", "World", SendOptions{
		GroupID:    &groupID,
		ContentID:  &contentID,
		ContentURL: "https://example.com/v/1",
	})
	assert.NoError(t, err)

	records, err := history.GetAll(context.Background())
	assert.NoError(t, err)
	if assert.Len(t, records, 1) {
		rec := records[0]
		assert.Equal(t, "Hello", rec.Title)
		assert.Equal(t, "World", rec.Description)
		assert.Equal(t, &groupID, rec.GroupID)
		assert.Equal(t, &contentID, rec.ContentID)
		assert.Equal(t, "https://example.com/v/1", rec.ContentURL)
		assert.Equal(t, "user-0", rec.UserID)
		assert.False(t, rec.Read)
	}
}

func TestMarkAsReadAndUnread(t *testing.T) {
	history := &fakeHistoryRepo{}
	svc := NewNotificationService(newFakeDeviceRepo(), history, newFakeGateway(), 500, false)

	registerDevices(t, svc, 2)
	_, err := svc.SendCustomNotification(context.Background(), "Hello", "World", SendOptions{})
	assert.NoError(t, err)

	unread, err := svc.GetUnread(context.Background(), "user-0")
	assert.NoError(t, err)
	if !assert.Len(t, unread, 1) {
		return
	}

	marked, err := svc.MarkAsRead(context.Background(), unread[0].ID)
	assert.NoError(t, err)
	assert.True(t, marked.Read)

	unread, err = svc.GetUnread(context.Background(), "user-0")
	assert.NoError(t, err)
	assert.Empty(t, unread)

	// The other user's record is untouched.
	otherUnread, err := svc.GetUnread(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Len(t, otherUnread, 1)
}

func TestMarkAsReadUnknownID(t *testing.T) {
	svc := NewNotificationService(newFakeDeviceRepo(), &fakeHistoryRepo{}, newFakeGateway(), 500, false)

	_, err := svc.MarkAsRead(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestChunkSizeClampedToGatewayCeiling(t *testing.T) {
	gateway := newFakeGateway()
	svc := NewNotificationService(newFakeDeviceRepo(), &fakeHistoryRepo{}, gateway, push.MaxTokensPerCall*3, false)

	registerDevices(t, svc, 3)

	_, err := svc.SendCustomNotification(context.Background(), "Hello", "World", SendOptions{})
	assert.NoError(t, err)
	for _, size := range gateway.batchSizes {
		assert.LessOrEqual(t, size, push.MaxTokensPerCall)
	}
}

func TestChunkTokens(t *testing.T) {
	tests := []struct {
		name   string
		tokens int
		size   int
		want   []int
	}{
		{"exact multiple", 4, 2, []int{2, 2}},
		{"remainder", 5, 2, []int{2, 2, 1}},
		{"single batch", 3, 10, []int{3}},
		{"empty", 0, 2, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := make([]string, tt.tokens)
			for i := range tokens {
				tokens[i] = fmt.Sprintf("t%d", i)
			}
			batches := chunkTokens(tokens, tt.size)
			var sizes []int
			for _, b := range batches {
				sizes = append(sizes, len(b))
			}
			assert.Equal(t, tt.want, sizes)
		})
	}
}
