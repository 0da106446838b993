package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"t3chadvance/coaching-app/internal/domain"
	"t3chadvance/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeCoachingService returns canned results; the handler tests only
// exercise binding, status mapping and DTO shaping.
type fakeCoachingService struct {
	user *domain.CoachingUser
	err  error
}

func (f *fakeCoachingService) CreateBooking(ctx context.Context, name, email string, date time.Time, ranges []string) (*domain.CoachingUser, error) {
	return f.user, f.err
}

func (f *fakeCoachingService) GetAll(ctx context.Context) ([]domain.CoachingUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []domain.CoachingUser{*f.user}, nil
}

func (f *fakeCoachingService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.CoachingUser, error) {
	return f.user, f.err
}

func (f *fakeCoachingService) Search(ctx context.Context, query domain.CoachingQuery) ([]domain.CoachingUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []domain.CoachingUser{*f.user}, nil
}

func (f *fakeCoachingService) UpdateBooking(ctx context.Context, id primitive.ObjectID, update service.CoachingUserUpdate) (*domain.CoachingUser, error) {
	return f.user, f.err
}

func (f *fakeCoachingService) DeleteBooking(ctx context.Context, id primitive.ObjectID) (*domain.CoachingUser, error) {
	return f.user, f.err
}

func (f *fakeCoachingService) UpdateSlotStatus(ctx context.Context, id primitive.ObjectID, rangeLabel string, action domain.Status) (*domain.CoachingUser, error) {
	return f.user, f.err
}

func (f *fakeCoachingService) Stats(ctx context.Context) (*service.CoachingStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &service.CoachingStats{Total: 1}, nil
}

func newCoachingRouter(svc service.CoachingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewCoachingHandler(svc)
	router.POST("/coaching", handler.CreateBooking)
	router.GET("/coaching/search", handler.SearchBookings)
	router.PUT("/coaching/status/:id", handler.UpdateSlotStatus)
	return router
}

func sampleCoachingUser() *domain.CoachingUser {
	return &domain.CoachingUser{
		ID:     primitive.NewObjectID(),
		Name:   "Alice",
		Email:  "alice@example.com",
		Date:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Time:   []domain.TimeSlot{{Range: "9:00 AM - 10:00 AM", Flag: true}},
		Status: domain.StatusApproved,
	}
}

func TestCreateBookingHandler(t *testing.T) {
	router := newCoachingRouter(&fakeCoachingService{user: sampleCoachingUser()})

	body := map[string]interface{}{
		"name":  "Alice",
		"email": "alice@example.com",
		"date":  "2025-06-01",
		"time":  []string{"9:00 AM - 10:00 AM"},
	}
	payload, _ := json.Marshal(body)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/coaching", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp CoachingUserResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Alice", resp.Name)
	assert.Len(t, resp.Time, 1)
}

func TestCreateBookingHandlerBadPayload(t *testing.T) {
	router := newCoachingRouter(&fakeCoachingService{user: sampleCoachingUser()})

	tests := []struct {
		name string
		body string
	}{
		{"missing fields", `{"name":"Alice"}`},
		{"bad date", `{"name":"Alice","email":"a@b.com","date":"June 1st","time":["x"]}`},
		{"empty slots", `{"name":"Alice","email":"a@b.com","date":"2025-06-01","time":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/coaching", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestUpdateSlotStatusHandler(t *testing.T) {
	user := sampleCoachingUser()

	tests := []struct {
		name     string
		id       string
		body     string
		svcErr   error
		wantCode int
	}{
		{
			name:     "ok",
			id:       user.ID.Hex(),
			body:     `{"range":"9:00 AM - 10:00 AM","action":"APPROVED"}`,
			wantCode: http.StatusOK,
		},
		{
			name:     "malformed id",
			id:       "not-an-id",
			body:     `{"range":"9:00 AM - 10:00 AM","action":"APPROVED"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing range",
			id:       user.ID.Hex(),
			body:     `{"action":"APPROVED"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "invalid action",
			id:       user.ID.Hex(),
			body:     `{"range":"9:00 AM - 10:00 AM","action":"MAYBE"}`,
			svcErr:   service.ErrInvalidSlotAction,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown user",
			id:       primitive.NewObjectID().Hex(),
			body:     `{"range":"9:00 AM - 10:00 AM","action":"APPROVED"}`,
			svcErr:   service.ErrCoachingUserNotFound,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "unknown slot",
			id:       user.ID.Hex(),
			body:     `{"range":"5:00 PM - 6:00 PM","action":"APPROVED"}`,
			svcErr:   service.ErrSlotNotFound,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCoachingService{user: user, err: tt.svcErr}
			router := newCoachingRouter(fake)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/coaching/status/"+tt.id, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestSearchBookingsHandler(t *testing.T) {
	router := newCoachingRouter(&fakeCoachingService{user: sampleCoachingUser()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/coaching/search?q=APPROVED", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []CoachingUserResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
}

func TestSearchBookingsHandlerMissingQuery(t *testing.T) {
	router := newCoachingRouter(&fakeCoachingService{user: sampleCoachingUser()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/coaching/search", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
