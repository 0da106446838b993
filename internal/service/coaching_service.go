package service

import (
	"context"
	"errors"
	"time"

	"t3chadvance/coaching-app/internal/domain"
	"t3chadvance/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrCoachingUserNotFound = errors.New("coaching user not found")
	ErrSlotNotFound         = errors.New("slot not found")
	ErrInvalidSlotAction    = errors.New("slot action must be APPROVED or DENIED")
	ErrCoachingUserExists   = errors.New("coaching user with this email already exists")
	ErrCoachingValidation   = errors.New("coaching user validation failed")
)

// CoachingStats aggregates booking counts by outcome.
type CoachingStats struct {
	Total    int64 `json:"total"`
	Approved int64 `json:"approved"`
	Denied   int64 `json:"denied"`
}

// CoachingUserUpdate carries the optional fields of a generic booking
// update. Nil pointers / nil slice mean "leave unchanged".
type CoachingUserUpdate struct {
	Name  *string
	Email *string
	Date  *time.Time
	Time  []domain.TimeSlot
}

// CoachingService manages coaching bookings and the per-slot approval
// workflow.
type CoachingService interface {
	CreateBooking(ctx context.Context, name, email string, date time.Time, ranges []string) (*domain.CoachingUser, error)
	GetAll(ctx context.Context) ([]domain.CoachingUser, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.CoachingUser, error)
	Search(ctx context.Context, query domain.CoachingQuery) ([]domain.CoachingUser, error)
	UpdateBooking(ctx context.Context, id primitive.ObjectID, update CoachingUserUpdate) (*domain.CoachingUser, error)
	DeleteBooking(ctx context.Context, id primitive.ObjectID) (*domain.CoachingUser, error)
	UpdateSlotStatus(ctx context.Context, id primitive.ObjectID, rangeLabel string, action domain.Status) (*domain.CoachingUser, error)
	Stats(ctx context.Context) (*CoachingStats, error)
}

type coachingService struct {
	coachingRepo repository.CoachingRepository
}

// NewCoachingService creates a new instance of coachingService.
func NewCoachingService(coachingRepo repository.CoachingRepository) CoachingService {
	return &coachingService{coachingRepo: coachingRepo}
}

// CreateBooking registers a new booking. Every slot starts unapproved and
// the aggregate status starts PENDING regardless of the request payload.
func (s *coachingService) CreateBooking(ctx context.Context, name, email string, date time.Time, ranges []string) (*domain.CoachingUser, error) {
	if name == "" || email == "" || len(ranges) == 0 {
		return nil, ErrCoachingValidation
	}

	slots := make([]domain.TimeSlot, len(ranges))
	for i, r := range ranges {
		slots[i] = domain.TimeSlot{Range: r, Flag: false}
	}

	user := &domain.CoachingUser{
		Name:   name,
		Email:  email,
		Date:   date,
		Time:   slots,
		Status: domain.StatusPending,
	}

	id, err := s.coachingRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrCoachingUserExists
		}
		return nil, err
	}
	user.ID = id
	return user, nil
}

// GetAll returns every booking.
func (s *coachingService) GetAll(ctx context.Context) ([]domain.CoachingUser, error) {
	return s.coachingRepo.GetAll(ctx)
}

// GetByID returns a single booking.
func (s *coachingService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.CoachingUser, error) {
	user, err := s.coachingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCoachingUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Search executes an already-resolved query intent.
func (s *coachingService) Search(ctx context.Context, query domain.CoachingQuery) ([]domain.CoachingUser, error) {
	return s.coachingRepo.Search(ctx, query)
}

// UpdateBooking applies a partial field update and returns the new state.
func (s *coachingService) UpdateBooking(ctx context.Context, id primitive.ObjectID, update CoachingUserUpdate) (*domain.CoachingUser, error) {
	user, err := s.coachingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCoachingUserNotFound
		}
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Date != nil {
		user.Date = *update.Date
	}
	if update.Time != nil {
		user.Time = update.Time
	}

	if err := s.coachingRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCoachingUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// DeleteBooking removes a booking and returns its final state.
func (s *coachingService) DeleteBooking(ctx context.Context, id primitive.ObjectID) (*domain.CoachingUser, error) {
	user, err := s.coachingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCoachingUserNotFound
		}
		return nil, err
	}

	if err := s.coachingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCoachingUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateSlotStatus approves or denies one slot of a booking. The slot is
// matched against the stored range label ignoring whitespace and case.
// The aggregate status is overwritten with the action unconditionally:
// approving any single slot marks the whole booking APPROVED even when
// other slots remain unflagged. Last action wins; this mirrors the
// original product behavior and is intentional.
func (s *coachingService) UpdateSlotStatus(ctx context.Context, id primitive.ObjectID, rangeLabel string, action domain.Status) (*domain.CoachingUser, error) {
	if !action.IsAction() {
		return nil, ErrInvalidSlotAction
	}

	user, err := s.coachingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCoachingUserNotFound
		}
		return nil, err
	}

	slot := user.SlotByRange(rangeLabel)
	if slot == nil {
		return nil, ErrSlotNotFound
	}

	slot.Flag = action == domain.StatusApproved
	user.Status = action

	if err := s.coachingRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCoachingUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Stats returns total/approved/denied booking counts.
func (s *coachingService) Stats(ctx context.Context) (*CoachingStats, error) {
	total, err := s.coachingRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	approved, err := s.coachingRepo.CountByStatus(ctx, domain.StatusApproved)
	if err != nil {
		return nil, err
	}
	denied, err := s.coachingRepo.CountByStatus(ctx, domain.StatusDenied)
	if err != nil {
		return nil, err
	}
	return &CoachingStats{Total: total, Approved: approved, Denied: denied}, nil
}
