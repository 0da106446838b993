package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the overall approval state of a coaching booking.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusDenied   Status = "DENIED"
)

// IsAction reports whether the status is a valid slot action.
// PENDING is the creation state only; it can never be applied to a slot.
func (s Status) IsAction() bool {
	return s == StatusApproved || s == StatusDenied
}

// TimeSlot is a named time interval on a booking with an approval flag.
// Slots are embedded documents; they have no identity of their own beyond
// their range label.
type TimeSlot struct {
	Range string `bson:"range" json:"range"`
	Flag  bool   `bson:"flag" json:"flag"`
}

// CoachingUser represents one coaching booking submission.
// Status mirrors the most recent slot action ("last action wins") rather
// than aggregating the individual slot flags.
type CoachingUser struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"` // unique
	Date      time.Time          `bson:"date" json:"date"`
	Time      []TimeSlot         `bson:"time" json:"time"`
	Status    Status             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SlotByRange returns a pointer to the slot whose range matches label,
// ignoring surrounding whitespace and letter case, or nil if none matches.
func (u *CoachingUser) SlotByRange(label string) *TimeSlot {
	want := strings.TrimSpace(label)
	for i := range u.Time {
		if strings.EqualFold(strings.TrimSpace(u.Time[i].Range), want) {
			return &u.Time[i]
		}
	}
	return nil
}

// CoachingQueryKind tags the intent of a coaching search.
type CoachingQueryKind int

const (
	QueryByStatus CoachingQueryKind = iota
	QueryByNameContains
)

// CoachingQuery is a resolved search intent. The raw `q` parameter is
// parsed exactly once at the API boundary; repositories only ever see the
// tagged form.
type CoachingQuery struct {
	Kind   CoachingQueryKind
	Status Status
	Name   string
}

// ParseCoachingQuery resolves a raw search term into a tagged query.
// A term equal to one of the status literals searches by status; anything
// else is a case-insensitive name-substring search.
func ParseCoachingQuery(q string) CoachingQuery {
	switch Status(q) {
	case StatusPending, StatusApproved, StatusDenied:
		return CoachingQuery{Kind: QueryByStatus, Status: Status(q)}
	}
	return CoachingQuery{Kind: QueryByNameContains, Name: q}
}
