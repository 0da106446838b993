package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Device is a registered push target. One document per FCM token; the
// unique token index deduplicates repeated registrations of the same
// device across logins.
type Device struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string             `bson:"userId" json:"userId"`
	Username   string             `bson:"username" json:"username"`
	Email      string             `bson:"email" json:"email"`
	FCMToken   string             `bson:"fcmToken" json:"fcmToken"` // unique
	LastActive time.Time          `bson:"lastActive" json:"lastActive"`
}
