package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationHistory is one attempted per-token delivery. A fan-out to N
// tokens produces N rows; rows record attempts, not confirmed receipts.
// Only the Read flag is ever mutated after creation.
type NotificationHistory struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title       string              `bson:"title" json:"title"`
	Description string              `bson:"description" json:"description"`
	FCMToken    string              `bson:"fcmToken" json:"fcmToken"`
	UserID      string              `bson:"userId,omitempty" json:"userId,omitempty"`
	GroupID     *primitive.ObjectID `bson:"groupId,omitempty" json:"groupId,omitempty"`
	ContentID   *primitive.ObjectID `bson:"contentId,omitempty" json:"contentId,omitempty"`
	ContentURL  string              `bson:"contentUrl,omitempty" json:"contentUrl,omitempty"`
	Read        bool                `bson:"read" json:"read"`
	SentAt      time.Time           `bson:"sentAt" json:"sentAt"`
}
