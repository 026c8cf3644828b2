// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is the durable record produced for a user when a staffing
// event concerns them. Delivery (email, push) is outside this service; a
// delivery system can render a message from this document alone.
type Notification struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	ScheduleID primitive.ObjectID `bson:"schedule_id" json:"schedule_id"`
	Role       string             `bson:"role,omitempty" json:"role,omitempty"`
	EventID    string             `bson:"event_id" json:"event_id"` // uuid of the originating domain event
	Message    string             `bson:"message" json:"message"`
	Read       bool               `bson:"read" json:"read"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
