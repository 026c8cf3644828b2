// internal/app/system/notify/events.go
package notify

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Domain events raised by schedule and response mutations. Each event
// carries enough context for a delivery system to render a message without
// re-querying core state.

// Meta is the envelope shared by every event.
type Meta struct {
	EventID    string    `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewMeta stamps a fresh event envelope.
func NewMeta(now time.Time) Meta {
	return Meta{EventID: uuid.NewString(), OccurredAt: now}
}

// ScheduleCreated is emitted after a schedule is durably created.
type ScheduleCreated struct {
	Meta
	ScheduleID  primitive.ObjectID
	Date        string
	DayType     string
	AssignedIDs map[string][]primitive.ObjectID // role -> assigned users
}

// ScheduleUpdated is emitted after a full assignment-set replacement.
// ChangedRoles lists the roles whose membership changed, including roles
// added or removed by a day-type change.
type ScheduleUpdated struct {
	Meta
	ScheduleID   primitive.ObjectID
	Date         string
	DayType      string
	ChangedRoles []string
	AssignedIDs  map[string][]primitive.ObjectID
}

// ScheduleDeleted is emitted after a schedule and all nested assignment and
// response state is discarded.
type ScheduleDeleted struct {
	Meta
	ScheduleID primitive.ObjectID
}

// ResponseRecorded is emitted when an assignee answers for their slot.
// Reason is only set for declines.
type ResponseRecorded struct {
	Meta
	ScheduleID primitive.ObjectID
	Role       string
	UserID     primitive.ObjectID
	Status     string
	Reason     string
	NotifyID   primitive.ObjectID // the schedule's creator
	Date       string
}
