// internal/domain/models/schedule.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Schedule is one event instance: a calendar date plus a day type, holding
// exactly one Assignment per role the day type requires, in canonical order.
type Schedule struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date        string             `bson:"date" json:"date"` // YYYY-MM-DD, no time component
	DayType     string             `bson:"day_type" json:"day_type"`
	Assignments []Assignment       `bson:"assignments" json:"assignments"`

	// Version is the optimistic-concurrency token. Every successful update
	// increments it; writers filter on the value they read.
	Version int64 `bson:"version" json:"version"`

	CreatedBy primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Assignment is the set of volunteers designated to fill one role for one
// schedule, together with their responses.
//
// Responses is keyed by the hex form of the user ObjectID so it round-trips
// as a BSON document. Invariant: every key corresponds to an entry in
// UserIDs; removing a user removes their response with them.
type Assignment struct {
	Role      string               `bson:"role" json:"role"`
	UserIDs   []primitive.ObjectID `bson:"user_ids" json:"user_ids"`
	Responses map[string]Response  `bson:"responses" json:"responses"`
}

// Response is a volunteer's answer to their assignment. Status starts as
// pending the moment the user is added to the role and moves exactly once
// to accepted or declined.
type Response struct {
	Status     string    `bson:"status" json:"status"`
	Reason     string    `bson:"reason,omitempty" json:"reason,omitempty"` // declined only
	RecordedAt time.Time `bson:"recorded_at" json:"recorded_at"`
}
