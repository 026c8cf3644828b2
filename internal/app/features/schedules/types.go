// internal/app/features/schedules/types.go
package schedules

import (
	"github.com/harvestchapel/rosterd/internal/domain/models"
	"github.com/harvestchapel/rosterd/internal/domain/roster"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// assignmentInput is one role's desired membership as supplied by the admin.
// Any responses the client sends along are ignored; response state belongs to
// the server.
type assignmentInput struct {
	Role    string   `json:"role" validate:"required"`
	UserIDs []string `json:"user_ids" validate:"omitempty,dive,required"`
}

type scheduleRequest struct {
	Date        string            `json:"date" validate:"required"`
	DayType     string            `json:"day_type" validate:"required"`
	Assignments []assignmentInput `json:"assignments" validate:"omitempty,dive"`
}

type responseRequest struct {
	Role   string `json:"role" validate:"required"`
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// scheduleView is a schedule plus derived staffing figures. Warnings only
// appear on the write that produced them.
type scheduleView struct {
	models.Schedule
	Coverage []roster.RoleCoverage `json:"coverage"`
	Warnings []string              `json:"warnings,omitempty"`
}

// responseView is what answering an assignment returns: the mutated
// assignment and the schedule's new version token.
type responseView struct {
	ScheduleID primitive.ObjectID `json:"schedule_id"`
	Version    int64              `json:"version"`
	Assignment models.Assignment  `json:"assignment"`
}

func newScheduleView(sc models.Schedule, warnings []string) scheduleView {
	day, _ := roster.ParseDayType(sc.DayType) // stored values are always valid
	return scheduleView{
		Schedule: sc,
		Coverage: roster.Coverage(day, sc.Assignments),
		Warnings: warnings,
	}
}

// toAssignments converts wire inputs into domain assignments. A malformed
// user ID is a validation error, not a 500.
func toAssignments(in []assignmentInput) ([]models.Assignment, error) {
	out := make([]models.Assignment, 0, len(in))
	for _, a := range in {
		ids := make([]primitive.ObjectID, 0, len(a.UserIDs))
		for _, hex := range a.UserIDs {
			oid, err := primitive.ObjectIDFromHex(hex)
			if err != nil {
				return nil, &roster.ValidationError{Field: "user_ids", Msg: "malformed user id " + hex}
			}
			ids = append(ids, oid)
		}
		out = append(out, models.Assignment{Role: a.Role, UserIDs: ids})
	}
	return out, nil
}
