// internal/domain/roster/build.go
package roster

import (
	"fmt"
	"time"

	"github.com/harvestchapel/rosterd/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BuildAssignments derives the full assignment set for a schedule from the
// requirement table of day, taking user lists from supplied where present.
//
// The role vocabulary is fully determined by the day type, never by caller
// input: required roles missing from supplied are created empty, and
// supplied roles the day type does not require are dropped. Duplicate role
// entries in supplied are a ValidationError, as is a role string outside the
// closed vocabulary.
//
// previous is the assignment set the schedule held before this write (nil on
// create). Responses are owned by the assignees, so caller-supplied response
// maps are ignored; instead, a user retained in the same role keeps the
// response they already gave, and every newly added user starts pending as
// of now. Users no longer listed lose their response with their slot.
//
// Under-staffing is a vacancy and is fine. Over-staffing is accepted and
// reported as a warning so an administrator can proceed deliberately.
func BuildAssignments(day DayType, supplied, previous []models.Assignment, now time.Time) ([]models.Assignment, []string, error) {
	suppliedByRole := make(map[RoleType][]primitive.ObjectID, len(supplied))
	for _, a := range supplied {
		role, err := ParseRoleType(a.Role)
		if err != nil {
			return nil, nil, err
		}
		if _, dup := suppliedByRole[role]; dup {
			return nil, nil, &ValidationError{Field: "assignments", Msg: fmt.Sprintf("duplicate entry for role %s", role)}
		}
		suppliedByRole[role] = dedupeIDs(a.UserIDs)
	}

	prevByRole := make(map[RoleType]models.Assignment, len(previous))
	for _, a := range previous {
		prevByRole[RoleType(a.Role)] = a
	}

	reqs, err := RequirementsFor(day)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	out := make([]models.Assignment, 0, len(reqs))
	for _, req := range reqs {
		userIDs := suppliedByRole[req.Role]
		if userIDs == nil {
			userIDs = []primitive.ObjectID{}
		}

		responses := make(map[string]models.Response, len(userIDs))
		prev := prevByRole[req.Role]
		for _, uid := range userIDs {
			key := uid.Hex()
			if r, ok := prev.Responses[key]; ok && containsID(prev.UserIDs, uid) {
				responses[key] = r
				continue
			}
			responses[key] = models.Response{
				Status:     StatusPending.String(),
				RecordedAt: now,
			}
		}

		if len(userIDs) > req.Count {
			warnings = append(warnings, fmt.Sprintf("%s: %d assigned, %d required", req.Role, len(userIDs), req.Count))
		}

		out = append(out, models.Assignment{
			Role:      req.Role.String(),
			UserIDs:   userIDs,
			Responses: responses,
		})
	}
	return out, warnings, nil
}

// ChangedRoles lists the roles whose user sets differ between two assignment
// sets, plus roles present in only one of them. Order follows after, then
// the before-only leftovers.
func ChangedRoles(before, after []models.Assignment) []string {
	prev := make(map[string][]primitive.ObjectID, len(before))
	for _, a := range before {
		prev[a.Role] = a.UserIDs
	}

	var changed []string
	seen := make(map[string]bool, len(after))
	for _, a := range after {
		seen[a.Role] = true
		old, existed := prev[a.Role]
		if !existed || !sameIDSet(old, a.UserIDs) {
			changed = append(changed, a.Role)
		}
	}
	for _, a := range before {
		if !seen[a.Role] {
			changed = append(changed, a.Role)
		}
	}
	return changed
}

func dedupeIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	seen := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		if id.IsZero() || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func sameIDSet(a, b []primitive.ObjectID) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[primitive.ObjectID]bool, len(a))
	for _, id := range a {
		set[id] = true
	}
	for _, id := range b {
		if !set[id] {
			return false
		}
	}
	return true
}
