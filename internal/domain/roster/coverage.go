// internal/domain/roster/coverage.go
package roster

import "github.com/harvestchapel/rosterd/internal/domain/models"

// RoleCoverage is the staffing completion of one role slot. Presentation
// layers consume these figures; they never compute their own.
type RoleCoverage struct {
	Role     string `json:"role"`
	Assigned int    `json:"assigned"`
	Required int    `json:"required"`
	Percent  int    `json:"percent"`
}

// Coverage reports per-role assigned/required counts for a schedule's
// assignment set, in the set's own (canonical) order. Percent caps at 100
// so over-staffed roles read as fully covered.
func Coverage(day DayType, assignments []models.Assignment) []RoleCoverage {
	out := make([]RoleCoverage, 0, len(assignments))
	for _, a := range assignments {
		required := RequiredCount(day, RoleType(a.Role))
		pct := 100
		if required > 0 {
			pct = len(a.UserIDs) * 100 / required
			if pct > 100 {
				pct = 100
			}
		}
		out = append(out, RoleCoverage{
			Role:     a.Role,
			Assigned: len(a.UserIDs),
			Required: required,
			Percent:  pct,
		})
	}
	return out
}
