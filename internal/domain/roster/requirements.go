// internal/domain/roster/requirements.go
package roster

// Requirement is one role slot of a day type with its required headcount.
type Requirement struct {
	Role  RoleType
	Count int
}

// The requirement table is the single source of truth for which roles a day
// type needs and how many people fill each. It drives both schedule
// construction and the coverage figures presentation layers display.
var requirementTable = map[DayType][]Requirement{
	Wednesday: {
		{Role: Preaching, Count: 1},
		{Role: Cleaning, Count: 3},
		{Role: Worship, Count: 3},
		{Role: Welcome, Count: 1},
	},
	Friday: {
		{Role: Preaching, Count: 1},
		{Role: DoorService, Count: 1},
	},
	Saturday: {
		{Role: Preaching, Count: 1},
		{Role: Cleaning, Count: 3},
		{Role: Worship, Count: 3},
		{Role: Welcome, Count: 1},
	},
}

// RequirementsFor returns the ordered required roles and headcounts for a
// day type. The order is canonical: schedules store their assignments in
// exactly this order.
func RequirementsFor(day DayType) ([]Requirement, error) {
	reqs, ok := requirementTable[day]
	if !ok {
		return nil, &ValidationError{Field: "day_type", Msg: "must be wednesday, friday, or saturday"}
	}
	out := make([]Requirement, len(reqs))
	copy(out, reqs)
	return out, nil
}

// RequiredCount returns the headcount for one (day, role) pair, or 0 if the
// role is not part of the day type.
func RequiredCount(day DayType, role RoleType) int {
	for _, req := range requirementTable[day] {
		if req.Role == role {
			return req.Count
		}
	}
	return 0
}
