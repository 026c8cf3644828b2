// internal/domain/roster/enums.go
package roster

// Day types, role types, and response statuses are closed vocabularies.
// Everything entering the system as a string goes through a Parse* function
// so an unrecognized value is a ValidationError at the boundary, never a
// silent fallback deeper in.

// DayType is the category of recurring event. It alone determines which
// roles a schedule requires.
type DayType string

const (
	Wednesday DayType = "wednesday"
	Friday    DayType = "friday"
	Saturday  DayType = "saturday"
)

// ParseDayType validates a wire string against the closed day-type set.
func ParseDayType(s string) (DayType, error) {
	switch DayType(s) {
	case Wednesday, Friday, Saturday:
		return DayType(s), nil
	}
	return "", &ValidationError{Field: "day_type", Msg: "must be wednesday, friday, or saturday"}
}

func (d DayType) String() string { return string(d) }

// RoleType is a function to be staffed for an event.
type RoleType string

const (
	Preaching   RoleType = "preaching"
	Cleaning    RoleType = "cleaning"
	Worship     RoleType = "worship"
	Welcome     RoleType = "welcome"
	DoorService RoleType = "door_service"
)

// ParseRoleType validates a wire string against the closed role set.
func ParseRoleType(s string) (RoleType, error) {
	switch RoleType(s) {
	case Preaching, Cleaning, Worship, Welcome, DoorService:
		return RoleType(s), nil
	}
	return "", &ValidationError{Field: "role", Msg: "unknown role type"}
}

func (r RoleType) String() string { return string(r) }

// ResponseStatus is the state of one assignee's answer.
type ResponseStatus string

const (
	StatusPending  ResponseStatus = "pending"
	StatusAccepted ResponseStatus = "accepted"
	StatusDeclined ResponseStatus = "declined"
)

// ParseAnswer validates a status a volunteer may record. Pending is the
// implicit initial state and is not recordable.
func ParseAnswer(s string) (ResponseStatus, error) {
	switch ResponseStatus(s) {
	case StatusAccepted, StatusDeclined:
		return ResponseStatus(s), nil
	}
	return "", &ValidationError{Field: "status", Msg: "must be accepted or declined"}
}

func (s ResponseStatus) String() string { return string(s) }

// Terminal reports whether the status admits no further transition.
func (s ResponseStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusDeclined
}
