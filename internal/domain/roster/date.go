// internal/domain/roster/date.go
package roster

import (
	"strings"
	"time"
)

// DateLayout is the wire format for schedule dates. Dates carry no time
// component; the day type, not the clock, decides the required roles.
const DateLayout = "2006-01-02"

// ParseDate validates a schedule date and returns it in canonical form.
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &ValidationError{Field: "date", Msg: "date is required"}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", &ValidationError{Field: "date", Msg: "must be a calendar date in YYYY-MM-DD form"}
	}
	return t.Format(DateLayout), nil
}
