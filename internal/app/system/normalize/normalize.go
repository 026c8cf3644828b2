// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email lowercases and trims an email address for storage and lookup.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Username lowercases and trims a login username. Usernames are compared
// case-insensitively everywhere.
func Username(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name collapses interior runs of whitespace and trims the ends of a
// person's display name.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
