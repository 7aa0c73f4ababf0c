package util

import "strings"

// SanitizeUsername normalizes raw username input before it reaches the
// services. Usernames are case-sensitive; only surrounding whitespace is
// stripped.
func SanitizeUsername(s string) string {
	return strings.TrimSpace(s)
}
