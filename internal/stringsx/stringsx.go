package stringsx

import "strings"

// Trim returns the trimmed value of an optional string; nil yields "".
func Trim(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// OrDefault returns def when s is empty after trimming spaces.
func OrDefault(s, def string) string {
	if IsEmpty(s) {
		return def
	}
	return s
}

// IsEmpty reports whether s is empty after trimming spaces.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}
