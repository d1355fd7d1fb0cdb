package util

import (
	"strconv"
	"time"
)

// MustParseUint converts a string to an unsigned integer, returning 0 on failure.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// ValidPeriod reports whether s is a well-formed YYYY-MM period key.
func ValidPeriod(s string) bool {
	_, err := time.Parse("2006-01", s)
	return err == nil
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}
