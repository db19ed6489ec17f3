package utils

import (
	"strconv"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// FormatInt renders an int64 amount in minor units for metadata fields.
func FormatInt(value int64) string {
	return strconv.FormatInt(value, 10)
}
