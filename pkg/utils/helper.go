package utils

import (
	"fmt"
	"strconv"
	"time"
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

// ObjectName builds a storage object name that cannot collide with an
// earlier upload of the same file.
func ObjectName(originalName string) string {
	return fmt.Sprintf("%d_%s", time.Now().UnixMilli(), originalName)
}
