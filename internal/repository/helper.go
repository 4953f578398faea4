package repository

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse(dateLayout, str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

// formatDate formats a time as a calendar date for storage.
func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}
