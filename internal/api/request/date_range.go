package request

import (
	"fmt"
	"time"
)

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange parses start_date and end_date query parameters (YYYY-MM-DD).
//
// Defaults:
//   - end_date: today
//   - start_date: one year before end_date
//
// Returns an error if a parameter is malformed or the start is after the end.
func ParseDateRange(startParam, endParam string, today time.Time) (DateRange, error) {
	end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if endParam != "" {
		parsed, err := time.Parse("2006-01-02", endParam)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid end_date format: %w", err)
		}
		end = parsed
	}

	start := end.AddDate(-1, 0, 0)
	if startParam != "" {
		parsed, err := time.Parse("2006-01-02", startParam)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid start_date format: %w", err)
		}
		start = parsed
	}

	if start.After(end) {
		return DateRange{}, fmt.Errorf("start_date %s is after end_date %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	return DateRange{Start: start, End: end}, nil
}
