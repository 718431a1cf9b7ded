package usecase

import (
	"time"

	"dampit-rental/pkg/apperr"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDate accepts RFC3339 timestamps or plain dates.
func parseDate(value, field string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperr.InvalidArgument("invalid " + field + " date: " + value)
}

// parseDateRange validates startDate <= endDate. The end date is pushed
// to the end of its day so a plain date range is inclusive.
func parseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := parseDate(startDate, "startDate")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	end, err := parseDate(endDate, "endDate")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if len(endDate) == len("2006-01-02") {
		end = end.Add(24*time.Hour - time.Second)
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, apperr.InvalidArgument("startDate must be before or equal to endDate")
	}

	return start, end, nil
}
