package utils

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// IsValidPeriod reports whether s is a YYYY-MM period identifier
func IsValidPeriod(s string) bool {
	return periodPattern.MatchString(s)
}

// PeriodOf returns the YYYY-MM period identifier for a date
func PeriodOf(t time.Time) string {
	return t.Format("2006-01")
}

// CurrentPeriod returns the period identifier for the current month
func CurrentPeriod() string {
	return PeriodOf(time.Now())
}

// PeriodBounds returns the first day of the period and the first day of the next period
func PeriodBounds(period string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", period)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 1, 0), nil
}
