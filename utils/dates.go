// utils/dates.go
package utils

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// ParseDateAtNoon parses an ISO date anchored at local noon. Midnight
// timestamps can shift a day when serialized across timezones; noon absorbs
// the local offset, so weekday arithmetic stays on the intended date.
func ParseDateAtNoon(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.Local), nil
}

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func Today() string {
	return FormatDate(time.Now())
}

// NormalizeTime turns "HH:MM" or "HH:MM:SS" into canonical "HH:MM:SS".
func NormalizeTime(s string) (string, error) {
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t.Format("15:04:05"), nil
	}
	if t, err := time.Parse("15:04", s); err == nil {
		return t.Format("15:04:05"), nil
	}
	return "", fmt.Errorf("invalid time %q", s)
}

// ShortTime truncates a stored time to HH:MM. Stored values may carry
// seconds; slot comparison never looks past the minute.
func ShortTime(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}

// AddOneHour returns the time one hour after s, normalized to HH:MM:SS. The
// booking window never crosses midnight, so no wrap handling is needed.
func AddOneHour(s string) (string, error) {
	normalized, err := NormalizeTime(s)
	if err != nil {
		return "", err
	}
	t, _ := time.Parse("15:04:05", normalized)
	return t.Add(time.Hour).Format("15:04:05"), nil
}
