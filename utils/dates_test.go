// utils/dates_test.go
package utils

import (
	"testing"
	"time"
)

func TestNormalizeTime(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"18:00", "18:00:00"},
		{"18:00:00", "18:00:00"},
		{"9:30", "09:30:00"},
		{"23:59:59", "23:59:59"},
	}
	for _, tc := range cases {
		got, err := NormalizeTime(tc.in)
		if err != nil {
			t.Errorf("NormalizeTime(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeTime(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"", "25:00", "18:61", "mediodía"} {
		if _, err := NormalizeTime(bad); err == nil {
			t.Errorf("NormalizeTime(%q) should fail", bad)
		}
	}
}

func TestAddOneHour(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"18:00", "19:00:00"},
		{"22:30:00", "23:30:00"},
		{"17:00:00", "18:00:00"},
	}
	for _, tc := range cases {
		got, err := AddOneHour(tc.in)
		if err != nil {
			t.Errorf("AddOneHour(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("AddOneHour(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if _, err := AddOneHour("nope"); err == nil {
		t.Errorf("AddOneHour should reject malformed input")
	}
}

func TestShortTime(t *testing.T) {
	if got := ShortTime("18:00:00"); got != "18:00" {
		t.Errorf("ShortTime = %q", got)
	}
	if got := ShortTime("18:00"); got != "18:00" {
		t.Errorf("ShortTime should pass HH:MM through, got %q", got)
	}
}

func TestParseDateAtNoon(t *testing.T) {
	got, err := ParseDateAtNoon("2024-03-04")
	if err != nil {
		t.Fatalf("ParseDateAtNoon: %v", err)
	}
	if got.Hour() != 12 {
		t.Errorf("hour = %d, want 12", got.Hour())
	}
	if got.Weekday() != time.Monday {
		t.Errorf("2024-03-04 should be Monday, got %v", got.Weekday())
	}
	if FormatDate(got) != "2024-03-04" {
		t.Errorf("round trip = %q", FormatDate(got))
	}

	if _, err := ParseDateAtNoon("04/03/2024"); err == nil {
		t.Errorf("non-ISO date should fail")
	}
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2024, 6, 3, 23, 50, 0, 0, time.Local)
	end := time.Date(2024, 6, 10, 0, 5, 0, 0, time.Local)
	if got := DaysBetween(start, end); got != 7 {
		t.Errorf("DaysBetween = %d, want 7 regardless of clock times", got)
	}
	if got := DaysBetween(end, start); got != -7 {
		t.Errorf("reversed DaysBetween = %d, want -7", got)
	}
	if got := DaysBetween(start, start); got != 0 {
		t.Errorf("same day = %d, want 0", got)
	}
}
