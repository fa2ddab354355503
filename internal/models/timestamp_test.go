package models

import (
	"testing"
	"time"
)

func TestParseTimestamp_RFC3339(t *testing.T) {
	parsed := ParseTimestamp("2025-03-10T12:00:00Z")

	if parsed == nil {
		t.Fatal("Expected RFC3339 string to parse")
	}

	expected := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	if !parsed.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, parsed)
	}
}

func TestParseTimestamp_DateOnly(t *testing.T) {
	parsed := ParseTimestamp("2025-03-10")

	if parsed == nil {
		t.Fatal("Expected date-only string to parse")
	}

	if parsed.Year() != 2025 || parsed.Month() != time.March || parsed.Day() != 10 {
		t.Errorf("Expected 2025-03-10, got %v", parsed)
	}
}

func TestParseTimestamp_NoTimezone(t *testing.T) {
	parsed := ParseTimestamp("2025-03-10T12:30:00")

	if parsed == nil {
		t.Fatal("Expected timestamp without timezone to parse")
	}

	if parsed.Hour() != 12 || parsed.Minute() != 30 {
		t.Errorf("Expected 12:30, got %v", parsed)
	}
}

func TestParseTimestamp_TimeValuePassthrough(t *testing.T) {
	now := time.Now()

	parsed := ParseTimestamp(now)

	if parsed == nil || !parsed.Equal(now) {
		t.Errorf("Expected time.Time to pass through unchanged, got %v", parsed)
	}
}

func TestParseTimestamp_InvalidValues(t *testing.T) {
	invalid := []interface{}{
		nil,
		"",
		"not-a-date",
		"2025-13-45",
		12345,
		true,
		map[string]interface{}{"nested": "value"},
	}

	for _, value := range invalid {
		if parsed := ParseTimestamp(value); parsed != nil {
			t.Errorf("Expected nil for %v, got %v", value, parsed)
		}
	}
}

func TestDaysBetween_WholeDays(t *testing.T) {
	later := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	earlier := time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)

	days, ok := DaysBetween(later, &earlier)

	if !ok {
		t.Fatal("Expected ok for present earlier time")
	}
	if days != 5 {
		t.Errorf("Expected 5 days, got %d", days)
	}
}

func TestDaysBetween_TruncatesTowardZero(t *testing.T) {
	later := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	// 2 days and 20 hours in the past truncates to 2
	earlier := time.Date(2025, 3, 7, 16, 0, 0, 0, time.UTC)
	days, _ := DaysBetween(later, &earlier)
	if days != 2 {
		t.Errorf("Expected 2 days, got %d", days)
	}

	// 2 days and 20 hours in the future truncates to -2, not -3
	future := time.Date(2025, 3, 13, 8, 0, 0, 0, time.UTC)
	days, _ = DaysBetween(later, &future)
	if days != -2 {
		t.Errorf("Expected -2 days, got %d", days)
	}
}

func TestDaysBetween_MissingEarlier(t *testing.T) {
	days, ok := DaysBetween(time.Now(), nil)

	if ok {
		t.Error("Expected ok=false for nil earlier time")
	}
	if days != 0 {
		t.Errorf("Expected 0 days, got %d", days)
	}
}

func TestFormatTimestamp_UTC(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	localTime := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)

	formatted := FormatTimestamp(localTime)

	if formatted != "2025-03-10T12:00:00Z" {
		t.Errorf("Expected UTC RFC3339 output, got %s", formatted)
	}
}
