package models

import "time"

// timestampLayouts are the ISO-8601 variants accepted for lead and stats
// timestamps, tried in order. Values that match none of them are treated as
// absent rather than raising an error.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp leniently parses a timestamp value. Already-structured
// time.Time values pass through as-is; ISO-8601 strings are parsed; any other
// shape (nil, empty string, malformed string, non-time type) yields nil.
func ParseTimestamp(value interface{}) *time.Time {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		return &v
	case *time.Time:
		return v
	case string:
		if v == "" {
			return nil
		}
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, v); err == nil {
				return &parsed
			}
		}
		return nil
	default:
		return nil
	}
}

// DaysBetween returns the number of whole days elapsed from earlier to later,
// truncated toward zero. The result is negative when earlier is in the future.
// The second return value is false when earlier is absent.
func DaysBetween(later time.Time, earlier *time.Time) (int, bool) {
	if earlier == nil {
		return 0, false
	}
	return int(later.Sub(*earlier) / (24 * time.Hour)), true
}

// FormatTimestamp renders a time in the canonical wire format used for lead
// and stats timestamps.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
