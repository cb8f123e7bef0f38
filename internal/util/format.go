package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Timestamp layouts the backend is known to emit. FastAPI-style servers
// send naive ISO 8601; others append a zone or send epoch seconds.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a server-formatted creation timestamp. It accepts
// ISO 8601 variants and epoch seconds; the second return value reports
// whether parsing succeeded.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}

	if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), true
	}

	return time.Time{}, false
}

// FormatCreatedAt formats a creation timestamp for table display.
// "Today 14:02", "Yesterday", "3d ago", "Jan 15", "Jan 15 '24"
func FormatCreatedAt(value string) string {
	t, ok := ParseTimestamp(value)
	if !ok {
		if value == "" {
			return "Unknown"
		}
		return value
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())

	days := int(today.Sub(day).Hours() / 24)

	switch {
	case days == 0:
		return "Today " + t.Format("15:04")
	case days == 1:
		return "Yesterday"
	case days > 1 && days < 7:
		return fmt.Sprintf("%dd ago", days)
	case t.Year() == now.Year():
		return t.Format("Jan 02")
	default:
		return t.Format("Jan 02 '06")
	}
}

// TruncateString truncates a string to maxLen and adds "..." if needed.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
