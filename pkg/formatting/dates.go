package formatting

import (
	"strings"
	"time"

	"github.com/iota-uz/hrms-lite/pkg/constants"
)

const (
	DisplayDate     = "Jan 2, 2006"
	DisplayDateTime = "Jan 2, 2006, 03:04 PM"
)

// Timestamps arrive as RFC 3339 or as naive ISO strings without a zone.
var inputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	constants.DateLayout,
}

// ParseTimestamp accepts any of the layouts the API emits.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a date or timestamp as "Jan 2, 2006". Empty input gives
// an empty string; unparsable input is returned unchanged.
func FormatDate(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	t, ok := ParseTimestamp(s)
	if !ok {
		return s
	}
	return t.Format(DisplayDate)
}

// FormatDateTime renders a timestamp as "Jan 2, 2006, 03:04 PM".
func FormatDateTime(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	t, ok := ParseTimestamp(s)
	if !ok {
		return s
	}
	return t.Format(DisplayDateTime)
}

// Today is now's calendar date as YYYY-MM-DD.
func Today(now time.Time) string {
	return now.Format(constants.DateLayout)
}

func Yesterday(now time.Time) string {
	return now.AddDate(0, 0, -1).Format(constants.DateLayout)
}
