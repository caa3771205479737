package validator

import (
	"slices"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

const DateLayout = "2006-01-02"

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DateLayout, dateStr)
	return date, err == nil
}

// ParseDateIn parses a "YYYY-MM-DD" date as midnight in loc.
func ParseDateIn(dateStr string, loc *time.Location) (time.Time, bool) {
	date, err := time.ParseInLocation(DateLayout, dateStr, loc)
	return date, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	return slices.Contains(slice, value)
}

// IsValidDateTime checks if a string is a valid ISO8601 timestamp.
// Accepts formats like: "2024-01-15T10:30:00Z" or "2024-01-15T10:30:00+07:00"
func IsValidDateTime(dateTimeStr string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, dateTimeStr)
	if err == nil {
		return t, true
	}

	t, err = time.Parse(time.RFC3339Nano, dateTimeStr)
	if err == nil {
		return t, true
	}

	return time.Time{}, false
}

// localDateTimeLayouts are accepted when the value carries no zone offset.
var localDateTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// ParseDateTime accepts RFC3339 timestamps and zone-less local timestamps
// ("2024-01-15 10:30:00"), the latter interpreted in loc.
func ParseDateTime(dateTimeStr string, loc *time.Location) (time.Time, bool) {
	if t, ok := IsValidDateTime(dateTimeStr); ok {
		return t, true
	}
	for _, layout := range localDateTimeLayouts {
		if t, err := time.ParseInLocation(layout, dateTimeStr, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
