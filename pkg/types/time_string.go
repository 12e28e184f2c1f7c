package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeString represents a wall-clock time of day stored as a zero-padded
// "HH:MM:SS" string. Because every value is zero-padded, lexicographic
// comparison of two TimeString values matches chronological order.
type TimeString string

const (
	timeStringLayout      = "15:04:05"
	timeStringShortLayout = "15:04"
)

// NewTimeString extracts the time of day from t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeStringLayout))
}

// NewTimeStringFromString parses a "HH:MM" or "HH:MM:SS" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	for _, layout := range []string{timeStringLayout, timeStringShortLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimeString(t), nil
		}
	}
	return "", fmt.Errorf("invalid time string %q, expected HH:MM or HH:MM:SS", s)
}

// String returns the normalized "HH:MM:SS" form.
func (t TimeString) String() string {
	return string(t)
}

// IsBefore returns true if t is strictly earlier in the day than other.
func (t TimeString) IsBefore(other TimeString) bool {
	return t < other
}

// IsAfter returns true if t is strictly later in the day than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return t > other
}

// Scan implements sql.Scanner. Postgres TIME columns arrive as strings,
// []byte or time.Time depending on the driver path.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeString", src)
	}
}

// Value implements driver.Valuer.
func (t TimeString) Value() (driver.Value, error) {
	return string(t), nil
}
