package domain

// Time format constants
const (
	TimeFormat  = "15:04:05"   // HH:MM:SS
	ClockFormat = "15:04"      // HH:MM, used in conflict messages
	DateFormat  = "2006-01-02" // YYYY-MM-DD
)

// DefaultTimezone applied when an organisation has no timezone configured
const DefaultTimezone = "UTC"

// CancelledStatuses lessons in these statuses release their slot and are
// ignored by every overlap query. Completed and no-show lessons keep their
// slot: the time was genuinely occupied.
var CancelledStatuses = []LessonStatus{
	StatusCancelled,
}

// IsCancelled reports whether the status releases the lesson's slot
func (s LessonStatus) IsCancelled() bool {
	for _, c := range CancelledStatuses {
		if s == c {
			return true
		}
	}
	return false
}
