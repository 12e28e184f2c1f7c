package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/MSH-ConflictService/pkg/types"
)

// LessonStatus represents the lifecycle status of a lesson
type LessonStatus string

const (
	StatusScheduled LessonStatus = "scheduled"
	StatusCompleted LessonStatus = "completed"
	StatusCancelled LessonStatus = "cancelled"
	StatusNoShow    LessonStatus = "no_show"
)

// Lesson one existing booking on the calendar, as read by the conflict ports
type Lesson struct {
	ID         int64
	Title      string
	Start      time.Time
	End        time.Time
	LocationID *int64
	Status     LessonStatus
}

// Overlaps reports whether the lesson directly intersects [start, end).
// Ranges that merely touch at a boundary do not overlap.
func (l *Lesson) Overlaps(start, end time.Time) bool {
	return TimeRangesOverlap(l.Start, l.End, start, end)
}

// Closure a whole-day closure record for an organisation
type Closure struct {
	Reason                string
	LocationID            *int64
	AppliesToAllLocations bool
}

// AppliesTo reports whether the closure affects a booking at locationID
func (c *Closure) AppliesTo(locationID *int64) bool {
	if c.AppliesToAllLocations {
		return true
	}
	return c.LocationID != nil && locationID != nil && *c.LocationID == *locationID
}

// AvailabilityWindow a teacher's declared working window for one day of week
type AvailabilityWindow struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Covers reports whether the window fully contains the [start, end]
// time-of-day range.
func (w *AvailabilityWindow) Covers(start, end types.TimeString) bool {
	return !start.IsBefore(w.StartTime) && !end.IsAfter(w.EndTime)
}

// TimeOff an approved teacher absence
type TimeOff struct {
	Reason string
	Start  time.Time
	End    time.Time
}

// Room metadata for a bookable room
type Room struct {
	ID          int64
	Name        string
	LocationID  *int64
	MaxCapacity *int
}

// Participation a student's membership in one non-cancelled lesson
type Participation struct {
	StudentID int64
	Start     time.Time
	End       time.Time
}

// Student roster record used to resolve display names
type Student struct {
	ID        int64
	FirstName string
	LastName  string
}

// FullName returns the student's display name
func (s *Student) FullName() string {
	switch {
	case s.FirstName != "" && s.LastName != "":
		return fmt.Sprintf("%s %s", s.FirstName, s.LastName)
	case s.FirstName != "":
		return s.FirstName
	default:
		return s.LastName
	}
}

// BusyBlock an externally-sourced busy block on a teacher's linked calendar
type BusyBlock struct {
	Title string
	Start time.Time
	End   time.Time
}

// TimeRangesOverlap reports whether [aStart, aEnd) and [bStart, bEnd)
// directly intersect. Touching boundaries are not an overlap.
func TimeRangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// LocationsDiffer reports whether two optional location ids refer to
// different places. A missing location differs from a set one.
func LocationsDiffer(a, b *int64) bool {
	if a == nil && b == nil {
		return false
	}
	if a == nil || b == nil {
		return true
	}
	return *a != *b
}
