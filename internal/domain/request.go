package domain

import "time"

// TeacherIdentityKind discriminates the teacher identity variants
type TeacherIdentityKind int

const (
	// TeacherNone no teacher attached to the booking
	TeacherNone TeacherIdentityKind = iota

	// TeacherLinked a teacher with a portal account, keyed by user id
	TeacherLinked

	// TeacherStandalone a roster-only teacher record without an account
	TeacherStandalone
)

// TeacherIdentity tagged variant carrying at most one of the two teacher
// identities. The zero value means "no teacher".
type TeacherIdentity struct {
	Kind TeacherIdentityKind
	ID   int64
}

// LinkedTeacher identity for a teacher with a portal account
func LinkedTeacher(userID int64) TeacherIdentity {
	return TeacherIdentity{Kind: TeacherLinked, ID: userID}
}

// StandaloneTeacher identity for a roster-only teacher
func StandaloneTeacher(teacherID int64) TeacherIdentity {
	return TeacherIdentity{Kind: TeacherStandalone, ID: teacherID}
}

// IsLinked returns true for a portal-account teacher identity
func (t TeacherIdentity) IsLinked() bool {
	return t.Kind == TeacherLinked
}

// IsStandalone returns true for a roster-only teacher identity
func (t TeacherIdentity) IsStandalone() bool {
	return t.Kind == TeacherStandalone
}

// IsPresent returns true if any teacher identity is attached
func (t TeacherIdentity) IsPresent() bool {
	return t.Kind != TeacherNone
}

// BookingRequest describes the lesson being proposed. It is immutable for
// the duration of a conflict check.
type BookingRequest struct {
	Start   time.Time
	End     time.Time
	Teacher TeacherIdentity

	RoomID     *int64
	LocationID *int64
	StudentIDs []int64

	// ExcludeLessonID set when re-checking an edit to an existing lesson so
	// the lesson does not conflict with itself
	ExcludeLessonID *int64
}
