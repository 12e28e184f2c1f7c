package domain

// ConflictType identifies the scheduling constraint a conflict came from
type ConflictType string

const (
	ConflictClosure          ConflictType = "closure"
	ConflictAvailability     ConflictType = "availability"
	ConflictTimeOff          ConflictType = "time_off"
	ConflictTeacher          ConflictType = "teacher"
	ConflictRoom             ConflictType = "room"
	ConflictStudent          ConflictType = "student"
	ConflictExternalCalendar ConflictType = "external_calendar"
)

// Severity classifies how a conflict should be treated by the caller
type Severity string

const (
	// SeverityWarning informational, the booking may proceed
	SeverityWarning Severity = "warning"

	// SeverityError the caller should block the booking by default
	SeverityError Severity = "error"
)

// Conflict represents one detected scheduling problem. Conflicts are
// transient, advisory output: they carry no identifiers back into the data
// store and are rebuilt from scratch on every check.
type Conflict struct {
	Type       ConflictType
	Severity   Severity
	Message    string
	EntityName *string
}

// IsBlocking returns true if the conflict should block the booking by default
func (c *Conflict) IsBlocking() bool {
	return c.Severity == SeverityError
}
