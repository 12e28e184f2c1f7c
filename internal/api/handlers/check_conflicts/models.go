package check_conflicts

import (
	"errors"
	"time"

	"github.com/m04kA/MSH-ConflictService/internal/domain"
)

var (
	errInvalidStart         = errors.New("invalid start")
	errInvalidEnd           = errors.New("invalid end")
	errEndNotAfterStart     = errors.New("end not after start")
	errTwoTeacherIdentities = errors.New("two teacher identities")
)

// CheckConflictsRequest HTTP request model
type CheckConflictsRequest struct {
	Start string `json:"start"` // RFC3339
	End   string `json:"end"`   // RFC3339

	// At most one of the two teacher identities may be set
	TeacherUserID       *int64 `json:"teacherUserId,omitempty"`
	StandaloneTeacherID *int64 `json:"standaloneTeacherId,omitempty"`

	RoomID          *int64  `json:"roomId,omitempty"`
	LocationID      *int64  `json:"locationId,omitempty"`
	StudentIDs      []int64 `json:"studentIds,omitempty"`
	ExcludeLessonID *int64  `json:"excludeLessonId,omitempty"`
}

// ToDomain конвертирует HTTP запрос в доменную модель
func (r *CheckConflictsRequest) ToDomain() (*domain.BookingRequest, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, errInvalidStart
	}
	end, err := time.Parse(time.RFC3339, r.End)
	if err != nil {
		return nil, errInvalidEnd
	}
	if !end.After(start) {
		return nil, errEndNotAfterStart
	}

	var teacher domain.TeacherIdentity
	switch {
	case r.TeacherUserID != nil && r.StandaloneTeacherID != nil:
		return nil, errTwoTeacherIdentities
	case r.TeacherUserID != nil:
		teacher = domain.LinkedTeacher(*r.TeacherUserID)
	case r.StandaloneTeacherID != nil:
		teacher = domain.StandaloneTeacher(*r.StandaloneTeacherID)
	}

	return &domain.BookingRequest{
		Start:           start,
		End:             end,
		Teacher:         teacher,
		RoomID:          r.RoomID,
		LocationID:      r.LocationID,
		StudentIDs:      r.StudentIDs,
		ExcludeLessonID: r.ExcludeLessonID,
	}, nil
}

// ConflictResponse HTTP model for one detected conflict
type ConflictResponse struct {
	Type       string  `json:"type"`
	Severity   string  `json:"severity"`
	Message    string  `json:"message"`
	EntityName *string `json:"entityName,omitempty"`
}

// CheckConflictsResponse HTTP response model
type CheckConflictsResponse struct {
	Conflicts []ConflictResponse `json:"conflicts"`
}

// FromDomainConflicts конвертирует доменные конфликты в HTTP response
func FromDomainConflicts(conflicts []domain.Conflict) *CheckConflictsResponse {
	out := make([]ConflictResponse, 0, len(conflicts))
	for _, c := range conflicts {
		out = append(out, ConflictResponse{
			Type:       string(c.Type),
			Severity:   string(c.Severity),
			Message:    c.Message,
			EntityName: c.EntityName,
		})
	}
	return &CheckConflictsResponse{Conflicts: out}
}
