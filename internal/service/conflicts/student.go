package conflicts

import (
	"context"
	"fmt"

	"github.com/m04kA/MSH-ConflictService/internal/domain"
)

// checkStudents fetches every non-cancelled participation of the involved
// students and reports one error per distinct student with at least one
// direct overlap. A student with several overlapping bookings still yields a
// single conflict. Result order follows the request's student list.
func (s *Service) checkStudents(ctx context.Context, req *domain.BookingRequest, orgID int64) ([]domain.Conflict, error) {
	participations, err := s.lessons.ListParticipations(ctx, orgID, req.StudentIDs, req.ExcludeLessonID)
	if err != nil {
		return nil, fmt.Errorf("student check: list participations: %w", err)
	}

	conflicting := make(map[int64]bool)
	for _, p := range participations {
		if domain.TimeRangesOverlap(p.Start, p.End, req.Start, req.End) {
			conflicting[p.StudentID] = true
		}
	}
	if len(conflicting) == 0 {
		return nil, nil
	}

	// Distinct conflicting ids, ordered as the request listed them.
	seen := make(map[int64]bool)
	var ids []int64
	for _, id := range req.StudentIDs {
		if conflicting[id] && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	students, err := s.students.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("student check: resolve names: %w", err)
	}

	names := make(map[int64]string, len(students))
	for _, student := range students {
		names[student.ID] = student.FullName()
	}

	conflicts := make([]domain.Conflict, 0, len(ids))
	for _, id := range ids {
		name := names[id]
		if name == "" {
			name = fmt.Sprintf("Student %d", id)
		}
		conflicts = append(conflicts, domain.Conflict{
			Type:       domain.ConflictStudent,
			Severity:   domain.SeverityError,
			Message:    fmt.Sprintf("%s already has a lesson at this time", name),
			EntityName: &name,
		})
	}

	return conflicts, nil
}
