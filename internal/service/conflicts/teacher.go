package conflicts

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/MSH-ConflictService/internal/domain"
)

// checkTeacherOverlap dispatches exactly one of the two identity strategies.
func (s *Service) checkTeacherOverlap(ctx context.Context, req *domain.BookingRequest, orgID int64, policy domain.OrgPolicy) ([]domain.Conflict, error) {
	switch {
	case req.Teacher.IsLinked():
		return s.checkLinkedTeacherOverlap(ctx, req, orgID, policy)
	case req.Teacher.IsStandalone():
		return s.checkStandaloneTeacherOverlap(ctx, req, orgID, policy)
	}
	return nil, nil
}

// checkLinkedTeacherOverlap queries the teacher's lessons inside a window
// widened by the org's travel buffer. A direct overlap is always an error
// and takes precedence; when only the widened window is hit and the nearby
// lesson sits at a different location, a buffer warning is emitted instead.
// At most one conflict comes out of this check.
func (s *Service) checkLinkedTeacherOverlap(ctx context.Context, req *domain.BookingRequest, orgID int64, policy domain.OrgPolicy) ([]domain.Conflict, error) {
	buffer := policy.TravelBuffer()

	lessons, err := s.lessons.ListByLinkedTeacher(ctx, orgID, req.Teacher.ID,
		req.Start.Add(-buffer), req.End.Add(buffer), req.ExcludeLessonID)
	if err != nil {
		return nil, fmt.Errorf("teacher check: list lessons: %w", err)
	}

	loc := policy.Location()
	for _, lesson := range lessons {
		if lesson.Overlaps(req.Start, req.End) {
			return []domain.Conflict{teacherOverlapConflict(lesson, loc)}, nil
		}
	}

	if policy.HasTravelBuffer() {
		for _, lesson := range lessons {
			if domain.LocationsDiffer(lesson.LocationID, req.LocationID) {
				title := lesson.Title
				return []domain.Conflict{{
					Type:     domain.ConflictTeacher,
					Severity: domain.SeverityWarning,
					Message: fmt.Sprintf("Teacher needs a %d minute travel buffer around %q at another location",
						policy.TravelBufferMinutes, lesson.Title),
					EntityName: &title,
				}}, nil
			}
		}
	}

	return nil, nil
}

// checkStandaloneTeacherOverlap is the roster-only strategy: a plain direct
// overlap test keyed by the standalone teacher id, no buffer logic.
func (s *Service) checkStandaloneTeacherOverlap(ctx context.Context, req *domain.BookingRequest, orgID int64, policy domain.OrgPolicy) ([]domain.Conflict, error) {
	lessons, err := s.lessons.ListByStandaloneTeacher(ctx, orgID, req.Teacher.ID,
		req.Start, req.End, req.ExcludeLessonID)
	if err != nil {
		return nil, fmt.Errorf("teacher check: list standalone lessons: %w", err)
	}

	for _, lesson := range lessons {
		if lesson.Overlaps(req.Start, req.End) {
			return []domain.Conflict{teacherOverlapConflict(lesson, policy.Location())}, nil
		}
	}

	return nil, nil
}

func teacherOverlapConflict(lesson domain.Lesson, loc *time.Location) domain.Conflict {
	title := lesson.Title
	return domain.Conflict{
		Type:     domain.ConflictTeacher,
		Severity: domain.SeverityError,
		Message: fmt.Sprintf("Teacher already has %q from %s to %s", lesson.Title,
			lesson.Start.In(loc).Format(domain.ClockFormat),
			lesson.End.In(loc).Format(domain.ClockFormat)),
		EntityName: &title,
	}
}
