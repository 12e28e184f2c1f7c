package conflicts

import (
	"context"
	"fmt"

	"github.com/m04kA/MSH-ConflictService/internal/domain"
	"github.com/m04kA/MSH-ConflictService/pkg/types"
)

// checkAvailability tests the booking's time of day against the teacher's
// declared windows for that day of week. No declared windows means the
// teacher never stated availability, which is not itself a conflict; one or
// more windows with none covering the booking is a warning.
func (s *Service) checkAvailability(ctx context.Context, req *domain.BookingRequest, orgID int64, policy domain.OrgPolicy) ([]domain.Conflict, error) {
	loc := policy.Location()
	localStart := req.Start.In(loc)
	dayOfWeek := int(localStart.Weekday())

	windows, err := s.teacherSchedule.ListAvailability(ctx, orgID, req.Teacher.ID, dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("availability check: list windows: %w", err)
	}
	if len(windows) == 0 {
		return nil, nil
	}

	start := types.NewTimeString(localStart)
	end := types.NewTimeString(req.End.In(loc))

	for _, window := range windows {
		if window.Covers(start, end) {
			return nil, nil
		}
	}

	return []domain.Conflict{{
		Type:     domain.ConflictAvailability,
		Severity: domain.SeverityWarning,
		Message:  fmt.Sprintf("Requested time falls outside the teacher's availability on %s", localStart.Weekday()),
	}}, nil
}
