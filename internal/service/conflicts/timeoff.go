package conflicts

import (
	"context"
	"fmt"

	"github.com/m04kA/MSH-ConflictService/internal/domain"
)

// checkTimeOff emits one warning when any approved time-off record overlaps
// the candidate window. Time off is an absence the front desk may knowingly
// override, so it never hard-blocks like a lesson double-booking does.
func (s *Service) checkTimeOff(ctx context.Context, req *domain.BookingRequest, orgID int64) ([]domain.Conflict, error) {
	records, err := s.teacherSchedule.ListTimeOff(ctx, orgID, req.Teacher.ID, req.Start, req.End)
	if err != nil {
		return nil, fmt.Errorf("time-off check: list records: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	message := "Teacher has time off during this lesson"
	if records[0].Reason != "" {
		message = fmt.Sprintf("Teacher has time off during this lesson: %s", records[0].Reason)
	}

	return []domain.Conflict{{
		Type:     domain.ConflictTimeOff,
		Severity: domain.SeverityWarning,
		Message:  message,
	}}, nil
}
