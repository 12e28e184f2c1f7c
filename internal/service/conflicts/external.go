package conflicts

import (
	"context"
	"fmt"

	"github.com/m04kA/MSH-ConflictService/internal/domain"
)

// checkExternalCalendar emits one warning when the teacher's synced external
// calendar shows busy time over the candidate window. Multiple overlapping
// blocks are summarized into a single conflict named after the first block.
func (s *Service) checkExternalCalendar(ctx context.Context, req *domain.BookingRequest, orgID int64) ([]domain.Conflict, error) {
	blocks, err := s.teacherSchedule.ListBusyBlocks(ctx, orgID, req.Teacher.ID, req.Start, req.End)
	if err != nil {
		return nil, fmt.Errorf("external-calendar check: list busy blocks: %w", err)
	}
	if len(blocks) == 0 {
		return nil, nil
	}

	title := blocks[0].Title
	if title == "" {
		title = "Busy"
	}

	return []domain.Conflict{{
		Type:       domain.ConflictExternalCalendar,
		Severity:   domain.SeverityWarning,
		Message:    fmt.Sprintf("Teacher's external calendar shows %q at this time", title),
		EntityName: &title,
	}}, nil
}
