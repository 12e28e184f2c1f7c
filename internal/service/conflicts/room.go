package conflicts

import (
	"context"
	"fmt"

	"github.com/m04kA/MSH-ConflictService/internal/domain"
)

// checkRoom runs two independent sub-checks: declared capacity against the
// candidate's student count, and overlapping bookings in the same room.
// Both may fire in the same call. A failed overlap query does not discard an
// already-detected capacity conflict.
func (s *Service) checkRoom(ctx context.Context, req *domain.BookingRequest, orgID int64) ([]domain.Conflict, error) {
	room, err := s.rooms.GetByID(ctx, *req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("room check: fetch room: %w", err)
	}

	var conflicts []domain.Conflict

	if room.MaxCapacity != nil && len(req.StudentIDs) > *room.MaxCapacity {
		name := room.Name
		conflicts = append(conflicts, domain.Conflict{
			Type:     domain.ConflictRoom,
			Severity: domain.SeverityError,
			Message: fmt.Sprintf("Room %s holds %d student(s), this lesson has %d",
				room.Name, *room.MaxCapacity, len(req.StudentIDs)),
			EntityName: &name,
		})
	}

	lessons, err := s.lessons.ListByRoom(ctx, orgID, room.ID, req.Start, req.End, req.ExcludeLessonID)
	if err != nil {
		s.logger.Warn("room check: list room lessons for room=%d: %v", room.ID, err)
		return conflicts, nil
	}

	if len(lessons) > 0 {
		title := lessons[0].Title
		conflicts = append(conflicts, domain.Conflict{
			Type:     domain.ConflictRoom,
			Severity: domain.SeverityError,
			Message: fmt.Sprintf("Room %s is already booked for %q at this time",
				room.Name, lessons[0].Title),
			EntityName: &title,
		})
	}

	return conflicts, nil
}
