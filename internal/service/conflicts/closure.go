package conflicts

import (
	"context"
	"fmt"

	"github.com/m04kA/MSH-ConflictService/internal/domain"
)

// checkClosures looks up closure records for the booking's date. A closure
// applies when it covers all locations or matches the booking's location.
// At most one conflict is emitted, carrying the first applicable closure's
// reason; severity follows the org policy.
func (s *Service) checkClosures(ctx context.Context, req *domain.BookingRequest, orgID int64, policy domain.OrgPolicy) ([]domain.Conflict, error) {
	date := req.Start.In(policy.Location())

	closures, err := s.closures.ListClosuresByDate(ctx, orgID, date)
	if err != nil {
		return nil, fmt.Errorf("closure check: list closures: %w", err)
	}

	for _, closure := range closures {
		if !closure.AppliesTo(req.LocationID) {
			continue
		}

		severity := domain.SeverityWarning
		if policy.BlockOnClosure {
			severity = domain.SeverityError
		}

		message := "The school is closed on this date"
		if closure.Reason != "" {
			message = fmt.Sprintf("The school is closed on this date: %s", closure.Reason)
		}

		return []domain.Conflict{{
			Type:     domain.ConflictClosure,
			Severity: severity,
			Message:  message,
		}}, nil
	}

	return nil, nil
}
