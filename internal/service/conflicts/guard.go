package conflicts

import (
	"context"

	"github.com/m04kA/MSH-ConflictService/internal/domain"
)

// checkFunc is one constraint check bound to its inputs. A check is a pure
// read: it returns the conflicts it detected or an error, never both
// meaningfully.
type checkFunc func(ctx context.Context) ([]domain.Conflict, error)

// runChecked runs a single check with fail-open semantics: a returned error
// or a panic is logged and replaced with an empty result, so one degraded
// data source can neither block the booking nor disturb sibling checks.
func (s *Service) runChecked(ctx context.Context, name string, fn checkFunc) (conflicts []domain.Conflict) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("conflict check %s panicked, treating as no conflicts: %v", name, r)
			conflicts = nil
		}
	}()

	result, err := fn(ctx)
	if err != nil {
		s.logger.Warn("conflict check %s failed, treating as no conflicts: %v", name, err)
		return nil
	}
	return result
}
