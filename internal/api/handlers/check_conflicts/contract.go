package check_conflicts

import (
	"context"

	"github.com/m04kA/MSH-ConflictService/internal/domain"
)

type ConflictChecker interface {
	CheckConflicts(ctx context.Context, req *domain.BookingRequest, orgID int64) []domain.Conflict
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
