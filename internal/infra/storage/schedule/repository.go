// Package schedule reads a teacher's declared schedule: availability
// windows, approved time off and externally-synced busy blocks. All queries
// are keyed by the teacher's linked account identity.
package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/MSH-ConflictService/internal/domain"
	"github.com/m04kA/MSH-ConflictService/pkg/psqlbuilder"
)

// Repository репозиторий для чтения расписания преподавателя
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListAvailability returns the teacher's availability windows for one day of
// week (0 = Sunday), ordered by start time.
func (r *Repository) ListAvailability(ctx context.Context, orgID, teacherUserID int64, dayOfWeek int) ([]domain.AvailabilityWindow, error) {
	query, args, err := psqlbuilder.Select(
		"start_time",
		"end_time",
	).
		From("availability_windows").
		Where(squirrel.Eq{
			"org_id":          orgID,
			"teacher_user_id": teacherUserID,
			"day_of_week":     dayOfWeek,
		}).
		OrderBy("start_time").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailability - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailability - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var windows []domain.AvailabilityWindow
	for rows.Next() {
		var w domain.AvailabilityWindow
		if err := rows.Scan(&w.StartTime, &w.EndTime); err != nil {
			return nil, fmt.Errorf("%w: ListAvailability - scan window: %v", ErrScanRow, err)
		}
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailability - iterate rows: %v", ErrExecQuery, err)
	}

	return windows, nil
}

// ListTimeOff returns approved time-off records overlapping [start, end).
func (r *Repository) ListTimeOff(ctx context.Context, orgID, teacherUserID int64, start, end time.Time) ([]domain.TimeOff, error) {
	query, args, err := psqlbuilder.Select(
		"reason",
		"starts_at",
		"ends_at",
	).
		From("time_off").
		Where(squirrel.Eq{
			"org_id":          orgID,
			"teacher_user_id": teacherUserID,
		}).
		Where(squirrel.Lt{"starts_at": end}).
		Where(squirrel.Gt{"ends_at": start}).
		OrderBy("starts_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListTimeOff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimeOff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var records []domain.TimeOff
	for rows.Next() {
		var (
			record domain.TimeOff
			reason sql.NullString
		)
		if err := rows.Scan(&reason, &record.Start, &record.End); err != nil {
			return nil, fmt.Errorf("%w: ListTimeOff - scan record: %v", ErrScanRow, err)
		}
		record.Reason = reason.String
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTimeOff - iterate rows: %v", ErrExecQuery, err)
	}

	return records, nil
}

// ListBusyBlocks returns externally-synced busy blocks overlapping [start, end).
func (r *Repository) ListBusyBlocks(ctx context.Context, orgID, teacherUserID int64, start, end time.Time) ([]domain.BusyBlock, error) {
	query, args, err := psqlbuilder.Select(
		"title",
		"starts_at",
		"ends_at",
	).
		From("external_busy_blocks").
		Where(squirrel.Eq{
			"org_id":          orgID,
			"teacher_user_id": teacherUserID,
		}).
		Where(squirrel.Lt{"starts_at": end}).
		Where(squirrel.Gt{"ends_at": start}).
		OrderBy("starts_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBusyBlocks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBusyBlocks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var blocks []domain.BusyBlock
	for rows.Next() {
		var (
			block domain.BusyBlock
			title sql.NullString
		)
		if err := rows.Scan(&title, &block.Start, &block.End); err != nil {
			return nil, fmt.Errorf("%w: ListBusyBlocks - scan block: %v", ErrScanRow, err)
		}
		block.Title = title.String
		blocks = append(blocks, block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBusyBlocks - iterate rows: %v", ErrExecQuery, err)
	}

	return blocks, nil
}
