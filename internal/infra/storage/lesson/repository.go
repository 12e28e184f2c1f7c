// Package lesson reads existing calendar bookings for the conflict checks.
// Every query excludes cancelled lessons and, when the engine is re-checking
// an edit, the lesson being edited itself.
package lesson

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/MSH-ConflictService/internal/domain"
	"github.com/m04kA/MSH-ConflictService/pkg/psqlbuilder"
)

var lessonColumns = []string{
	"id",
	"title",
	"starts_at",
	"ends_at",
	"location_id",
	"status",
}

// Repository репозиторий для чтения существующих занятий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория занятий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByLinkedTeacher returns non-cancelled lessons of a portal-account
// teacher intersecting [start, end). The caller may widen the window with a
// travel buffer; the direct-overlap test stays on its side.
func (r *Repository) ListByLinkedTeacher(ctx context.Context, orgID, teacherUserID int64, start, end time.Time, excludeID *int64) ([]domain.Lesson, error) {
	return r.listOverlapping(ctx, "ListByLinkedTeacher",
		squirrel.Eq{"org_id": orgID, "teacher_user_id": teacherUserID},
		start, end, excludeID)
}

// ListByStandaloneTeacher returns non-cancelled lessons of a roster-only
// teacher intersecting [start, end).
func (r *Repository) ListByStandaloneTeacher(ctx context.Context, orgID, teacherID int64, start, end time.Time, excludeID *int64) ([]domain.Lesson, error) {
	return r.listOverlapping(ctx, "ListByStandaloneTeacher",
		squirrel.Eq{"org_id": orgID, "standalone_teacher_id": teacherID},
		start, end, excludeID)
}

// ListByRoom returns non-cancelled lessons in a room intersecting [start, end).
func (r *Repository) ListByRoom(ctx context.Context, orgID, roomID int64, start, end time.Time, excludeID *int64) ([]domain.Lesson, error) {
	return r.listOverlapping(ctx, "ListByRoom",
		squirrel.Eq{"org_id": orgID, "room_id": roomID},
		start, end, excludeID)
}

func (r *Repository) listOverlapping(ctx context.Context, op string, key squirrel.Eq, start, end time.Time, excludeID *int64) ([]domain.Lesson, error) {
	selectBuilder := psqlbuilder.Select(lessonColumns...).
		From("lessons").
		Where(key).
		Where(squirrel.NotEq{"status": domain.CancelledStatuses}).
		Where(squirrel.Lt{"starts_at": end}).
		Where(squirrel.Gt{"ends_at": start}).
		OrderBy("starts_at")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	var lessons []domain.Lesson
	for rows.Next() {
		var (
			lesson     domain.Lesson
			title      sql.NullString
			locationID sql.NullInt64
		)
		if err := rows.Scan(
			&lesson.ID,
			&title,
			&lesson.Start,
			&lesson.End,
			&locationID,
			&lesson.Status,
		); err != nil {
			return nil, fmt.Errorf("%w: %s - scan lesson: %v", ErrScanRow, op, err)
		}
		lesson.Title = title.String
		if locationID.Valid {
			lesson.LocationID = &locationID.Int64
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrExecQuery, op, err)
	}

	return lessons, nil
}

// ListParticipations returns every non-cancelled participation of the given
// students across the whole calendar, joined to the lesson time range. The
// overlap test happens in the engine: this is deliberately the widest read
// the conflict checks perform.
func (r *Repository) ListParticipations(ctx context.Context, orgID int64, studentIDs []int64, excludeID *int64) ([]domain.Participation, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}

	selectBuilder := psqlbuilder.Select(
		"ls.student_id",
		"l.starts_at",
		"l.ends_at",
	).
		From("lesson_students ls").
		Join("lessons l ON l.id = ls.lesson_id").
		Where(squirrel.Eq{
			"l.org_id":      orgID,
			"ls.student_id": studentIDs,
		}).
		Where(squirrel.NotEq{"l.status": domain.CancelledStatuses}).
		OrderBy("l.starts_at")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"l.id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListParticipations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListParticipations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var participations []domain.Participation
	for rows.Next() {
		var p domain.Participation
		if err := rows.Scan(&p.StudentID, &p.Start, &p.End); err != nil {
			return nil, fmt.Errorf("%w: ListParticipations - scan participation: %v", ErrScanRow, err)
		}
		participations = append(participations, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListParticipations - iterate rows: %v", ErrExecQuery, err)
	}

	return participations, nil
}
