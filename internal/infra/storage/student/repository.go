package student

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/MSH-ConflictService/internal/domain"
	"github.com/m04kA/MSH-ConflictService/pkg/psqlbuilder"
)

// Repository репозиторий для чтения карточек учеников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория учеников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByIDs reads the roster records for the given student ids. Missing ids
// are simply absent from the result.
func (r *Repository) ListByIDs(ctx context.Context, ids []int64) ([]domain.Student, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"first_name",
		"last_name",
	).
		From("students").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var students []domain.Student
	for rows.Next() {
		var (
			s         domain.Student
			firstName sql.NullString
			lastName  sql.NullString
		)
		if err := rows.Scan(&s.ID, &firstName, &lastName); err != nil {
			return nil, fmt.Errorf("%w: ListByIDs - scan student: %v", ErrScanRow, err)
		}
		s.FirstName = firstName.String
		s.LastName = lastName.String
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByIDs - iterate rows: %v", ErrExecQuery, err)
	}

	return students, nil
}
