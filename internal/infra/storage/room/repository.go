package room

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/MSH-ConflictService/internal/domain"
	"github.com/m04kA/MSH-ConflictService/pkg/psqlbuilder"
)

// Repository репозиторий для чтения метаданных комнат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория комнат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID reads one room's metadata.
func (r *Repository) GetByID(ctx context.Context, roomID int64) (*domain.Room, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"location_id",
		"max_capacity",
	).
		From("rooms").
		Where(squirrel.Eq{"id": roomID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		room        domain.Room
		locationID  sql.NullInt64
		maxCapacity sql.NullInt64
	)

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&room.ID,
		&room.Name,
		&locationID,
		&maxCapacity,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan room: %v", ErrScanRow, err)
	}

	if locationID.Valid {
		room.LocationID = &locationID.Int64
	}
	if maxCapacity.Valid {
		capacity := int(maxCapacity.Int64)
		room.MaxCapacity = &capacity
	}

	return &room, nil
}
