package org

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/MSH-ConflictService/internal/domain"
	"github.com/m04kA/MSH-ConflictService/pkg/psqlbuilder"
)

// Repository репозиторий для чтения настроек и закрытий организации
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория организации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetPolicy reads the organisation's scheduling policy. Absent optional
// fields fall back to the policy defaults.
func (r *Repository) GetPolicy(ctx context.Context, orgID int64) (*domain.OrgPolicy, error) {
	query, args, err := psqlbuilder.Select(
		"block_on_closure",
		"travel_buffer_minutes",
		"timezone",
	).
		From("org_settings").
		Where(squirrel.Eq{"org_id": orgID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPolicy - build select query: %v", ErrBuildQuery, err)
	}

	var (
		blockOnClosure sql.NullBool
		bufferMinutes  sql.NullInt64
		timezone       sql.NullString
	)

	err = r.db.QueryRowContext(ctx, query, args...).Scan(&blockOnClosure, &bufferMinutes, &timezone)
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPolicy - scan settings: %v", ErrScanRow, err)
	}

	policy := domain.DefaultOrgPolicy()
	policy.BlockOnClosure = blockOnClosure.Bool
	policy.TravelBufferMinutes = int(bufferMinutes.Int64)
	if timezone.Valid && timezone.String != "" {
		policy.Timezone = timezone.String
	}

	return &policy, nil
}

// ListClosuresByDate returns the organisation's closures on the given date
// (date-only granularity, resolved by the caller in the org timezone).
func (r *Repository) ListClosuresByDate(ctx context.Context, orgID int64, date time.Time) ([]domain.Closure, error) {
	query, args, err := psqlbuilder.Select(
		"reason",
		"location_id",
		"applies_to_all_locations",
	).
		From("closures").
		Where(squirrel.Eq{
			"org_id":       orgID,
			"closure_date": date.Format(domain.DateFormat),
		}).
		OrderBy("id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListClosuresByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListClosuresByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var closures []domain.Closure
	for rows.Next() {
		var (
			closure    domain.Closure
			reason     sql.NullString
			locationID sql.NullInt64
		)
		if err := rows.Scan(&reason, &locationID, &closure.AppliesToAllLocations); err != nil {
			return nil, fmt.Errorf("%w: ListClosuresByDate - scan closure: %v", ErrScanRow, err)
		}
		closure.Reason = reason.String
		if locationID.Valid {
			closure.LocationID = &locationID.Int64
		}
		closures = append(closures, closure)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListClosuresByDate - iterate rows: %v", ErrExecQuery, err)
	}

	return closures, nil
}
