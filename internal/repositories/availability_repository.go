package repositories

import (
	"context"
	"errors"
	"time"

	"staffing-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AvailabilityRepository keeps one JSONB calendar per staff member.
type AvailabilityRepository struct {
	DB *pgxpool.Pool
}

func NewAvailabilityRepository(db *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{DB: db}
}

func emptyAvailability(staffID string) *models.Availability {
	return &models.Availability{StaffID: staffID, Dates: map[string]models.AvailabilityStatus{}}
}

func (r *AvailabilityRepository) scan(staffID string, row pgx.Row) (*models.Availability, error) {
	a := emptyAvailability(staffID)
	var updated time.Time
	err := row.Scan(&a.Dates, &updated)
	if errors.Is(err, pgx.ErrNoRows) {
		return emptyAvailability(staffID), nil
	}
	if err != nil {
		return nil, err
	}
	if a.Dates == nil {
		a.Dates = map[string]models.AvailabilityStatus{}
	}
	a.UpdatedAt = updated
	return a, nil
}

func (r *AvailabilityRepository) Get(ctx context.Context, staffID string) (*models.Availability, error) {
	return r.scan(staffID, r.DB.QueryRow(ctx,
		`SELECT dates, updated_at FROM availability WHERE staff_id=$1`, staffID))
}

// Merge uses jsonb concatenation so the incoming dates win.
func (r *AvailabilityRepository) Merge(ctx context.Context, staffID string, dates map[string]models.AvailabilityStatus) (*models.Availability, error) {
	return r.scan(staffID, r.DB.QueryRow(ctx,
		`INSERT INTO availability(staff_id, dates, updated_at) VALUES($1, $2, NOW())
         ON CONFLICT (staff_id) DO UPDATE SET dates = availability.dates || EXCLUDED.dates, updated_at = NOW()
         RETURNING dates, updated_at`,
		staffID, dates))
}

func (r *AvailabilityRepository) Clear(ctx context.Context, staffID string, dates []string) (*models.Availability, error) {
	return r.scan(staffID, r.DB.QueryRow(ctx,
		`UPDATE availability SET dates = dates - $2::text[], updated_at = NOW()
         WHERE staff_id=$1
         RETURNING dates, updated_at`,
		staffID, dates))
}

func (r *AvailabilityRepository) StatusOnDate(ctx context.Context, staffIDs []string, date string) (map[string]models.AvailabilityStatus, error) {
	out := make(map[string]models.AvailabilityStatus)
	if len(staffIDs) == 0 {
		return out, nil
	}
	rows, err := r.DB.Query(ctx,
		`SELECT staff_id, dates->>$2 FROM availability
         WHERE staff_id = ANY($1) AND dates->>$2 IS NOT NULL`,
		staffIDs, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, status string
		if err := rows.Scan(&id, &status); err != nil {
			return nil, err
		}
		out[id] = models.AvailabilityStatus(status)
	}
	return out, rows.Err()
}
