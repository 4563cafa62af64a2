package repositories

import (
	"context"

	"staffing-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StaffRepository struct {
	DB *pgxpool.Pool
}

func NewStaffRepository(db *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{DB: db}
}

const staffColumns = `id, user_id, name, phone, role, staff_type, bank_details, compensation, is_active, created_at, updated_at`

func scanStaff(row pgx.Row) (*models.Staff, error) {
	var s models.Staff
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Phone, &s.Role, &s.StaffType,
		&s.BankDetails, &s.Compensation, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

func (r *StaffRepository) collect(rows pgx.Rows, err error) ([]*models.Staff, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *StaffRepository) Create(ctx context.Context, s *models.Staff) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	err := r.DB.QueryRow(ctx,
		`INSERT INTO staff(id, user_id, name, phone, role, staff_type, bank_details, compensation, is_active)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
         RETURNING created_at, updated_at`,
		s.ID, s.UserID, s.Name, s.Phone, s.Role, s.StaffType, s.BankDetails, s.Compensation, s.IsActive,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	return mapError(err)
}

func (r *StaffRepository) Get(ctx context.Context, id string) (*models.Staff, error) {
	return scanStaff(r.DB.QueryRow(ctx, `SELECT `+staffColumns+` FROM staff WHERE id=$1`, id))
}

func (r *StaffRepository) GetByUserID(ctx context.Context, userID string) (*models.Staff, error) {
	return scanStaff(r.DB.QueryRow(ctx, `SELECT `+staffColumns+` FROM staff WHERE user_id=$1`, userID))
}

// GetMany loads several staff records in one round trip. Unknown ids are skipped.
func (r *StaffRepository) GetMany(ctx context.Context, ids []string) ([]*models.Staff, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.collect(r.DB.Query(ctx,
		`SELECT `+staffColumns+` FROM staff WHERE id = ANY($1) ORDER BY name`, ids))
}

func (r *StaffRepository) List(ctx context.Context, filter models.StaffFilter) ([]*models.Staff, error) {
	return r.collect(r.DB.Query(ctx,
		`SELECT `+staffColumns+` FROM staff
         WHERE ($1 = '' OR role = $1) AND (NOT $2 OR is_active)
         ORDER BY name`,
		string(filter.Role), filter.ActiveOnly))
}

func (r *StaffRepository) Update(ctx context.Context, s *models.Staff) error {
	err := r.DB.QueryRow(ctx,
		`UPDATE staff SET user_id=$1, name=$2, phone=$3, role=$4, staff_type=$5, bank_details=$6, compensation=$7, updated_at=NOW()
         WHERE id=$8
         RETURNING is_active, created_at, updated_at`,
		s.UserID, s.Name, s.Phone, s.Role, s.StaffType, s.BankDetails, s.Compensation, s.ID,
	).Scan(&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return mapError(err)
}

func (r *StaffRepository) SetActive(ctx context.Context, id string, active bool) error {
	return expectOne(r.DB.Exec(ctx,
		`UPDATE staff SET is_active=$1, updated_at=NOW() WHERE id=$2`, active, id))
}
