package repositories

import (
	"context"

	"staffing-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, name, phone, email, password_hash, role, company_name, address, gst_number, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Phone, &u.Email, &u.PasswordHash, &u.Role,
		&u.CompanyName, &u.Address, &u.GSTNumber, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	err := r.DB.QueryRow(ctx,
		`INSERT INTO users(id, name, phone, email, password_hash, role, company_name, address, gst_number, is_active)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
         RETURNING created_at, updated_at`,
		u.ID, u.Name, u.Phone, u.Email, u.PasswordHash, u.Role, u.CompanyName, u.Address, u.GSTNumber, u.IsActive,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	return mapError(err)
}

func (r *UserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	return scanUser(r.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	return scanUser(r.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE phone=$1`, phone))
}

// List returns all users, or only those with the given role
func (r *UserRepository) List(ctx context.Context, role models.Role) ([]*models.User, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE ($1 = '' OR role = $1) ORDER BY name`, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update rewrites the profile; an empty PasswordHash keeps the stored one
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	err := r.DB.QueryRow(ctx,
		`UPDATE users SET name=$1, phone=$2, email=$3, company_name=$4, address=$5, gst_number=$6,
		        password_hash = CASE WHEN $7 = '' THEN password_hash ELSE $7 END,
		        updated_at=NOW()
         WHERE id=$8
         RETURNING role, is_active, created_at, updated_at`,
		u.Name, u.Phone, u.Email, u.CompanyName, u.Address, u.GSTNumber, u.PasswordHash, u.ID,
	).Scan(&u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return mapError(err)
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role models.Role) error {
	return expectOne(r.DB.Exec(ctx,
		`UPDATE users SET role=$1, updated_at=NOW() WHERE id=$2`, role, id))
}

func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	return expectOne(r.DB.Exec(ctx,
		`UPDATE users SET is_active=$1, updated_at=NOW() WHERE id=$2`, active, id))
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return expectOne(r.DB.Exec(ctx, `DELETE FROM users WHERE id=$1`, id))
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
