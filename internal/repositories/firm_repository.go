package repositories

import (
	"context"

	"staffing-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FirmRepository struct {
	DB *pgxpool.Pool
}

func NewFirmRepository(db *pgxpool.Pool) *FirmRepository {
	return &FirmRepository{DB: db}
}

const firmColumns = `id, name, contact_name, phone, email, address, gst_number, created_at, updated_at`

func scanFirm(row pgx.Row) (*models.Firm, error) {
	var f models.Firm
	err := row.Scan(&f.ID, &f.Name, &f.ContactName, &f.Phone, &f.Email, &f.Address, &f.GSTNumber, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &f, nil
}

func (r *FirmRepository) Create(ctx context.Context, f *models.Firm) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	err := r.DB.QueryRow(ctx,
		`INSERT INTO firms(id, name, contact_name, phone, email, address, gst_number)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING created_at, updated_at`,
		f.ID, f.Name, f.ContactName, f.Phone, f.Email, f.Address, f.GSTNumber,
	).Scan(&f.CreatedAt, &f.UpdatedAt)
	return mapError(err)
}

func (r *FirmRepository) Get(ctx context.Context, id string) (*models.Firm, error) {
	return scanFirm(r.DB.QueryRow(ctx, `SELECT `+firmColumns+` FROM firms WHERE id=$1`, id))
}

func (r *FirmRepository) List(ctx context.Context) ([]*models.Firm, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+firmColumns+` FROM firms ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var firms []*models.Firm
	for rows.Next() {
		f, err := scanFirm(rows)
		if err != nil {
			return nil, err
		}
		firms = append(firms, f)
	}
	return firms, rows.Err()
}

func (r *FirmRepository) Update(ctx context.Context, f *models.Firm) error {
	err := r.DB.QueryRow(ctx,
		`UPDATE firms SET name=$1, contact_name=$2, phone=$3, email=$4, address=$5, gst_number=$6, updated_at=NOW()
         WHERE id=$7
         RETURNING created_at, updated_at`,
		f.Name, f.ContactName, f.Phone, f.Email, f.Address, f.GSTNumber, f.ID,
	).Scan(&f.CreatedAt, &f.UpdatedAt)
	return mapError(err)
}

func (r *FirmRepository) Delete(ctx context.Context, id string) error {
	return expectOne(r.DB.Exec(ctx, `DELETE FROM firms WHERE id=$1`, id))
}
