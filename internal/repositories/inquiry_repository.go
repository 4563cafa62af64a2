package repositories

import (
	"context"

	"staffing-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InquiryRepository struct {
	DB *pgxpool.Pool
}

func NewInquiryRepository(db *pgxpool.Pool) *InquiryRepository {
	return &InquiryRepository{DB: db}
}

const inquiryColumns = `id, name, phone, email, event_date, attendees, message, status, handled_by, created_at, updated_at`

func scanInquiry(row pgx.Row) (*models.Inquiry, error) {
	var i models.Inquiry
	err := row.Scan(&i.ID, &i.Name, &i.Phone, &i.Email, &i.EventDate, &i.Attendees, &i.Message,
		&i.Status, &i.HandledBy, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &i, nil
}

func (r *InquiryRepository) Create(ctx context.Context, i *models.Inquiry) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	err := r.DB.QueryRow(ctx,
		`INSERT INTO inquiries(id, name, phone, email, event_date, attendees, message, status)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING created_at, updated_at`,
		i.ID, i.Name, i.Phone, i.Email, i.EventDate, i.Attendees, i.Message, i.Status,
	).Scan(&i.CreatedAt, &i.UpdatedAt)
	return mapError(err)
}

func (r *InquiryRepository) Get(ctx context.Context, id string) (*models.Inquiry, error) {
	return scanInquiry(r.DB.QueryRow(ctx, `SELECT `+inquiryColumns+` FROM inquiries WHERE id=$1`, id))
}

func (r *InquiryRepository) List(ctx context.Context, status models.InquiryStatus) ([]*models.Inquiry, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+inquiryColumns+` FROM inquiries WHERE ($1 = '' OR status = $1) ORDER BY created_at DESC`,
		string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Inquiry
	for rows.Next() {
		i, err := scanInquiry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (r *InquiryRepository) UpdateStatus(ctx context.Context, id string, status models.InquiryStatus, handledBy string) (*models.Inquiry, error) {
	return scanInquiry(r.DB.QueryRow(ctx,
		`UPDATE inquiries SET status=$1, handled_by=$2, updated_at=NOW() WHERE id=$3
         RETURNING `+inquiryColumns,
		string(status), handledBy, id))
}
