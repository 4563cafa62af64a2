package repositories

import (
	"context"
	"errors"

	"staffing-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PayoutRepository struct {
	DB *pgxpool.Pool
}

func NewPayoutRepository(db *pgxpool.Pool) *PayoutRepository {
	return &PayoutRepository{DB: db}
}

const payoutColumns = `id, order_id, staff_id, amount, status, notes, created_by, created_at, paid_at`

func scanPayout(row pgx.Row) (*models.Payout, error) {
	var p models.Payout
	err := row.Scan(&p.ID, &p.OrderID, &p.StaffID, &p.Amount, &p.Status, &p.Notes, &p.CreatedBy, &p.CreatedAt, &p.PaidAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *PayoutRepository) list(ctx context.Context, query string, arg any) ([]*models.Payout, error) {
	rows, err := r.DB.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Payout
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PayoutRepository) Create(ctx context.Context, p *models.Payout) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	err := r.DB.QueryRow(ctx,
		`INSERT INTO payouts(id, order_id, staff_id, amount, status, notes, created_by)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING created_at`,
		p.ID, p.OrderID, p.StaffID, p.Amount, p.Status, p.Notes, p.CreatedBy,
	).Scan(&p.CreatedAt)
	return mapError(err)
}

func (r *PayoutRepository) Get(ctx context.Context, id string) (*models.Payout, error) {
	return scanPayout(r.DB.QueryRow(ctx, `SELECT `+payoutColumns+` FROM payouts WHERE id=$1`, id))
}

func (r *PayoutRepository) ListByOrder(ctx context.Context, orderID string) ([]*models.Payout, error) {
	return r.list(ctx, `SELECT `+payoutColumns+` FROM payouts WHERE order_id=$1 ORDER BY created_at DESC`, orderID)
}

func (r *PayoutRepository) ListByStaff(ctx context.Context, staffID string) ([]*models.Payout, error) {
	return r.list(ctx, `SELECT `+payoutColumns+` FROM payouts WHERE staff_id=$1 ORDER BY created_at DESC`, staffID)
}

// MarkPaid only succeeds once; a second call reports a conflict.
func (r *PayoutRepository) MarkPaid(ctx context.Context, id string) (*models.Payout, error) {
	p, err := scanPayout(r.DB.QueryRow(ctx,
		`UPDATE payouts SET status='paid', paid_at=NOW() WHERE id=$1 AND status='pending'
         RETURNING `+payoutColumns, id))
	if errors.Is(err, models.ErrNotFound) {
		if _, getErr := r.Get(ctx, id); getErr == nil {
			return nil, models.ErrConflict
		}
	}
	return p, err
}
