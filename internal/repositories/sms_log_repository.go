package repositories

import (
	"context"

	"staffing-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SMSLogRepository struct {
	DB *pgxpool.Pool
}

func NewSMSLogRepository(db *pgxpool.Pool) *SMSLogRepository {
	return &SMSLogRepository{DB: db}
}

func (r *SMSLogRepository) Create(ctx context.Context, l *models.SMSLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO sms_logs (id, order_id, staff_id, phone, message_type, message, status, error_message, reference_id, cost)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
         RETURNING created_at`,
		l.ID, l.OrderID, l.StaffID, l.Phone, l.MessageType, l.Message, l.Status, l.ErrorMessage, l.ReferenceID, l.Cost,
	).Scan(&l.CreatedAt)
}

func (r *SMSLogRepository) ListByOrder(ctx context.Context, orderID string) ([]*models.SMSLog, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, order_id, staff_id, phone, message_type, message, status, error_message, reference_id, cost, created_at
         FROM sms_logs WHERE order_id=$1 ORDER BY created_at DESC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.SMSLog
	for rows.Next() {
		var l models.SMSLog
		if err := rows.Scan(&l.ID, &l.OrderID, &l.StaffID, &l.Phone, &l.MessageType, &l.Message, &l.Status,
			&l.ErrorMessage, &l.ReferenceID, &l.Cost, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
