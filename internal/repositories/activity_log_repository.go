package repositories

import (
	"context"

	"staffing-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ActivityLogRepository struct {
	DB *pgxpool.Pool
}

func NewActivityLogRepository(db *pgxpool.Pool) *ActivityLogRepository {
	return &ActivityLogRepository{DB: db}
}

// Create creates a new activity log entry
func (r *ActivityLogRepository) Create(ctx context.Context, l *models.ActivityLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO activity_logs (id, actor_id, actor_role, action_type, target_type, target_id, description, old_value, new_value)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
         RETURNING created_at`,
		l.ID, l.ActorID, l.ActorRole, l.ActionType, l.TargetType, l.TargetID, l.Description, l.OldValue, l.NewValue,
	).Scan(&l.CreatedAt)
}

// List retrieves log entries, newest first
func (r *ActivityLogRepository) List(ctx context.Context, f models.ActivityLogFilter) ([]*models.ActivityLog, error) {
	limit := f.Limit
	if limit <= 0 || limit > 1000 {
		limit = 200
	}
	rows, err := r.DB.Query(ctx,
		`SELECT id, actor_id, actor_role, action_type, target_type, target_id, description, old_value, new_value, created_at
         FROM activity_logs
         WHERE ($1 = '' OR target_type = $1) AND ($2 = '' OR target_id = $2) AND ($3 = '' OR actor_id = $3)
         ORDER BY created_at DESC
         LIMIT $4`,
		f.TargetType, f.TargetID, f.ActorID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.ActivityLog
	for rows.Next() {
		var l models.ActivityLog
		if err := rows.Scan(&l.ID, &l.ActorID, &l.ActorRole, &l.ActionType, &l.TargetType, &l.TargetID,
			&l.Description, &l.OldValue, &l.NewValue, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
