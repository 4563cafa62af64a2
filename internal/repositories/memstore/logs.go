package memstore

import (
	"context"

	"staffing-backend/internal/models"
)

type ActivityLogs struct{ s *Store }

func (r *ActivityLogs) Create(_ context.Context, l *models.ActivityLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if l.ID == "" {
		l.ID = newID()
	}
	l.CreatedAt = r.s.now()
	c := *l
	r.s.activityLogs = append(r.s.activityLogs, &c)
	return nil
}

// List returns newest first.
func (r *ActivityLogs) List(_ context.Context, f models.ActivityLogFilter) ([]*models.ActivityLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*models.ActivityLog
	for i := len(r.s.activityLogs) - 1; i >= 0; i-- {
		l := r.s.activityLogs[i]
		if f.TargetType != "" && l.TargetType != f.TargetType {
			continue
		}
		if f.TargetID != "" && l.TargetID != f.TargetID {
			continue
		}
		if f.ActorID != "" && l.ActorID != f.ActorID {
			continue
		}
		c := *l
		out = append(out, &c)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

type SMSLogs struct{ s *Store }

func (r *SMSLogs) Create(_ context.Context, l *models.SMSLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if l.ID == "" {
		l.ID = newID()
	}
	l.CreatedAt = r.s.now()
	c := *l
	r.s.smsLogs = append(r.s.smsLogs, &c)
	return nil
}

func (r *SMSLogs) ListByOrder(_ context.Context, orderID string) ([]*models.SMSLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*models.SMSLog
	for i := len(r.s.smsLogs) - 1; i >= 0; i-- {
		if l := r.s.smsLogs[i]; l.OrderID == orderID {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}
