package memstore

import (
	"context"
	"time"

	"staffing-backend/internal/models"
)

type Payouts struct{ s *Store }

func copyPayout(p *models.Payout) *models.Payout {
	c := *p
	if p.PaidAt != nil {
		t := *p.PaidAt
		c.PaidAt = &t
	}
	return &c
}

func (r *Payouts) Create(_ context.Context, p *models.Payout) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.payouts {
		if existing.OrderID == p.OrderID && existing.StaffID == p.StaffID {
			return models.ErrDuplicate
		}
	}
	if p.ID == "" {
		p.ID = newID()
	}
	p.CreatedAt = r.s.now()
	r.s.payouts[p.ID] = copyPayout(p)
	return nil
}

func (r *Payouts) Get(_ context.Context, id string) (*models.Payout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.payouts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return copyPayout(p), nil
}

func (r *Payouts) list(match func(*models.Payout) bool) []*models.Payout {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*models.Payout
	for _, p := range r.s.payouts {
		if match(p) {
			out = append(out, copyPayout(p))
		}
	}
	sortByCreatedDesc(out, func(p *models.Payout) time.Time { return p.CreatedAt })
	return out
}

func (r *Payouts) ListByOrder(_ context.Context, orderID string) ([]*models.Payout, error) {
	return r.list(func(p *models.Payout) bool { return p.OrderID == orderID }), nil
}

func (r *Payouts) ListByStaff(_ context.Context, staffID string) ([]*models.Payout, error) {
	return r.list(func(p *models.Payout) bool { return p.StaffID == staffID }), nil
}

func (r *Payouts) MarkPaid(_ context.Context, id string) (*models.Payout, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.payouts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if p.Status == models.PayoutPaid {
		return nil, models.ErrConflict
	}
	now := r.s.now()
	p.Status = models.PayoutPaid
	p.PaidAt = &now
	return copyPayout(p), nil
}
