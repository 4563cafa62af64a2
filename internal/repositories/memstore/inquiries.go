package memstore

import (
	"context"
	"time"

	"staffing-backend/internal/models"
)

type Inquiries struct{ s *Store }

func (r *Inquiries) Create(_ context.Context, i *models.Inquiry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if i.ID == "" {
		i.ID = newID()
	}
	i.CreatedAt = r.s.now()
	i.UpdatedAt = i.CreatedAt
	c := *i
	r.s.inquiries[i.ID] = &c
	return nil
}

func (r *Inquiries) Get(_ context.Context, id string) (*models.Inquiry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i, ok := r.s.inquiries[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	c := *i
	return &c, nil
}

func (r *Inquiries) List(_ context.Context, status models.InquiryStatus) ([]*models.Inquiry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*models.Inquiry
	for _, i := range r.s.inquiries {
		if status == "" || i.Status == status {
			c := *i
			out = append(out, &c)
		}
	}
	sortByCreatedDesc(out, func(i *models.Inquiry) time.Time { return i.CreatedAt })
	return out, nil
}

func (r *Inquiries) UpdateStatus(_ context.Context, id string, status models.InquiryStatus, handledBy string) (*models.Inquiry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i, ok := r.s.inquiries[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	i.Status = status
	i.HandledBy = handledBy
	i.UpdatedAt = r.s.now()
	c := *i
	return &c, nil
}
