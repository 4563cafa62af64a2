package memstore

import (
	"context"
	"sort"

	"staffing-backend/internal/models"
)

type Firms struct{ s *Store }

func (r *Firms) Create(_ context.Context, f *models.Firm) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if f.ID == "" {
		f.ID = newID()
	}
	f.CreatedAt = r.s.now()
	f.UpdatedAt = f.CreatedAt
	c := *f
	r.s.firms[f.ID] = &c
	return nil
}

func (r *Firms) Get(_ context.Context, id string) (*models.Firm, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	f, ok := r.s.firms[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	c := *f
	return &c, nil
}

func (r *Firms) List(_ context.Context) ([]*models.Firm, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.Firm, 0, len(r.s.firms))
	for _, f := range r.s.firms {
		c := *f
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Firms) Update(_ context.Context, f *models.Firm) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.firms[f.ID]
	if !ok {
		return models.ErrNotFound
	}
	f.CreatedAt = cur.CreatedAt
	f.UpdatedAt = r.s.now()
	c := *f
	r.s.firms[f.ID] = &c
	return nil
}

func (r *Firms) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.firms[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.s.firms, id)
	return nil
}
