package memstore

import (
	"context"
	"sort"

	"staffing-backend/internal/models"
)

type Staff struct{ s *Store }

func copyStaff(st *models.Staff) *models.Staff {
	c := *st
	if st.UserID != nil {
		id := *st.UserID
		c.UserID = &id
	}
	if st.BankDetails != nil {
		b := *st.BankDetails
		c.BankDetails = &b
	}
	if st.Compensation != nil {
		comp := *st.Compensation
		c.Compensation = &comp
	}
	return &c
}

func (r *Staff) Create(_ context.Context, st *models.Staff) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if st.UserID != nil {
		for _, existing := range r.s.staff {
			if existing.UserID != nil && *existing.UserID == *st.UserID {
				return models.ErrDuplicate
			}
		}
	}
	if st.ID == "" {
		st.ID = newID()
	}
	st.CreatedAt = r.s.now()
	st.UpdatedAt = st.CreatedAt
	r.s.staff[st.ID] = copyStaff(st)
	return nil
}

func (r *Staff) Get(_ context.Context, id string) (*models.Staff, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	st, ok := r.s.staff[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return copyStaff(st), nil
}

func (r *Staff) GetByUserID(_ context.Context, userID string) (*models.Staff, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, st := range r.s.staff {
		if st.UserID != nil && *st.UserID == userID {
			return copyStaff(st), nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *Staff) GetMany(_ context.Context, ids []string) ([]*models.Staff, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.Staff, 0, len(ids))
	for _, id := range ids {
		if st, ok := r.s.staff[id]; ok {
			out = append(out, copyStaff(st))
		}
	}
	return out, nil
}

func (r *Staff) List(_ context.Context, filter models.StaffFilter) ([]*models.Staff, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*models.Staff
	for _, st := range r.s.staff {
		if filter.Role != "" && st.Role != filter.Role {
			continue
		}
		if filter.ActiveOnly && !st.IsActive {
			continue
		}
		out = append(out, copyStaff(st))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Staff) Update(_ context.Context, st *models.Staff) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.staff[st.ID]
	if !ok {
		return models.ErrNotFound
	}
	st.CreatedAt = cur.CreatedAt
	st.IsActive = cur.IsActive
	st.UpdatedAt = r.s.now()
	r.s.staff[st.ID] = copyStaff(st)
	return nil
}

func (r *Staff) SetActive(_ context.Context, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	st, ok := r.s.staff[id]
	if !ok {
		return models.ErrNotFound
	}
	st.IsActive = active
	st.UpdatedAt = r.s.now()
	return nil
}
