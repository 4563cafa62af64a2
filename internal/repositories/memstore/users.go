package memstore

import (
	"context"
	"sort"

	"staffing-backend/internal/models"
)

type Users struct{ s *Store }

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

func (r *Users) Create(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Phone == u.Phone {
			return models.ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = newID()
	}
	u.CreatedAt = r.s.now()
	u.UpdatedAt = u.CreatedAt
	r.s.users[u.ID] = copyUser(u)
	return nil
}

func (r *Users) Get(_ context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return copyUser(u), nil
}

func (r *Users) GetByPhone(_ context.Context, phone string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Phone == phone {
			return copyUser(u), nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *Users) List(_ context.Context, role models.Role) ([]*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*models.User
	for _, u := range r.s.users {
		if role == "" || u.Role == role {
			out = append(out, copyUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Users) Update(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.users[u.ID]
	if !ok {
		return models.ErrNotFound
	}
	for id, existing := range r.s.users {
		if id != u.ID && existing.Phone == u.Phone {
			return models.ErrDuplicate
		}
	}
	cur.Name = u.Name
	cur.Phone = u.Phone
	cur.Email = u.Email
	cur.CompanyName = u.CompanyName
	cur.Address = u.Address
	cur.GSTNumber = u.GSTNumber
	if u.PasswordHash != "" {
		cur.PasswordHash = u.PasswordHash
	}
	cur.UpdatedAt = r.s.now()
	*u = *copyUser(cur)
	return nil
}

func (r *Users) UpdateRole(_ context.Context, id string, role models.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return models.ErrNotFound
	}
	u.Role = role
	u.UpdatedAt = r.s.now()
	return nil
}

func (r *Users) SetActive(_ context.Context, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return models.ErrNotFound
	}
	u.IsActive = active
	u.UpdatedAt = r.s.now()
	return nil
}

func (r *Users) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

func (r *Users) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.users), nil
}
