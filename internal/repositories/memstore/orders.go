package memstore

import (
	"context"
	"sort"

	"staffing-backend/internal/models"
)

type Orders struct{ s *Store }

// copyOrder must be called with the lock held; it joins the client name.
func (r *Orders) copyOrder(o *models.Order) *models.Order {
	c := *o
	c.AssignedStaff = append([]string{}, o.AssignedStaff...)
	if u, ok := r.s.users[o.UserID]; ok {
		c.ClientName = u.Name
	}
	return &c
}

func (r *Orders) Create(_ context.Context, o *models.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if o.ID == "" {
		o.ID = newID()
	}
	if o.AssignedStaff == nil {
		o.AssignedStaff = []string{}
	}
	o.CreatedAt = r.s.now()
	o.UpdatedAt = o.CreatedAt
	stored := *o
	stored.AssignedStaff = append([]string{}, o.AssignedStaff...)
	r.s.orders[o.ID] = &stored
	*o = *r.copyOrder(&stored)
	return nil
}

func (r *Orders) Get(_ context.Context, id string) (*models.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return r.copyOrder(o), nil
}

func (r *Orders) List(_ context.Context, f models.OrderFilter) ([]*models.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*models.Order
	for _, o := range r.s.orders {
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.StaffID != "" && !o.HasStaff(f.StaffID) {
			continue
		}
		if f.From != "" && o.Date < f.From {
			continue
		}
		if f.To != "" && o.Date > f.To {
			continue
		}
		out = append(out, r.copyOrder(o))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *Orders) UpdateDetails(_ context.Context, o *models.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.orders[o.ID]
	if !ok {
		return models.ErrNotFound
	}
	if cur.Status != models.OrderPending {
		return models.ErrConflict
	}
	cur.Date = o.Date
	cur.EventType = o.EventType
	cur.Venue = o.Venue
	cur.Attendees = o.Attendees
	cur.MenuType = o.MenuType
	cur.Notes = o.Notes
	cur.UpdatedAt = r.s.now()
	*o = *r.copyOrder(cur)
	return nil
}

func (r *Orders) TransitionStatus(_ context.Context, id string, from, to models.OrderStatus) (*models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if o.Status != from {
		return nil, models.ErrConflict
	}
	o.Status = to
	o.UpdatedAt = r.s.now()
	return r.copyOrder(o), nil
}

func statusIn(s models.OrderStatus, allowed []models.OrderStatus) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}

func (r *Orders) AddStaff(_ context.Context, id, staffID string, allowed []models.OrderStatus) (*models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if !statusIn(o.Status, allowed) {
		return nil, models.ErrConflict
	}
	if !o.HasStaff(staffID) {
		o.AssignedStaff = append(o.AssignedStaff, staffID)
		o.UpdatedAt = r.s.now()
	}
	return r.copyOrder(o), nil
}

func (r *Orders) RemoveStaff(_ context.Context, id, staffID string, allowed []models.OrderStatus) (*models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if !statusIn(o.Status, allowed) {
		return nil, models.ErrConflict
	}
	kept := o.AssignedStaff[:0]
	for _, sid := range o.AssignedStaff {
		if sid != staffID {
			kept = append(kept, sid)
		}
	}
	if len(kept) != len(o.AssignedStaff) {
		o.UpdatedAt = r.s.now()
	}
	o.AssignedStaff = kept
	return r.copyOrder(o), nil
}

func (r *Orders) SetInvoiceStatus(_ context.Context, id string, status models.InvoiceStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return models.ErrNotFound
	}
	o.InvoiceStatus = status
	o.UpdatedAt = r.s.now()
	return nil
}

func (r *Orders) AssignmentCounts(_ context.Context, staffIDs []string) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := make(map[string]bool, len(staffIDs))
	for _, id := range staffIDs {
		wanted[id] = true
	}
	counts := make(map[string]int)
	for _, o := range r.s.orders {
		for _, sid := range o.AssignedStaff {
			if wanted[sid] {
				counts[sid]++
			}
		}
	}
	return counts, nil
}
