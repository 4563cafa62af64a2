package memstore

import (
	"context"

	"staffing-backend/internal/models"
)

type Availability struct{ s *Store }

func copyAvailability(a *models.Availability) *models.Availability {
	c := &models.Availability{
		StaffID:   a.StaffID,
		Dates:     make(map[string]models.AvailabilityStatus, len(a.Dates)),
		UpdatedAt: a.UpdatedAt,
	}
	for d, st := range a.Dates {
		c.Dates[d] = st
	}
	return c
}

func (r *Availability) Get(_ context.Context, staffID string) (*models.Availability, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.availability[staffID]
	if !ok {
		return &models.Availability{StaffID: staffID, Dates: map[string]models.AvailabilityStatus{}}, nil
	}
	return copyAvailability(a), nil
}

func (r *Availability) Merge(_ context.Context, staffID string, dates map[string]models.AvailabilityStatus) (*models.Availability, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.availability[staffID]
	if !ok {
		a = &models.Availability{StaffID: staffID, Dates: map[string]models.AvailabilityStatus{}}
		r.s.availability[staffID] = a
	}
	for d, st := range dates {
		a.Dates[d] = st
	}
	a.UpdatedAt = r.s.now()
	return copyAvailability(a), nil
}

func (r *Availability) Clear(_ context.Context, staffID string, dates []string) (*models.Availability, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.availability[staffID]
	if !ok {
		return &models.Availability{StaffID: staffID, Dates: map[string]models.AvailabilityStatus{}}, nil
	}
	for _, d := range dates {
		delete(a.Dates, d)
	}
	a.UpdatedAt = r.s.now()
	return copyAvailability(a), nil
}

func (r *Availability) StatusOnDate(_ context.Context, staffIDs []string, date string) (map[string]models.AvailabilityStatus, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make(map[string]models.AvailabilityStatus)
	for _, id := range staffIDs {
		if a, ok := r.s.availability[id]; ok {
			if st, ok := a.Dates[date]; ok {
				out[id] = st
			}
		}
	}
	return out, nil
}
