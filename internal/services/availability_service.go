package services

import (
	"context"
	"fmt"

	"staffing-backend/internal/auth"
	"staffing-backend/internal/models"
)

type AvailabilityService struct {
	availability AvailabilityStore
	staff        StaffStore
}

func NewAvailabilityService(availability AvailabilityStore, staff StaffStore) *AvailabilityService {
	return &AvailabilityService{availability: availability, staff: staff}
}

// authorize allows HR, admins and operational managers on any record, and staff on their own.
func (s *AvailabilityService) authorize(ctx context.Context, session auth.Session, staffID string) error {
	if _, err := s.staff.Get(ctx, staffID); err != nil {
		return err
	}
	if session.HasRole(models.RoleAdmin, models.RoleHR, models.RoleOperationalManager) {
		return nil
	}
	mine, err := s.staff.GetByUserID(ctx, session.UserID)
	if err != nil || mine.ID != staffID {
		return ErrForbidden
	}
	return nil
}

func (s *AvailabilityService) Get(ctx context.Context, session auth.Session, staffID string) (*models.Availability, error) {
	if err := s.authorize(ctx, session, staffID); err != nil {
		return nil, err
	}
	return s.availability.Get(ctx, staffID)
}

// Set merges dates into the registry; later values for a date win.
func (s *AvailabilityService) Set(ctx context.Context, session auth.Session, staffID string, req *models.SetAvailabilityRequest) (*models.Availability, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, session, staffID); err != nil {
		return nil, err
	}
	return s.availability.Merge(ctx, staffID, req.Dates)
}

func (s *AvailabilityService) Clear(ctx context.Context, session auth.Session, staffID string, req *models.ClearAvailabilityRequest) (*models.Availability, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, session, staffID); err != nil {
		return nil, err
	}
	return s.availability.Clear(ctx, staffID, req.Dates)
}

// myStaffID resolves the staff record linked to the caller.
func (s *AvailabilityService) myStaffID(ctx context.Context, session auth.Session) (string, error) {
	st, err := s.staff.GetByUserID(ctx, session.UserID)
	if err != nil {
		return "", fmt.Errorf("no staff record linked to this account: %w", err)
	}
	return st.ID, nil
}

func (s *AvailabilityService) GetMine(ctx context.Context, session auth.Session) (*models.Availability, error) {
	id, err := s.myStaffID(ctx, session)
	if err != nil {
		return nil, err
	}
	return s.availability.Get(ctx, id)
}

func (s *AvailabilityService) SetMine(ctx context.Context, session auth.Session, req *models.SetAvailabilityRequest) (*models.Availability, error) {
	id, err := s.myStaffID(ctx, session)
	if err != nil {
		return nil, err
	}
	return s.Set(ctx, session, id, req)
}

func (s *AvailabilityService) ClearMine(ctx context.Context, session auth.Session, req *models.ClearAvailabilityRequest) (*models.Availability, error) {
	id, err := s.myStaffID(ctx, session)
	if err != nil {
		return nil, err
	}
	return s.Clear(ctx, session, id, req)
}
