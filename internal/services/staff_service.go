package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"staffing-backend/internal/auth"
	"staffing-backend/internal/models"
)

type StaffService struct {
	staff    StaffStore
	users    UserStore
	activity *ActivityService
}

func NewStaffService(staff StaffStore, users UserStore, activity *ActivityService) *StaffService {
	return &StaffService{staff: staff, users: users, activity: activity}
}

func canManageStaff(s auth.Session) bool {
	return s.HasRole(models.RoleAdmin, models.RoleHR)
}

func canReadStaff(s auth.Session) bool {
	return s.HasRole(models.RoleAdmin, models.RoleHR, models.RoleOperationalManager, models.RoleAccountant)
}

func (s *StaffService) Create(ctx context.Context, session auth.Session, req *models.StaffRequest) (*models.Staff, error) {
	if !canManageStaff(session) {
		return nil, ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkLinkedUser(ctx, req.UserID); err != nil {
		return nil, err
	}

	st := &models.Staff{
		UserID:       req.UserID,
		Name:         strings.TrimSpace(req.Name),
		Phone:        normalizePhone(req.Phone),
		Role:         req.Role,
		StaffType:    req.StaffType,
		BankDetails:  req.BankDetails,
		Compensation: req.Compensation,
		IsActive:     true,
	}
	if err := s.staff.Create(ctx, st); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, &models.ValidationError{Fields: map[string]string{"user_id": "already linked to another staff record"}}
		}
		return nil, err
	}
	s.activity.Record(ctx, session, models.ActionCreate, models.TargetStaff, st.ID,
		fmt.Sprintf("Added %s %s", st.Role, st.Name), "", "")
	return st, nil
}

// checkLinkedUser ensures a referenced login exists.
func (s *StaffService) checkLinkedUser(ctx context.Context, userID *string) error {
	if userID == nil || *userID == "" {
		return nil
	}
	if _, err := s.users.Get(ctx, *userID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return &models.ValidationError{Fields: map[string]string{"user_id": "unknown user"}}
		}
		return err
	}
	return nil
}

func (s *StaffService) Get(ctx context.Context, session auth.Session, id string) (*models.Staff, error) {
	st, err := s.staff.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canReadStaff(session) && !linkedTo(st, session) {
		return nil, ErrForbidden
	}
	return st, nil
}

func (s *StaffService) List(ctx context.Context, session auth.Session, filter models.StaffFilter) ([]*models.Staff, error) {
	if !canReadStaff(session) {
		return nil, ErrForbidden
	}
	if filter.Role != "" && !filter.Role.IsStaffRole() {
		return nil, &models.ValidationError{Fields: map[string]string{"role": "must be a field staff role"}}
	}
	return s.staff.List(ctx, filter)
}

func (s *StaffService) Update(ctx context.Context, session auth.Session, id string, req *models.StaffRequest) (*models.Staff, error) {
	if !canManageStaff(session) {
		return nil, ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkLinkedUser(ctx, req.UserID); err != nil {
		return nil, err
	}

	st, err := s.staff.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	oldRole := st.Role
	st.UserID = req.UserID
	st.Name = strings.TrimSpace(req.Name)
	st.Phone = normalizePhone(req.Phone)
	st.Role = req.Role
	st.StaffType = req.StaffType
	st.BankDetails = req.BankDetails
	st.Compensation = req.Compensation

	if err := s.staff.Update(ctx, st); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, &models.ValidationError{Fields: map[string]string{"user_id": "already linked to another staff record"}}
		}
		return nil, err
	}
	s.activity.Record(ctx, session, models.ActionUpdate, models.TargetStaff, id, "Updated staff record", string(oldRole), string(st.Role))
	return st, nil
}

func (s *StaffService) SetActive(ctx context.Context, session auth.Session, id string, active bool) (*models.Staff, error) {
	if !canManageStaff(session) {
		return nil, ErrForbidden
	}
	if err := s.staff.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, session, models.ActionStatusChange, models.TargetStaff, id,
		"Changed staff status", "", fmt.Sprintf("active=%t", active))
	return s.staff.Get(ctx, id)
}

// Mine returns the staff record linked to the caller's login.
func (s *StaffService) Mine(ctx context.Context, session auth.Session) (*models.Staff, error) {
	return s.staff.GetByUserID(ctx, session.UserID)
}

func linkedTo(st *models.Staff, session auth.Session) bool {
	return st.UserID != nil && *st.UserID == session.UserID
}
