package services

import (
	"context"
	"strings"

	"staffing-backend/internal/auth"
	"staffing-backend/internal/models"
)

type FirmService struct {
	firms    FirmStore
	activity *ActivityService
}

func NewFirmService(firms FirmStore, activity *ActivityService) *FirmService {
	return &FirmService{firms: firms, activity: activity}
}

func canSell(session auth.Session) bool {
	return session.HasRole(models.RoleAdmin, models.RoleSales)
}

func firmFromRequest(f *models.Firm, req *models.FirmRequest) {
	f.Name = strings.TrimSpace(req.Name)
	f.ContactName = strings.TrimSpace(req.ContactName)
	f.Phone = normalizePhone(req.Phone)
	f.Email = strings.TrimSpace(req.Email)
	f.Address = strings.TrimSpace(req.Address)
	f.GSTNumber = strings.ToUpper(strings.TrimSpace(req.GSTNumber))
}

func (s *FirmService) Create(ctx context.Context, session auth.Session, req *models.FirmRequest) (*models.Firm, error) {
	if !canSell(session) {
		return nil, ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	f := &models.Firm{}
	firmFromRequest(f, req)
	if err := s.firms.Create(ctx, f); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, session, models.ActionCreate, models.TargetFirm, f.ID, "Added firm "+f.Name, "", "")
	return f, nil
}

func (s *FirmService) Get(ctx context.Context, session auth.Session, id string) (*models.Firm, error) {
	if !canSell(session) && !canBill(session) {
		return nil, ErrForbidden
	}
	return s.firms.Get(ctx, id)
}

func (s *FirmService) List(ctx context.Context, session auth.Session) ([]*models.Firm, error) {
	if !canSell(session) && !canBill(session) {
		return nil, ErrForbidden
	}
	out, err := s.firms.List(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*models.Firm{}
	}
	return out, nil
}

func (s *FirmService) Update(ctx context.Context, session auth.Session, id string, req *models.FirmRequest) (*models.Firm, error) {
	if !canSell(session) {
		return nil, ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	f, err := s.firms.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	firmFromRequest(f, req)
	if err := s.firms.Update(ctx, f); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, session, models.ActionUpdate, models.TargetFirm, id, "Updated firm "+f.Name, "", "")
	return f, nil
}

func (s *FirmService) Delete(ctx context.Context, session auth.Session, id string) error {
	if !canSell(session) {
		return ErrForbidden
	}
	if err := s.firms.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, session, models.ActionDelete, models.TargetFirm, id, "Deleted firm", "", "")
	return nil
}
