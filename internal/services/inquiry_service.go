package services

import (
	"context"
	"strings"

	"staffing-backend/internal/auth"
	"staffing-backend/internal/models"
	"staffing-backend/pkg/logger"
)

type InquiryService struct {
	inquiries InquiryStore
	activity  *ActivityService
	log       logger.Logger
}

func NewInquiryService(inquiries InquiryStore, activity *ActivityService, log logger.Logger) *InquiryService {
	return &InquiryService{inquiries: inquiries, activity: activity, log: log}
}

// Submit captures a lead from the public site. No session is required.
func (s *InquiryService) Submit(ctx context.Context, req *models.InquiryRequest) (*models.Inquiry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	i := &models.Inquiry{
		Name:      strings.TrimSpace(req.Name),
		Phone:     normalizePhone(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		EventDate: req.EventDate,
		Attendees: req.Attendees,
		Message:   strings.TrimSpace(req.Message),
		Status:    models.InquiryNew,
	}
	if err := s.inquiries.Create(ctx, i); err != nil {
		return nil, err
	}
	s.log.Info("inquiry received", "inquiry_id", i.ID)
	return i, nil
}

func (s *InquiryService) List(ctx context.Context, session auth.Session, status models.InquiryStatus) ([]*models.Inquiry, error) {
	if !canSell(session) {
		return nil, ErrForbidden
	}
	if status != "" && !status.Valid() {
		return nil, &models.ValidationError{Fields: map[string]string{"status": "unknown inquiry status"}}
	}
	out, err := s.inquiries.List(ctx, status)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*models.Inquiry{}
	}
	return out, nil
}

func (s *InquiryService) Get(ctx context.Context, session auth.Session, id string) (*models.Inquiry, error) {
	if !canSell(session) {
		return nil, ErrForbidden
	}
	return s.inquiries.Get(ctx, id)
}

// UpdateStatus records who worked the lead.
func (s *InquiryService) UpdateStatus(ctx context.Context, session auth.Session, id string, status models.InquiryStatus) (*models.Inquiry, error) {
	if !canSell(session) {
		return nil, ErrForbidden
	}
	if !status.Valid() {
		return nil, &models.ValidationError{Fields: map[string]string{"status": "must be new, contacted, converted or closed"}}
	}
	before, err := s.inquiries.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	i, err := s.inquiries.UpdateStatus(ctx, id, status, session.UserID)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, session, models.ActionStatusChange, models.TargetInquiry, id,
		"Updated inquiry from "+i.Name, string(before.Status), string(status))
	return i, nil
}
