package services

import (
	"context"
	"fmt"
	"strings"

	"staffing-backend/internal/auth"
	"staffing-backend/internal/models"
	"staffing-backend/internal/sms"
)

// SMSSender delivers a batch of texts and reports per-recipient failures.
type SMSSender interface {
	SendBatch(ctx context.Context, msgs []sms.Message) models.SMSSummary
}

type NotificationService struct {
	orders   OrderStore
	staff    StaffStore
	logs     SMSLogStore
	sender   SMSSender
	activity *ActivityService
}

func NewNotificationService(orders OrderStore, staff StaffStore, logs SMSLogStore, sender SMSSender, activity *ActivityService) *NotificationService {
	return &NotificationService{orders: orders, staff: staff, logs: logs, sender: sender, activity: activity}
}

func canNotify(session auth.Session) bool {
	return session.HasRole(models.RoleAdmin, models.RoleOperationalManager)
}

// NotifyAssignedStaff texts every staff member on the order, one message per number.
func (s *NotificationService) NotifyAssignedStaff(ctx context.Context, session auth.Session, orderID string, req *models.NotifyStaffRequest) (models.SMSSummary, error) {
	if !canNotify(session) {
		return models.SMSSummary{}, ErrForbidden
	}
	req.Message = strings.TrimSpace(req.Message)
	if err := req.Validate(); err != nil {
		return models.SMSSummary{}, err
	}

	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return models.SMSSummary{}, err
	}
	summary := models.SMSSummary{Failures: []models.SMSFailure{}}
	if len(order.AssignedStaff) == 0 {
		return summary, nil
	}

	staff, err := s.staff.GetMany(ctx, order.AssignedStaff)
	if err != nil {
		return models.SMSSummary{}, err
	}

	var msgs []sms.Message
	seen := make(map[string]bool, len(staff))
	for _, st := range staff {
		if st.Phone == "" {
			summary.Failed++
			summary.Failures = append(summary.Failures, models.SMSFailure{StaffID: st.ID, Error: "no phone number on record"})
			continue
		}
		if seen[st.Phone] {
			continue
		}
		seen[st.Phone] = true
		msgs = append(msgs, sms.Message{
			OrderID: orderID,
			StaffID: st.ID,
			Phone:   st.Phone,
			Type:    models.SMSTypeEventNotice,
			Text:    req.Message,
		})
	}

	sent := s.sender.SendBatch(ctx, msgs)
	summary.Sent += sent.Sent
	summary.Failed += sent.Failed
	summary.Failures = append(summary.Failures, sent.Failures...)

	s.activity.Record(ctx, session, models.ActionNotify, models.TargetOrder, orderID,
		fmt.Sprintf("Texted assigned staff: %d sent, %d failed", summary.Sent, summary.Failed), "", "")
	return summary, nil
}

// Logs returns the delivery log of an order.
func (s *NotificationService) Logs(ctx context.Context, session auth.Session, orderID string) ([]*models.SMSLog, error) {
	if !canNotify(session) {
		return nil, ErrForbidden
	}
	out, err := s.logs.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*models.SMSLog{}
	}
	return out, nil
}
