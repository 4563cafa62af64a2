package services

import (
	"context"
	"errors"
	"fmt"

	"staffing-backend/internal/auth"
	"staffing-backend/internal/models"
)

type PayoutService struct {
	payouts  PayoutStore
	orders   OrderStore
	staff    StaffStore
	activity *ActivityService
}

func NewPayoutService(payouts PayoutStore, orders OrderStore, staff StaffStore, activity *ActivityService) *PayoutService {
	return &PayoutService{payouts: payouts, orders: orders, staff: staff, activity: activity}
}

// Create records money owed to an assigned staff member of a Completed or Reviewed order.
// A zero amount falls back to the staff member's per-event compensation.
func (s *PayoutService) Create(ctx context.Context, session auth.Session, orderID string, req *models.PayoutRequest) (*models.Payout, error) {
	if !canBill(session) {
		return nil, ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderCompleted && order.Status != models.OrderReviewed {
		return nil, fmt.Errorf("%w: payouts are recorded after the event is completed", ErrInvalidTransition)
	}
	if !order.HasStaff(req.StaffID) {
		return nil, ErrStaffNotAssigned
	}

	st, err := s.staff.Get(ctx, req.StaffID)
	if err != nil {
		return nil, err
	}
	amount := req.Amount
	if amount == 0 && st.Compensation != nil {
		amount = st.Compensation.PerEvent
	}
	if amount <= 0 {
		return nil, &models.ValidationError{Fields: map[string]string{"amount": "required when the staff member has no per-event rate"}}
	}

	p := &models.Payout{
		OrderID:   orderID,
		StaffID:   req.StaffID,
		Amount:    round2(amount),
		Status:    models.PayoutPending,
		Notes:     req.Notes,
		CreatedBy: session.UserID,
	}
	if err := s.payouts.Create(ctx, p); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, &models.ValidationError{Fields: map[string]string{"staff_id": "payout already recorded for this order"}}
		}
		return nil, err
	}
	s.activity.Record(ctx, session, models.ActionPayout, models.TargetPayout, p.ID,
		fmt.Sprintf("Recorded payout for %s", st.Name), "", fmt.Sprintf("%.2f", p.Amount))
	return p, nil
}

func (s *PayoutService) ListByOrder(ctx context.Context, session auth.Session, orderID string) ([]*models.Payout, error) {
	if !canBill(session) {
		return nil, ErrForbidden
	}
	if _, err := s.orders.Get(ctx, orderID); err != nil {
		return nil, err
	}
	out, err := s.payouts.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*models.Payout{}
	}
	return out, nil
}

// MarkPaid settles a pending payout. Paying twice is a conflict.
func (s *PayoutService) MarkPaid(ctx context.Context, session auth.Session, id string) (*models.Payout, error) {
	if !canBill(session) {
		return nil, ErrForbidden
	}
	p, err := s.payouts.MarkPaid(ctx, id)
	if errors.Is(err, models.ErrConflict) {
		return nil, ErrAlreadyPaid
	}
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, session, models.ActionPayout, models.TargetPayout, id, "Marked payout paid",
		string(models.PayoutPending), string(models.PayoutPaid))
	return p, nil
}

// Earnings lists a staff member's payouts with pending and paid sums.
// Staff may read their own; billing and HR may read anyone's.
func (s *PayoutService) Earnings(ctx context.Context, session auth.Session, staffID string) (*models.StaffEarnings, error) {
	st, err := s.staff.Get(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if !canBill(session) && !session.HasRole(models.RoleHR) && !linkedTo(st, session) {
		return nil, ErrForbidden
	}

	payouts, err := s.payouts.ListByStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	e := &models.StaffEarnings{StaffID: staffID, Payouts: payouts}
	if e.Payouts == nil {
		e.Payouts = []*models.Payout{}
	}
	for _, p := range payouts {
		switch p.Status {
		case models.PayoutPaid:
			e.Paid += p.Amount
		default:
			e.Pending += p.Amount
		}
	}
	e.Pending = round2(e.Pending)
	e.Paid = round2(e.Paid)
	e.Total = round2(e.Pending + e.Paid)
	return e, nil
}

// MyEarnings resolves the caller's staff record first.
func (s *PayoutService) MyEarnings(ctx context.Context, session auth.Session) (*models.StaffEarnings, error) {
	st, err := s.staff.GetByUserID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	return s.Earnings(ctx, session, st.ID)
}
