package services

import (
	"context"
	"errors"
	"testing"

	"staffing-backend/internal/models"
)

func TestPayoutLifecycle(t *testing.T) {
	e := newTestEnv(t)
	_, cs := e.client(t, "Asha")
	waiter, waiterSession := e.linkedStaff(t, "Kiran", models.RoleWaiter)
	stranger := e.staffMember(t, "Meena", models.RoleWaiter)
	ctx := context.Background()

	o := e.order(t, cs, 10, models.MenuVeg)
	if _, err := e.assign.Assign(ctx, opsSession, o.ID, waiter.ID); err != nil {
		t.Fatal(err)
	}

	req := &models.PayoutRequest{StaffID: waiter.ID, Amount: 650}
	if _, err := e.payouts.Create(ctx, accountantSession, o.ID, req); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("before completion: err = %v, want ErrInvalidTransition", err)
	}
	if _, err := e.orders.Confirm(ctx, opsSession, o.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := e.orders.Complete(ctx, opsSession, o.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := e.payouts.Create(ctx, accountantSession, o.ID, &models.PayoutRequest{StaffID: stranger.ID}); !errors.Is(err, ErrStaffNotAssigned) {
		t.Errorf("unassigned staff: err = %v, want ErrStaffNotAssigned", err)
	}
	if _, err := e.payouts.Create(ctx, opsSession, o.ID, req); !errors.Is(err, ErrForbidden) {
		t.Errorf("ops: err = %v, want ErrForbidden", err)
	}

	p, err := e.payouts.Create(ctx, accountantSession, o.ID, req)
	if err != nil {
		t.Fatal(err)
	}
	if p.Amount != 650 || p.Status != models.PayoutPending {
		t.Errorf("payout = %+v", p)
	}
	var verr *models.ValidationError
	if _, err := e.payouts.Create(ctx, accountantSession, o.ID, req); !errors.As(err, &verr) {
		t.Errorf("duplicate: err = %v, want validation error", err)
	}

	earnings, err := e.payouts.MyEarnings(ctx, waiterSession)
	if err != nil {
		t.Fatal(err)
	}
	if earnings.Pending != 650 || earnings.Paid != 0 || earnings.Total != 650 {
		t.Errorf("earnings = %+v", earnings)
	}

	if _, err := e.payouts.MarkPaid(ctx, accountantSession, p.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := e.payouts.MarkPaid(ctx, accountantSession, p.ID); !errors.Is(err, ErrAlreadyPaid) {
		t.Errorf("second mark: err = %v, want ErrAlreadyPaid", err)
	}
	earnings, err = e.payouts.Earnings(ctx, hrSession, waiter.ID)
	if err != nil {
		t.Fatal(err)
	}
	if earnings.Pending != 0 || earnings.Paid != 650 {
		t.Errorf("earnings after payment = %+v", earnings)
	}

	_, strangerSession := e.linkedStaff(t, "Other", models.RoleWaiter)
	if _, err := e.payouts.Earnings(ctx, strangerSession, waiter.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("other staff: err = %v, want ErrForbidden", err)
	}
}

func TestPayoutDefaultsToPerEventRate(t *testing.T) {
	e := newTestEnv(t)
	_, cs := e.client(t, "Asha")
	waiter := e.staffMember(t, "Kiran", models.RoleWaiter)
	ctx := context.Background()

	o := e.order(t, cs, 10, models.MenuVeg)
	if _, err := e.assign.Assign(ctx, opsSession, o.ID, waiter.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := e.orders.Confirm(ctx, opsSession, o.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := e.orders.Complete(ctx, opsSession, o.ID); err != nil {
		t.Fatal(err)
	}
	p, err := e.payouts.Create(ctx, adminSession, o.ID, &models.PayoutRequest{StaffID: waiter.ID})
	if err != nil {
		t.Fatal(err)
	}
	if p.Amount != 800 {
		t.Errorf("amount = %.2f, want 800", p.Amount)
	}

	list, err := e.payouts.ListByOrder(ctx, accountantSession, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Errorf("payouts = %d, want 1", len(list))
	}
}
