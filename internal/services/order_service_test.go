package services

import (
	"context"
	"errors"
	"testing"

	"staffing-backend/internal/models"
)

func TestOrderCreateDefaults(t *testing.T) {
	e := newTestEnv(t)
	client, cs := e.client(t, "Asha")

	o := e.order(t, cs, 40, models.MenuNonVeg)
	if o.Status != models.OrderPending || o.InvoiceStatus != models.InvoicePending {
		t.Fatalf("status = %s/%s, want Pending/Pending", o.Status, o.InvoiceStatus)
	}
	if o.UserID != client.ID {
		t.Errorf("user id = %s, want %s", o.UserID, client.ID)
	}
	if len(o.AssignedStaff) != 0 {
		t.Errorf("assigned staff = %v, want empty", o.AssignedStaff)
	}
	if got := e.pub.types(); len(got) != 1 || got[0] != models.OrderEventCreated {
		t.Errorf("events = %v", got)
	}
}

func TestOrderCreateValidation(t *testing.T) {
	e := newTestEnv(t)
	_, cs := e.client(t, "Asha")

	_, err := e.orders.Create(context.Background(), cs, &models.OrderRequest{Date: "20-12-2026", Attendees: 0, MenuType: "vegan"})
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want validation error", err)
	}
	for _, field := range []string{"date", "attendees", "menu_type"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("missing field error for %s", field)
		}
	}
}

func TestOrderBookedOnBehalfOfClient(t *testing.T) {
	e := newTestEnv(t)
	client, _ := e.client(t, "Asha")
	ctx := context.Background()

	o, err := e.orders.Create(ctx, salesSession, &models.OrderRequest{UserID: client.ID, Date: "2026-11-01", Attendees: 10, MenuType: models.MenuVeg})
	if err != nil {
		t.Fatal(err)
	}
	if o.UserID != client.ID {
		t.Errorf("owner = %s, want %s", o.UserID, client.ID)
	}

	_, err = e.orders.Create(ctx, salesSession, &models.OrderRequest{UserID: salesSession.UserID, Date: "2026-11-01", Attendees: 10, MenuType: models.MenuVeg})
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("booking for a non-client: err = %v, want validation error", err)
	}
}

func TestOrderStateMachine(t *testing.T) {
	e := newTestEnv(t)
	_, cs := e.client(t, "Asha")
	ctx := context.Background()
	o := e.order(t, cs, 10, models.MenuVeg)

	if _, err := e.orders.Complete(ctx, opsSession, o.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Pending to Completed: err = %v, want ErrInvalidTransition", err)
	}
	if _, err := e.orders.Confirm(ctx, opsSession, o.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := e.orders.Cancel(ctx, opsSession, o.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Confirmed to Cancelled: err = %v, want ErrInvalidTransition", err)
	}
	if _, err := e.orders.Review(ctx, accountantSession, o.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Confirmed to Reviewed: err = %v, want ErrInvalidTransition", err)
	}
	if _, err := e.orders.Complete(ctx, opsSession, o.ID); err != nil {
		t.Fatal(err)
	}
	got, err := e.orders.Review(ctx, accountantSession, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.OrderReviewed {
		t.Errorf("status = %s, want Reviewed", got.Status)
	}
	if _, err := e.orders.Confirm(ctx, opsSession, o.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Reviewed is terminal: err = %v", err)
	}

	logs, err := e.activity.List(ctx, adminSession, models.ActivityLogFilter{TargetType: models.TargetOrder, TargetID: o.ID})
	if err != nil {
		t.Fatal(err)
	}
	changes := 0
	for _, l := range logs {
		if l.ActionType == models.ActionStatusChange {
			changes++
		}
	}
	if changes != 3 {
		t.Errorf("status change log entries = %d, want 3", changes)
	}
}

func TestOrderTransitionRoles(t *testing.T) {
	e := newTestEnv(t)
	_, cs := e.client(t, "Asha")
	ctx := context.Background()
	o := e.order(t, cs, 10, models.MenuVeg)

	if _, err := e.orders.Confirm(ctx, cs, o.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("client confirm: err = %v, want ErrForbidden", err)
	}
	if _, err := e.orders.Confirm(ctx, accountantSession, o.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("accountant confirm: err = %v, want ErrForbidden", err)
	}
	if _, err := e.orders.Review(ctx, opsSession, o.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("ops review: err = %v, want ErrForbidden", err)
	}
}

func TestClientCancelsOwnPendingOrder(t *testing.T) {
	e := newTestEnv(t)
	_, asha := e.client(t, "Asha")
	_, ravi := e.client(t, "Ravi")
	ctx := context.Background()
	o := e.order(t, asha, 10, models.MenuVeg)

	if _, err := e.orders.Cancel(ctx, ravi, o.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("other client cancel: err = %v, want ErrNotFound", err)
	}
	got, err := e.orders.Cancel(ctx, asha, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.OrderCancelled {
		t.Errorf("status = %s, want Cancelled", got.Status)
	}
}

func TestOrderVisibility(t *testing.T) {
	e := newTestEnv(t)
	_, asha := e.client(t, "Asha")
	_, ravi := e.client(t, "Ravi")
	waiter, waiterSession := e.linkedStaff(t, "Kiran", models.RoleWaiter)
	ctx := context.Background()

	mine := e.order(t, asha, 10, models.MenuVeg)
	e.order(t, ravi, 20, models.MenuNonVeg)

	list, err := e.orders.List(ctx, asha, models.OrderFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != mine.ID {
		t.Errorf("client sees %d orders, want only their own", len(list))
	}

	all, err := e.orders.List(ctx, opsSession, models.OrderFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("ops sees %d orders, want 2", len(all))
	}

	list, err = e.orders.List(ctx, waiterSession, models.OrderFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("unassigned waiter sees %d orders", len(list))
	}
	if _, err := e.assign.Assign(ctx, opsSession, mine.ID, waiter.ID); err != nil {
		t.Fatal(err)
	}
	list, err = e.orders.List(ctx, waiterSession, models.OrderFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != mine.ID {
		t.Errorf("assigned waiter sees %v", list)
	}
	if _, err := e.orders.Get(ctx, ravi, mine.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("other client get: err = %v, want ErrNotFound", err)
	}
}

func TestOrderListRejectsBadFilter(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.orders.List(context.Background(), opsSession, models.OrderFilter{Status: "Shipped", From: "yesterday"})
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if _, ok := verr.Fields["status"]; !ok {
		t.Error("missing status error")
	}
}

func TestUpdateDetailsOnlyWhilePending(t *testing.T) {
	e := newTestEnv(t)
	_, cs := e.client(t, "Asha")
	ctx := context.Background()
	o := e.order(t, cs, 10, models.MenuVeg)

	req := &models.OrderRequest{Date: "2026-12-21", Attendees: 25, MenuType: models.MenuNonVeg, Venue: "Hall A"}
	got, err := e.orders.UpdateDetails(ctx, cs, o.ID, req)
	if err != nil {
		t.Fatal(err)
	}
	if got.Attendees != 25 || got.MenuType != models.MenuNonVeg || got.Date != "2026-12-21" {
		t.Errorf("update not applied: %+v", got)
	}

	if _, err := e.orders.Confirm(ctx, opsSession, o.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := e.orders.UpdateDetails(ctx, cs, o.ID, req); !errors.Is(err, ErrOrderLocked) {
		t.Errorf("err = %v, want ErrOrderLocked", err)
	}
}

func TestCaptainCompletesOnlyAssignedOrders(t *testing.T) {
	e := newTestEnv(t)
	_, cs := e.client(t, "Asha")
	captain, captainSession := e.linkedStaff(t, "Vikram", models.RoleCaptain)
	ctx := context.Background()

	o := e.order(t, cs, 10, models.MenuVeg)
	if _, err := e.orders.Confirm(ctx, opsSession, o.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := e.orders.Complete(ctx, captainSession, o.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("unassigned captain: err = %v, want ErrNotFound", err)
	}
	if _, err := e.assign.Assign(ctx, opsSession, o.ID, captain.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := e.orders.Complete(ctx, captainSession, o.ID); err != nil {
		t.Errorf("assigned captain: %v", err)
	}
}
