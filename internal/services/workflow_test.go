package services

import (
	"context"
	"testing"

	"staffing-backend/internal/models"
)

// TestBookingToInvoice walks one event through every stage.
func TestBookingToInvoice(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	reg, err := e.users.Register(ctx, &models.CreateUserRequest{
		Name: "Asha Events", Phone: "9000000001", Password: "secret123", Role: models.RoleAdmin,
	})
	if err != nil {
		t.Fatal(err)
	}
	if reg.User.Role != models.RoleClient {
		t.Fatalf("registered role = %s, want client", reg.User.Role)
	}
	cs := sessionOf(reg.User)

	captain, captainSession := e.linkedStaff(t, "Vikram", models.RoleCaptain)
	waiter := e.staffMember(t, "Kiran", models.RoleWaiter)

	o, err := e.orders.Create(ctx, cs, &models.OrderRequest{Date: "2026-12-31", EventType: "Reception", Attendees: 10, MenuType: models.MenuVeg})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.orders.Confirm(ctx, opsSession, o.ID); err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{captain.ID, waiter.ID} {
		if _, err := e.assign.Assign(ctx, opsSession, o.ID, id); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := e.orders.Complete(ctx, captainSession, o.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := e.orders.Review(ctx, accountantSession, o.ID); err != nil {
		t.Fatal(err)
	}

	inv, err := e.invoices.Generate(ctx, accountantSession, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if inv.TotalAmount != 15576 {
		t.Errorf("total = %.2f, want 15576", inv.TotalAmount)
	}

	final, err := e.orders.Get(ctx, cs, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if final.Status != models.OrderReviewed || final.InvoiceStatus != models.InvoiceGenerated {
		t.Errorf("final = %s/%s", final.Status, final.InvoiceStatus)
	}
	if len(final.AssignedStaff) != 2 {
		t.Errorf("assigned = %v", final.AssignedStaff)
	}

	want := []string{
		models.OrderEventCreated,
		models.OrderEventStatusChanged,
		models.OrderEventStaffAssigned,
		models.OrderEventStaffAssigned,
		models.OrderEventStatusChanged,
		models.OrderEventStatusChanged,
		models.OrderEventInvoiceCreated,
	}
	got := e.pub.types()
	if len(got) != len(want) {
		t.Fatalf("events = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, got[i], want[i])
		}
	}
}
