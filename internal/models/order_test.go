package models

import (
	"errors"
	"testing"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderPending, OrderConfirmed, true},
		{OrderPending, OrderCancelled, true},
		{OrderConfirmed, OrderCompleted, true},
		{OrderCompleted, OrderReviewed, true},
		{OrderPending, OrderCompleted, false},
		{OrderPending, OrderReviewed, false},
		{OrderConfirmed, OrderCancelled, false},
		{OrderConfirmed, OrderPending, false},
		{OrderCompleted, OrderConfirmed, false},
		{OrderCancelled, OrderPending, false},
		{OrderReviewed, OrderCompleted, false},
		{OrderStatus("Draft"), OrderConfirmed, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestAcceptsAssignments(t *testing.T) {
	open := map[OrderStatus]bool{
		OrderPending:   true,
		OrderConfirmed: true,
		OrderCompleted: false,
		OrderReviewed:  false,
		OrderCancelled: false,
	}
	for status, want := range open {
		if got := status.AcceptsAssignments(); got != want {
			t.Errorf("%s.AcceptsAssignments() = %v, want %v", status, got, want)
		}
	}
}

func TestOrderRequestValidate(t *testing.T) {
	valid := OrderRequest{Date: "2026-05-01", Attendees: 10, MenuType: MenuVeg}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	bad := OrderRequest{Date: "01/05/2026", Attendees: 0, MenuType: "vegan"}
	err := bad.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"date", "attendees", "menu_type"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("expected error on %s, got %v", field, verr.Fields)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	if s, ok := ParseOrderStatus("Reviewed"); !ok || s != OrderReviewed {
		t.Fatalf("ParseOrderStatus(Reviewed) = %q, %v", s, ok)
	}
	if _, ok := ParseOrderStatus("reviewed"); ok {
		t.Fatal("status names are case sensitive")
	}
}
