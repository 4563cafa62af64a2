package models

import (
	"strings"
	"time"

	"staffing-backend/internal/timeutil"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderConfirmed OrderStatus = "Confirmed"
	OrderCompleted OrderStatus = "Completed"
	OrderCancelled OrderStatus = "Cancelled"
	OrderReviewed  OrderStatus = "Reviewed"
)

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderPending, OrderConfirmed, OrderCompleted, OrderCancelled, OrderReviewed:
		return OrderStatus(s), true
	}
	return "", false
}

var allowedTransitions = map[OrderStatus]map[OrderStatus]bool{
	OrderPending:   {OrderConfirmed: true, OrderCancelled: true},
	OrderConfirmed: {OrderCompleted: true},
	OrderCompleted: {OrderReviewed: true},
	OrderCancelled: {},
	OrderReviewed:  {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	return allowedTransitions[from][to]
}

// AcceptsAssignments reports whether staff may still be added or removed.
func (s OrderStatus) AcceptsAssignments() bool {
	return s == OrderPending || s == OrderConfirmed
}

type MenuType string

const (
	MenuVeg    MenuType = "veg"
	MenuNonVeg MenuType = "non-veg"
)

func (m MenuType) Valid() bool {
	return m == MenuVeg || m == MenuNonVeg
}

type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "Pending"
	InvoiceGenerated InvoiceStatus = "Generated"
)

type Order struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	ClientName    string        `json:"client_name,omitempty"`
	Date          string        `json:"date"`
	EventType     string        `json:"event_type,omitempty"`
	Venue         string        `json:"venue,omitempty"`
	Attendees     int           `json:"attendees"`
	MenuType      MenuType      `json:"menu_type"`
	Status        OrderStatus   `json:"status"`
	AssignedStaff []string      `json:"assigned_staff"`
	InvoiceStatus InvoiceStatus `json:"invoice_status"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// HasStaff reports whether staffID is in the assigned set.
func (o *Order) HasStaff(staffID string) bool {
	for _, id := range o.AssignedStaff {
		if id == staffID {
			return true
		}
	}
	return false
}

type OrderFilter struct {
	UserID  string
	StaffID string
	Status  OrderStatus
	From    string
	To      string
}

type OrderRequest struct {
	// UserID lets back office roles book on behalf of a client. Ignored for clients.
	UserID    string   `json:"user_id,omitempty"`
	Date      string   `json:"date"`
	EventType string   `json:"event_type"`
	Venue     string   `json:"venue"`
	Attendees int      `json:"attendees"`
	MenuType  MenuType `json:"menu_type"`
	Notes     string   `json:"notes"`
}

func (r *OrderRequest) Validate() error {
	var v ValidationError
	if !timeutil.IsDate(r.Date) {
		v.Add("date", "must be an ISO date (YYYY-MM-DD)")
	}
	if r.Attendees <= 0 {
		v.Add("attendees", "must be greater than zero")
	}
	if !r.MenuType.Valid() {
		v.Add("menu_type", "must be veg or non-veg")
	}
	r.EventType = strings.TrimSpace(r.EventType)
	r.Venue = strings.TrimSpace(r.Venue)
	return v.Err()
}

// OrderEvent is published on the live feed after every order mutation.
type OrderEvent struct {
	Type          string      `json:"type"`
	OrderID       string      `json:"order_id"`
	UserID        string      `json:"user_id"`
	Status        OrderStatus `json:"status"`
	AssignedStaff []string    `json:"assigned_staff"`
	At            time.Time   `json:"at"`
}

const (
	OrderEventCreated        = "order.created"
	OrderEventUpdated        = "order.updated"
	OrderEventStatusChanged  = "order.status_changed"
	OrderEventStaffAssigned  = "order.staff_assigned"
	OrderEventStaffRemoved   = "order.staff_removed"
	OrderEventInvoiceCreated = "order.invoice_generated"
)
