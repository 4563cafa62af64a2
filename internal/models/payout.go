package models

import "time"

type PayoutStatus string

const (
	PayoutPending PayoutStatus = "pending"
	PayoutPaid    PayoutStatus = "paid"
)

// Payout is money owed to one staff member for one order.
type Payout struct {
	ID        string       `json:"id"`
	OrderID   string       `json:"order_id"`
	StaffID   string       `json:"staff_id"`
	Amount    float64      `json:"amount"`
	Status    PayoutStatus `json:"status"`
	Notes     string       `json:"notes,omitempty"`
	CreatedBy string       `json:"created_by"`
	CreatedAt time.Time    `json:"created_at"`
	PaidAt    *time.Time   `json:"paid_at,omitempty"`
}

type PayoutRequest struct {
	StaffID string `json:"staff_id"`
	// Amount defaults to the staff member's per-event compensation when zero.
	Amount float64 `json:"amount"`
	Notes  string  `json:"notes"`
}

func (r *PayoutRequest) Validate() error {
	var v ValidationError
	if r.StaffID == "" {
		v.Add("staff_id", "required")
	}
	if r.Amount < 0 {
		v.Add("amount", "must not be negative")
	}
	return v.Err()
}

type StaffEarnings struct {
	StaffID string    `json:"staff_id"`
	Payouts []*Payout `json:"payouts"`
	Pending float64   `json:"pending"`
	Paid    float64   `json:"paid"`
	Total   float64   `json:"total"`
}
