package models

import "time"

// SMSLog represents one dispatched message
type SMSLog struct {
	ID           string    `json:"id"`
	OrderID      string    `json:"order_id,omitempty"`
	StaffID      string    `json:"staff_id,omitempty"`
	Phone        string    `json:"phone"`
	MessageType  string    `json:"message_type"`
	Message      string    `json:"message"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	ReferenceID  string    `json:"reference_id,omitempty"`
	Cost         float64   `json:"cost,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// SMS message types
const (
	SMSTypeEventNotice = "event_notice"
	SMSTypeDirect      = "direct"
)

// SMS status types
const (
	SMSStatusPending = "pending"
	SMSStatusSent    = "sent"
	SMSStatusFailed  = "failed"
)

type NotifyStaffRequest struct {
	Message string `json:"message"`
}

func (r *NotifyStaffRequest) Validate() error {
	var v ValidationError
	if r.Message == "" {
		v.Add("message", "required")
	}
	if len(r.Message) > 500 {
		v.Add("message", "must be at most 500 characters")
	}
	return v.Err()
}

// SMSFailure identifies a recipient whose message could not be sent.
type SMSFailure struct {
	StaffID string `json:"staff_id"`
	Phone   string `json:"phone"`
	Error   string `json:"error"`
}

// SMSSummary is the outcome of a dispatch to several recipients.
type SMSSummary struct {
	Sent     int          `json:"sent"`
	Failed   int          `json:"failed"`
	Failures []SMSFailure `json:"failures,omitempty"`
}
