package models

import (
	"strings"
	"time"

	"staffing-backend/internal/timeutil"
)

type InquiryStatus string

const (
	InquiryNew       InquiryStatus = "new"
	InquiryContacted InquiryStatus = "contacted"
	InquiryConverted InquiryStatus = "converted"
	InquiryClosed    InquiryStatus = "closed"
)

func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryNew, InquiryContacted, InquiryConverted, InquiryClosed:
		return true
	}
	return false
}

// Inquiry is a lead captured from the public site.
type Inquiry struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Phone     string        `json:"phone"`
	Email     string        `json:"email,omitempty"`
	EventDate string        `json:"event_date,omitempty"`
	Attendees int           `json:"attendees,omitempty"`
	Message   string        `json:"message,omitempty"`
	Status    InquiryStatus `json:"status"`
	HandledBy string        `json:"handled_by,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type InquiryRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	EventDate string `json:"event_date"`
	Attendees int    `json:"attendees"`
	Message   string `json:"message"`
}

func (r *InquiryRequest) Validate() error {
	var v ValidationError
	if strings.TrimSpace(r.Name) == "" {
		v.Add("name", "required")
	}
	if !validPhone(r.Phone) {
		v.Add("phone", "must be 10 to 15 digits")
	}
	if r.EventDate != "" && !timeutil.IsDate(r.EventDate) {
		v.Add("event_date", "must be an ISO date (YYYY-MM-DD)")
	}
	if r.Attendees < 0 {
		v.Add("attendees", "must not be negative")
	}
	if len(r.Message) > 2000 {
		v.Add("message", "must be at most 2000 characters")
	}
	return v.Err()
}

type InquiryStatusRequest struct {
	Status InquiryStatus `json:"status"`
}
