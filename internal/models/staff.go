package models

import (
	"strings"
	"time"
)

type StaffType string

const (
	StaffTypePermanent StaffType = "permanent"
	StaffTypePartTime  StaffType = "part-time"
	StaffTypeFreelance StaffType = "freelance"
)

func (t StaffType) Valid() bool {
	switch t {
	case StaffTypePermanent, StaffTypePartTime, StaffTypeFreelance:
		return true
	}
	return false
}

type BankDetails struct {
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	IFSC          string `json:"ifsc"`
	UPI           string `json:"upi,omitempty"`
}

type Compensation struct {
	// PerEvent is the default payout for one assignment.
	PerEvent float64 `json:"per_event"`
	Monthly  float64 `json:"monthly,omitempty"`
}

// Staff is a field worker. Independent from User; UserID links the login that maintains it.
type Staff struct {
	ID           string        `json:"id"`
	UserID       *string       `json:"user_id,omitempty"`
	Name         string        `json:"name"`
	Phone        string        `json:"phone"`
	Role         Role          `json:"role"`
	StaffType    StaffType     `json:"staff_type"`
	BankDetails  *BankDetails  `json:"bank_details,omitempty"`
	Compensation *Compensation `json:"compensation,omitempty"`
	IsActive     bool          `json:"is_active"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type StaffFilter struct {
	Role       Role
	ActiveOnly bool
}

type StaffRequest struct {
	UserID       *string       `json:"user_id,omitempty"`
	Name         string        `json:"name"`
	Phone        string        `json:"phone"`
	Role         Role          `json:"role"`
	StaffType    StaffType     `json:"staff_type"`
	BankDetails  *BankDetails  `json:"bank_details,omitempty"`
	Compensation *Compensation `json:"compensation,omitempty"`
}

func (r *StaffRequest) Validate() error {
	var v ValidationError
	if strings.TrimSpace(r.Name) == "" {
		v.Add("name", "required")
	}
	if !validPhone(r.Phone) {
		v.Add("phone", "must be 10 to 15 digits")
	}
	if !r.Role.IsStaffRole() {
		v.Add("role", "must be a field staff role")
	}
	if r.StaffType == "" {
		r.StaffType = StaffTypePermanent
	}
	if !r.StaffType.Valid() {
		v.Add("staff_type", "must be permanent, part-time or freelance")
	}
	if r.Compensation != nil && (r.Compensation.PerEvent < 0 || r.Compensation.Monthly < 0) {
		v.Add("compensation", "must not be negative")
	}
	return v.Err()
}
