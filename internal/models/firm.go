package models

import (
	"strings"
	"time"
)

// Firm is a corporate client or partner maintained by sales.
type Firm struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	GSTNumber   string    `json:"gst_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type FirmRequest struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	GSTNumber   string `json:"gst_number"`
}

func (r *FirmRequest) Validate() error {
	var v ValidationError
	if strings.TrimSpace(r.Name) == "" {
		v.Add("name", "required")
	}
	if r.Phone != "" && !validPhone(r.Phone) {
		v.Add("phone", "must be 10 to 15 digits")
	}
	if r.GSTNumber != "" && len(r.GSTNumber) != 15 {
		v.Add("gst_number", "must be 15 characters")
	}
	return v.Err()
}
