package models

import (
	"time"

	"staffing-backend/internal/timeutil"
)

type AvailabilityStatus string

const (
	Available   AvailabilityStatus = "available"
	Unavailable AvailabilityStatus = "unavailable"
	// AvailabilityUnknown is reported when the registry has no entry for a date. Never stored.
	AvailabilityUnknown AvailabilityStatus = "unknown"
)

func (s AvailabilityStatus) Valid() bool {
	return s == Available || s == Unavailable
}

// Availability is the per-staff calendar, one document per staff member.
type Availability struct {
	StaffID   string                        `json:"staff_id"`
	Dates     map[string]AvailabilityStatus `json:"dates"`
	UpdatedAt time.Time                     `json:"updated_at,omitempty"`
}

// On returns the status for a date, or AvailabilityUnknown.
func (a *Availability) On(date string) AvailabilityStatus {
	if a == nil {
		return AvailabilityUnknown
	}
	if s, ok := a.Dates[date]; ok {
		return s
	}
	return AvailabilityUnknown
}

type SetAvailabilityRequest struct {
	Dates map[string]AvailabilityStatus `json:"dates"`
}

func (r *SetAvailabilityRequest) Validate() error {
	var v ValidationError
	if len(r.Dates) == 0 {
		v.Add("dates", "at least one date is required")
	}
	for date, status := range r.Dates {
		if !timeutil.IsDate(date) {
			v.Add("dates."+date, "must be an ISO date (YYYY-MM-DD)")
			continue
		}
		if !status.Valid() {
			v.Add("dates."+date, "must be available or unavailable")
		}
	}
	return v.Err()
}

type ClearAvailabilityRequest struct {
	Dates []string `json:"dates"`
}

func (r *ClearAvailabilityRequest) Validate() error {
	var v ValidationError
	if len(r.Dates) == 0 {
		v.Add("dates", "at least one date is required")
	}
	for _, date := range r.Dates {
		if !timeutil.IsDate(date) {
			v.Add("dates."+date, "must be an ISO date (YYYY-MM-DD)")
		}
	}
	return v.Err()
}

// Candidate is a staff member eligible for an order, with workload and availability on its date.
type Candidate struct {
	Staff           *Staff             `json:"staff"`
	AssignmentCount int                `json:"assignment_count"`
	Availability    AvailabilityStatus `json:"availability"`
	Assignable      bool               `json:"assignable"`
}
