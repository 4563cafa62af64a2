package services

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrAccountSuspended   = errors.New("account suspended")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrAssignmentClosed   = errors.New("order no longer accepts staff changes")
	ErrStaffUnavailable   = errors.New("staff member is unavailable on the event date")
	ErrStaffNotAssignable = errors.New("staff member cannot be assigned to events")
	ErrStaffNotAssigned   = errors.New("staff member is not assigned to this order")
	ErrInvoiceNotReady    = errors.New("order must be reviewed before invoicing")
	ErrOrderLocked        = errors.New("order can only be edited while pending")
	ErrNotConfigured      = errors.New("service not configured")
	ErrPaymentSignature   = errors.New("invalid payment signature")
	ErrAlreadyPaid        = errors.New("already paid")
	// ErrExternal wraps failures of the SMS, payment, storage and generative providers.
	ErrExternal = errors.New("external service error")
)
