package services

import (
	"context"

	"staffing-backend/internal/models"
)

// Stores are defined where they are consumed. The postgres repositories,
// the mongo availability repository and the in-memory store implement them.

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	List(ctx context.Context, role models.Role) ([]*models.User, error)
	Update(ctx context.Context, u *models.User) error
	UpdateRole(ctx context.Context, id string, role models.Role) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type StaffStore interface {
	Create(ctx context.Context, s *models.Staff) error
	Get(ctx context.Context, id string) (*models.Staff, error)
	GetByUserID(ctx context.Context, userID string) (*models.Staff, error)
	GetMany(ctx context.Context, ids []string) ([]*models.Staff, error)
	List(ctx context.Context, filter models.StaffFilter) ([]*models.Staff, error)
	Update(ctx context.Context, s *models.Staff) error
	SetActive(ctx context.Context, id string, active bool) error
}

type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	Get(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error)
	// UpdateDetails rewrites the booking fields while the order is still Pending.
	UpdateDetails(ctx context.Context, o *models.Order) error
	// TransitionStatus moves the order only if its current status equals from.
	// Returns models.ErrConflict when the status changed underneath.
	TransitionStatus(ctx context.Context, id string, from, to models.OrderStatus) (*models.Order, error)
	// AddStaff and RemoveStaff are single-statement set operations guarded by the allowed statuses.
	AddStaff(ctx context.Context, id, staffID string, allowed []models.OrderStatus) (*models.Order, error)
	RemoveStaff(ctx context.Context, id, staffID string, allowed []models.OrderStatus) (*models.Order, error)
	SetInvoiceStatus(ctx context.Context, id string, status models.InvoiceStatus) error
	// AssignmentCounts returns how many orders reference each staff id.
	AssignmentCounts(ctx context.Context, staffIDs []string) (map[string]int, error)
}

type AvailabilityStore interface {
	// Get returns an empty document when the staff member has none.
	Get(ctx context.Context, staffID string) (*models.Availability, error)
	// Merge upserts dates. Later values for a date overwrite earlier ones.
	Merge(ctx context.Context, staffID string, dates map[string]models.AvailabilityStatus) (*models.Availability, error)
	Clear(ctx context.Context, staffID string, dates []string) (*models.Availability, error)
	// StatusOnDate returns the stored status per staff id. Staff without an entry are absent.
	StatusOnDate(ctx context.Context, staffIDs []string, date string) (map[string]models.AvailabilityStatus, error)
}

type InvoiceStore interface {
	NextInvoiceNumber(ctx context.Context) (string, error)
	// Upsert writes the invoice keyed by order id, keeping an existing invoice number.
	Upsert(ctx context.Context, inv *models.Invoice) error
	Get(ctx context.Context, orderID string) (*models.Invoice, error)
	GetByPaymentOrder(ctx context.Context, paymentOrderID string) (*models.Invoice, error)
	List(ctx context.Context) ([]*models.Invoice, error)
	SetPDFKey(ctx context.Context, orderID, key string) error
	SetPaymentOrder(ctx context.Context, orderID, paymentOrderID string) error
	MarkPaid(ctx context.Context, orderID, paymentID string) error
}

type PayoutStore interface {
	Create(ctx context.Context, p *models.Payout) error
	Get(ctx context.Context, id string) (*models.Payout, error)
	ListByOrder(ctx context.Context, orderID string) ([]*models.Payout, error)
	ListByStaff(ctx context.Context, staffID string) ([]*models.Payout, error)
	MarkPaid(ctx context.Context, id string) (*models.Payout, error)
}

type FirmStore interface {
	Create(ctx context.Context, f *models.Firm) error
	Get(ctx context.Context, id string) (*models.Firm, error)
	List(ctx context.Context) ([]*models.Firm, error)
	Update(ctx context.Context, f *models.Firm) error
	Delete(ctx context.Context, id string) error
}

type InquiryStore interface {
	Create(ctx context.Context, i *models.Inquiry) error
	Get(ctx context.Context, id string) (*models.Inquiry, error)
	List(ctx context.Context, status models.InquiryStatus) ([]*models.Inquiry, error)
	UpdateStatus(ctx context.Context, id string, status models.InquiryStatus, handledBy string) (*models.Inquiry, error)
}

type ActivityLogStore interface {
	Create(ctx context.Context, l *models.ActivityLog) error
	List(ctx context.Context, filter models.ActivityLogFilter) ([]*models.ActivityLog, error)
}

type SMSLogStore interface {
	Create(ctx context.Context, l *models.SMSLog) error
	ListByOrder(ctx context.Context, orderID string) ([]*models.SMSLog, error)
}

// OrderEventPublisher receives every order mutation for the live feed.
type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, event models.OrderEvent)
}

// Stores groups every store a service set needs.
type Stores struct {
	Users        UserStore
	Staff        StaffStore
	Orders       OrderStore
	Availability AvailabilityStore
	Invoices     InvoiceStore
	Payouts      PayoutStore
	Firms        FirmStore
	Inquiries    InquiryStore
	ActivityLogs ActivityLogStore
	SMSLogs      SMSLogStore
}
