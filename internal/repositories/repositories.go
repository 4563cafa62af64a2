package repositories

import (
	"staffing-backend/internal/services"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPostgresStores wires every postgres repository.
func NewPostgresStores(pool *pgxpool.Pool) services.Stores {
	return services.Stores{
		Users:        NewUserRepository(pool),
		Staff:        NewStaffRepository(pool),
		Orders:       NewOrderRepository(pool),
		Availability: NewAvailabilityRepository(pool),
		Invoices:     NewInvoiceRepository(pool),
		Payouts:      NewPayoutRepository(pool),
		Firms:        NewFirmRepository(pool),
		Inquiries:    NewInquiryRepository(pool),
		ActivityLogs: NewActivityLogRepository(pool),
		SMSLogs:      NewSMSLogRepository(pool),
	}
}
