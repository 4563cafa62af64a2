// Package memstore keeps every collection in process memory. It backs the
// "memory" database driver for local runs and the service tests.
package memstore

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"staffing-backend/internal/models"
	"staffing-backend/internal/timeutil"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	users        map[string]*models.User
	staff        map[string]*models.Staff
	orders       map[string]*models.Order
	availability map[string]*models.Availability
	invoices     map[string]*models.Invoice
	payouts      map[string]*models.Payout
	firms        map[string]*models.Firm
	inquiries    map[string]*models.Inquiry
	activityLogs []*models.ActivityLog
	smsLogs      []*models.SMSLog

	invoiceSeq int
	now        func() time.Time
}

func New() *Store {
	return &Store{
		users:        make(map[string]*models.User),
		staff:        make(map[string]*models.Staff),
		orders:       make(map[string]*models.Order),
		availability: make(map[string]*models.Availability),
		invoices:     make(map[string]*models.Invoice),
		payouts:      make(map[string]*models.Payout),
		firms:        make(map[string]*models.Firm),
		inquiries:    make(map[string]*models.Inquiry),
		now:          timeutil.Now,
	}
}

func (s *Store) Users() *Users               { return &Users{s} }
func (s *Store) Staff() *Staff               { return &Staff{s} }
func (s *Store) Orders() *Orders             { return &Orders{s} }
func (s *Store) Availability() *Availability { return &Availability{s} }
func (s *Store) Invoices() *Invoices         { return &Invoices{s} }
func (s *Store) Payouts() *Payouts           { return &Payouts{s} }
func (s *Store) Firms() *Firms               { return &Firms{s} }
func (s *Store) Inquiries() *Inquiries       { return &Inquiries{s} }
func (s *Store) ActivityLogs() *ActivityLogs { return &ActivityLogs{s} }
func (s *Store) SMSLogs() *SMSLogs           { return &SMSLogs{s} }

func newID() string {
	return uuid.NewString()
}

func invoiceNumber(n int) string {
	return fmt.Sprintf("INV-%06d", n)
}

func sortByCreatedDesc[T any](items []T, created func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return created(items[i]).After(created(items[j]))
	})
}
