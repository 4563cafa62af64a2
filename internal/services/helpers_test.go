package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"staffing-backend/internal/auth"
	"staffing-backend/internal/models"
	"staffing-backend/internal/repositories/memstore"
	"staffing-backend/pkg/logger"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.OrderEvent
}

func (p *recordingPublisher) PublishOrderEvent(_ context.Context, ev models.OrderEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

var (
	adminSession      = auth.Session{UserID: "admin-1", Name: "Admin", Role: models.RoleAdmin}
	opsSession        = auth.Session{UserID: "ops-1", Name: "Ops", Role: models.RoleOperationalManager}
	accountantSession = auth.Session{UserID: "acc-1", Name: "Accounts", Role: models.RoleAccountant}
	hrSession         = auth.Session{UserID: "hr-1", Name: "HR", Role: models.RoleHR}
	salesSession      = auth.Session{UserID: "sales-1", Name: "Sales", Role: models.RoleSales}
)

// testEnv wires every service over one in-memory store.
type testEnv struct {
	mem      *memstore.Store
	stores   Stores
	pub      *recordingPublisher
	activity *ActivityService
	users    *UserService
	staff    *StaffService
	avail    *AvailabilityService
	orders   *OrderService
	assign   *AssignmentService
	invoices *InvoiceService
	payouts  *PayoutService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mem := memstore.New()
	stores := Stores{
		Users:        mem.Users(),
		Staff:        mem.Staff(),
		Orders:       mem.Orders(),
		Availability: mem.Availability(),
		Invoices:     mem.Invoices(),
		Payouts:      mem.Payouts(),
		Firms:        mem.Firms(),
		Inquiries:    mem.Inquiries(),
		ActivityLogs: mem.ActivityLogs(),
		SMSLogs:      mem.SMSLogs(),
	}
	return newTestEnvWith(t, mem, stores)
}

func newTestEnvWith(t *testing.T, mem *memstore.Store, stores Stores) *testEnv {
	t.Helper()
	log := logger.Discard()
	pub := &recordingPublisher{}
	activity := NewActivityService(stores.ActivityLogs, log)
	jwt := auth.NewJWTManager("test-secret", "test", 1)
	return &testEnv{
		mem:      mem,
		stores:   stores,
		pub:      pub,
		activity: activity,
		users:    NewUserService(stores.Users, jwt, activity, log),
		staff:    NewStaffService(stores.Staff, stores.Users, activity),
		avail:    NewAvailabilityService(stores.Availability, stores.Staff),
		orders:   NewOrderService(stores.Orders, stores.Users, stores.Staff, activity, pub, log),
		assign:   NewAssignmentService(stores.Orders, stores.Staff, stores.Availability, activity, pub, log),
		invoices: NewInvoiceService(stores.Invoices, stores.Orders, stores.Users, nil, nil, activity, pub, log),
		payouts:  NewPayoutService(stores.Payouts, stores.Orders, stores.Staff, activity),
	}
}

var phoneSeq int

func nextPhone() string {
	phoneSeq++
	return fmt.Sprintf("98765%05d", phoneSeq)
}

func (e *testEnv) client(t *testing.T, name string) (*models.User, auth.Session) {
	t.Helper()
	u := &models.User{Name: name, Phone: nextPhone(), Role: models.RoleClient, IsActive: true, Address: "12 MG Road"}
	if err := e.stores.Users.Create(context.Background(), u); err != nil {
		t.Fatalf("create client: %v", err)
	}
	return u, auth.Session{UserID: u.ID, Name: u.Name, Role: u.Role}
}

func (e *testEnv) staffMember(t *testing.T, name string, role models.Role) *models.Staff {
	t.Helper()
	st, err := e.staff.Create(context.Background(), hrSession, &models.StaffRequest{
		Name:         name,
		Phone:        nextPhone(),
		Role:         role,
		Compensation: &models.Compensation{PerEvent: 800},
	})
	if err != nil {
		t.Fatalf("create staff: %v", err)
	}
	return st
}

// linkedStaff creates a login and a staff record maintained by it.
func (e *testEnv) linkedStaff(t *testing.T, name string, role models.Role) (*models.Staff, auth.Session) {
	t.Helper()
	u := &models.User{Name: name, Phone: nextPhone(), Role: role, IsActive: true}
	if err := e.stores.Users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	id := u.ID
	st, err := e.staff.Create(context.Background(), hrSession, &models.StaffRequest{
		UserID: &id, Name: name, Phone: u.Phone, Role: role,
	})
	if err != nil {
		t.Fatalf("create staff: %v", err)
	}
	return st, auth.Session{UserID: u.ID, Name: u.Name, Role: role}
}

func (e *testEnv) order(t *testing.T, s auth.Session, attendees int, menu models.MenuType) *models.Order {
	t.Helper()
	o, err := e.orders.Create(context.Background(), s, &models.OrderRequest{
		Date: "2026-12-20", EventType: "Wedding", Venue: "Lawn 2", Attendees: attendees, MenuType: menu,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return o
}

func sessionOf(u *models.User) auth.Session {
	return auth.Session{UserID: u.ID, Name: u.Name, Role: u.Role}
}
