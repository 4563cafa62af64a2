package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"staffing-backend/internal/auth"
	"staffing-backend/internal/generative"
	"staffing-backend/internal/handlers"
	"staffing-backend/internal/health"
	"staffing-backend/internal/middleware"
	"staffing-backend/internal/models"
	"staffing-backend/internal/repositories/memstore"
	"staffing-backend/internal/services"
	"staffing-backend/internal/sms"
	"staffing-backend/pkg/logger"
)

const (
	adminPhone    = "9000000000"
	adminPassword = "admin-pass"
)

type apiClient struct {
	t      *testing.T
	server http.Handler
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	log := logger.Discard()
	m := memstore.New()
	stores := services.Stores{
		Users:        m.Users(),
		Staff:        m.Staff(),
		Orders:       m.Orders(),
		Availability: m.Availability(),
		Invoices:     m.Invoices(),
		Payouts:      m.Payouts(),
		Firms:        m.Firms(),
		Inquiries:    m.Inquiries(),
		ActivityLogs: m.ActivityLogs(),
		SMSLogs:      m.SMSLogs(),
	}
	jwt := auth.NewJWTManager("router-test", "test", 1)

	activity := services.NewActivityService(stores.ActivityLogs, log)
	users := services.NewUserService(stores.Users, jwt, activity, log)
	staff := services.NewStaffService(stores.Staff, stores.Users, activity)
	availability := services.NewAvailabilityService(stores.Availability, stores.Staff)
	orders := services.NewOrderService(stores.Orders, stores.Users, stores.Staff, activity, nil, log)
	assignments := services.NewAssignmentService(stores.Orders, stores.Staff, stores.Availability, activity, nil, log)
	invoices := services.NewInvoiceService(stores.Invoices, stores.Orders, stores.Users, nil, nil, activity, nil, log)
	payouts := services.NewPayoutService(stores.Payouts, stores.Orders, stores.Staff, activity)
	dispatcher := sms.NewDispatcher(sms.NewMockSMSService(log), 1000, stores.SMSLogs, log)
	t.Cleanup(dispatcher.Wait)
	drafter := generative.NewDrafter(generative.NewGeminiClient(generative.Config{}))

	if err := users.EnsureAdmin(context.Background(), "Admin", adminPhone, adminPassword); err != nil {
		t.Fatal(err)
	}

	router := NewRouter(Handlers{
		Auth:         handlers.NewAuthHandler(users, log),
		Users:        handlers.NewUserHandler(users, log),
		Staff:        handlers.NewStaffHandler(staff, payouts, log),
		Availability: handlers.NewAvailabilityHandler(availability, log),
		Orders:       handlers.NewOrderHandler(orders, assignments, log),
		Invoices:     handlers.NewInvoiceHandler(invoices, log),
		Payouts:      handlers.NewPayoutHandler(payouts, log),
		Firms:        handlers.NewFirmHandler(services.NewFirmService(stores.Firms, activity), log),
		Inquiries:    handlers.NewInquiryHandler(services.NewInquiryService(stores.Inquiries, activity, log), log),
		SMS:          handlers.NewSMSHandler(services.NewNotificationService(stores.Orders, stores.Staff, stores.SMSLogs, dispatcher, activity), log),
		AI:           handlers.NewAIHandler(services.NewDraftingService(drafter, stores.Orders, stores.Invoices, stores.Firms, stores.Users, log), log),
		ActivityLogs: handlers.NewActivityLogHandler(activity, log),
		Health:       handlers.NewHealthHandler(health.NewHealthChecker(health.PingFunc(func(context.Context) error { return nil }), nil)),
		OrderFeed:    func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) },
	}, middleware.NewAuthMiddleware(jwt, stores.Users), middleware.NewRateLimiter(1000))

	return &apiClient{t: t, server: router}
}

func (c *apiClient) do(method, path, token string, body interface{}, out interface{}) int {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "10.0.0.1:5000"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c.server.ServeHTTP(rec, req)
	if out != nil && rec.Code < 300 {
		if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
			c.t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return rec.Code
}

func (c *apiClient) login(phone, password string) string {
	c.t.Helper()
	var resp models.AuthResponse
	if code := c.do("POST", "/api/auth/login", "", models.LoginRequest{Phone: phone, Password: password}, &resp); code != http.StatusOK {
		c.t.Fatalf("login %s: status %d", phone, code)
	}
	return resp.Token
}

func (c *apiClient) expect(method, path, token string, body interface{}, want int, out interface{}) {
	c.t.Helper()
	if got := c.do(method, path, token, body, out); got != want {
		c.t.Fatalf("%s %s: status %d, want %d", method, path, got, want)
	}
}

func TestPublicAndUnauthenticatedRoutes(t *testing.T) {
	api := newAPI(t)

	api.expect("GET", "/health", "", nil, http.StatusOK, nil)
	api.expect("GET", "/api/orders", "", nil, http.StatusUnauthorized, nil)
	api.expect("GET", "/api/orders", "not-a-token", nil, http.StatusUnauthorized, nil)
	api.expect("POST", "/api/inquiries", "", models.InquiryRequest{Name: "Ravi", Phone: "9876543210"}, http.StatusCreated, nil)
	api.expect("POST", "/api/auth/login", "", models.LoginRequest{Phone: adminPhone, Password: "wrong"}, http.StatusUnauthorized, nil)
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	api := newAPI(t)
	admin := api.login(adminPhone, adminPassword)

	var reg models.AuthResponse
	api.expect("POST", "/api/auth/register", "", models.CreateUserRequest{Name: "Asha", Phone: "9876500001", Password: "secret123"}, http.StatusCreated, &reg)
	client := reg.Token

	var order models.Order
	api.expect("POST", "/api/orders", client, models.OrderRequest{Date: "2026-12-31", Attendees: 10, MenuType: models.MenuVeg}, http.StatusCreated, &order)
	if order.Status != models.OrderPending {
		t.Fatalf("status = %s", order.Status)
	}
	api.expect("POST", "/api/orders", client, models.OrderRequest{Date: "tomorrow", Attendees: 10, MenuType: models.MenuVeg}, http.StatusBadRequest, nil)

	// Role gates: clients cannot confirm or see candidates.
	api.expect("POST", "/api/orders/"+order.ID+"/confirm", client, nil, http.StatusForbidden, nil)
	api.expect("GET", "/api/orders/"+order.ID+"/candidates", client, nil, http.StatusForbidden, nil)
	api.expect("POST", "/api/orders/"+order.ID+"/complete", admin, nil, http.StatusConflict, nil)

	api.expect("POST", "/api/orders/"+order.ID+"/confirm", admin, nil, http.StatusOK, nil)

	var waiter models.Staff
	api.expect("POST", "/api/staff", admin, models.StaffRequest{Name: "Kiran", Phone: "9876500002", Role: models.RoleWaiter}, http.StatusCreated, &waiter)

	var candidates []models.Candidate
	api.expect("GET", "/api/orders/"+order.ID+"/candidates", admin, nil, http.StatusOK, &candidates)
	if len(candidates) != 1 || candidates[0].Staff.ID != waiter.ID {
		t.Fatalf("candidates = %+v", candidates)
	}
	api.expect("POST", "/api/orders/"+order.ID+"/assign", admin, map[string]string{"staff_id": waiter.ID}, http.StatusOK, nil)

	api.expect("POST", "/api/orders/"+order.ID+"/invoice", admin, nil, http.StatusConflict, nil)
	api.expect("POST", "/api/orders/"+order.ID+"/complete", admin, nil, http.StatusOK, nil)
	api.expect("POST", "/api/orders/"+order.ID+"/assign", admin, map[string]string{"staff_id": waiter.ID}, http.StatusConflict, nil)
	api.expect("POST", "/api/orders/"+order.ID+"/review", admin, nil, http.StatusOK, nil)

	var inv models.Invoice
	api.expect("POST", "/api/orders/"+order.ID+"/invoice", admin, nil, http.StatusCreated, &inv)
	if inv.TotalAmount != 15576 {
		t.Errorf("total = %.2f, want 15576", inv.TotalAmount)
	}
	api.expect("GET", "/api/orders/"+order.ID+"/invoice", client, nil, http.StatusOK, nil)
	api.expect("POST", "/api/orders/"+order.ID+"/invoice/payment-order", client, nil, http.StatusServiceUnavailable, nil)
	api.expect("GET", "/api/invoices", client, nil, http.StatusForbidden, nil)

	var got models.Order
	api.expect("GET", "/api/orders/"+order.ID, client, nil, http.StatusOK, &got)
	if got.Status != models.OrderReviewed || got.InvoiceStatus != models.InvoiceGenerated {
		t.Errorf("order = %s/%s", got.Status, got.InvoiceStatus)
	}
}

func TestRoleChangeAppliesToNextRequest(t *testing.T) {
	api := newAPI(t)
	admin := api.login(adminPhone, adminPassword)

	var reg models.AuthResponse
	api.expect("POST", "/api/auth/register", "", models.CreateUserRequest{Name: "Neha", Phone: "9876500003", Password: "secret123"}, http.StatusCreated, &reg)
	api.expect("GET", "/api/firms", reg.Token, nil, http.StatusForbidden, nil)

	api.expect("PUT", "/api/users/"+reg.User.ID+"/role", admin, map[string]string{"role": string(models.RoleSales)}, http.StatusOK, nil)
	api.expect("GET", "/api/firms", reg.Token, nil, http.StatusOK, nil)

	api.expect("PUT", "/api/users/"+reg.User.ID+"/active", admin, map[string]bool{"is_active": false}, http.StatusOK, nil)
	api.expect("GET", "/api/me", reg.Token, nil, http.StatusForbidden, nil)
}
