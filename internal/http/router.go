package http

import (
	"net/http"

	"staffing-backend/internal/handlers"
	"staffing-backend/internal/middleware"
	"staffing-backend/internal/models"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Users        *handlers.UserHandler
	Staff        *handlers.StaffHandler
	Availability *handlers.AvailabilityHandler
	Orders       *handlers.OrderHandler
	Invoices     *handlers.InvoiceHandler
	Payouts      *handlers.PayoutHandler
	Firms        *handlers.FirmHandler
	Inquiries    *handlers.InquiryHandler
	SMS          *handlers.SMSHandler
	AI           *handlers.AIHandler
	ActivityLogs *handlers.ActivityLogHandler
	Health       *handlers.HealthHandler
	// OrderFeed upgrades to the live order websocket.
	OrderFeed http.HandlerFunc
}

func NewRouter(h Handlers, authMiddleware *middleware.AuthMiddleware, publicLimiter *middleware.RateLimiter) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	// Health and metrics
	r.HandleFunc("/health", h.Health.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", h.Health.ReadinessHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Public API routes, rate limited per IP
	public := r.PathPrefix("/api").Subrouter()
	public.Use(publicLimiter.Limit)
	public.HandleFunc("/auth/login", h.Auth.Login).Methods("POST")
	public.HandleFunc("/auth/register", h.Auth.Register).Methods("POST")
	public.HandleFunc("/inquiries", h.Inquiries.Submit).Methods("POST")

	// Live order feed
	r.Handle("/ws/orders", authMiddleware.Authenticate(h.OrderFeed)).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Self service
	api.HandleFunc("/me", h.Auth.Me).Methods("GET")
	api.HandleFunc("/me/staff", h.Staff.Mine).Methods("GET")
	api.HandleFunc("/me/earnings", h.Staff.MyEarnings).Methods("GET")
	api.HandleFunc("/me/availability", h.Availability.GetMine).Methods("GET")
	api.HandleFunc("/me/availability", h.Availability.SetMine).Methods("PUT")
	api.HandleFunc("/me/availability/clear", h.Availability.ClearMine).Methods("POST")
	api.HandleFunc("/users/{id}", h.Users.GetUser).Methods("GET")
	api.HandleFunc("/users/{id}", h.Users.UpdateUser).Methods("PUT")

	// Orders: visibility and per-action roles are enforced by the order service
	api.HandleFunc("/orders", h.Orders.Create).Methods("POST")
	api.HandleFunc("/orders", h.Orders.List).Methods("GET")
	api.HandleFunc("/orders/{id}", h.Orders.Get).Methods("GET")
	api.HandleFunc("/orders/{id}", h.Orders.Update).Methods("PUT")
	api.HandleFunc("/orders/{id}/confirm", h.Orders.Confirm()).Methods("POST")
	api.HandleFunc("/orders/{id}/cancel", h.Orders.Cancel()).Methods("POST")
	api.HandleFunc("/orders/{id}/complete", h.Orders.Complete()).Methods("POST")
	api.HandleFunc("/orders/{id}/review", h.Orders.Review()).Methods("POST")
	api.HandleFunc("/orders/{id}/staff", h.Orders.AssignedStaff).Methods("GET")

	// Invoices: clients read and pay their own
	api.HandleFunc("/orders/{id}/invoice", h.Invoices.Get).Methods("GET")
	api.HandleFunc("/orders/{id}/invoice/pdf", h.Invoices.DownloadPDF).Methods("GET")
	api.HandleFunc("/orders/{id}/invoice/payment-order", h.Invoices.CreatePaymentOrder).Methods("POST")
	api.HandleFunc("/payments/verify", h.Invoices.VerifyPayment).Methods("POST")

	// Staff records and availability; earnings are checked per caller
	api.HandleFunc("/staff/{id}", h.Staff.Get).Methods("GET")
	api.HandleFunc("/staff/{id}/earnings", h.Staff.Earnings).Methods("GET")
	api.HandleFunc("/staff/{id}/availability", h.Availability.Get).Methods("GET")
	api.HandleFunc("/staff/{id}/availability", h.Availability.Set).Methods("PUT")
	api.HandleFunc("/staff/{id}/availability/clear", h.Availability.Clear).Methods("POST")

	// Operations
	ops := r.PathPrefix("/api").Subrouter()
	ops.Use(authMiddleware.RequireRole(models.RoleAdmin, models.RoleOperationalManager))
	ops.HandleFunc("/orders/{id}/candidates", h.Orders.Candidates).Methods("GET")
	ops.HandleFunc("/orders/{id}/assign", h.Orders.Assign).Methods("POST")
	ops.HandleFunc("/orders/{id}/assign/{staffId}", h.Orders.Unassign).Methods("DELETE")
	ops.HandleFunc("/orders/{id}/notify", h.SMS.NotifyAssignedStaff).Methods("POST")
	ops.HandleFunc("/orders/{id}/sms-logs", h.SMS.Logs).Methods("GET")

	// HR
	hr := r.PathPrefix("/api/staff").Subrouter()
	hr.Use(authMiddleware.RequireRole(models.RoleAdmin, models.RoleHR, models.RoleOperationalManager, models.RoleAccountant))
	hr.HandleFunc("", h.Staff.List).Methods("GET")
	hr.HandleFunc("", h.Staff.Create).Methods("POST")
	hr.HandleFunc("/{id}", h.Staff.Update).Methods("PUT")
	hr.HandleFunc("/{id}/active", h.Staff.SetActive).Methods("PUT")

	// Accounts
	billing := r.PathPrefix("/api").Subrouter()
	billing.Use(authMiddleware.RequireRole(models.RoleAdmin, models.RoleAccountant))
	billing.HandleFunc("/invoices", h.Invoices.List).Methods("GET")
	billing.HandleFunc("/orders/{id}/invoice", h.Invoices.Generate).Methods("POST")
	billing.HandleFunc("/orders/{id}/payouts", h.Payouts.Create).Methods("POST")
	billing.HandleFunc("/orders/{id}/payouts", h.Payouts.ListByOrder).Methods("GET")
	billing.HandleFunc("/payouts/{payoutId}/paid", h.Payouts.MarkPaid).Methods("POST")

	// Sales
	sales := r.PathPrefix("/api").Subrouter()
	sales.Use(authMiddleware.RequireRole(models.RoleAdmin, models.RoleSales, models.RoleAccountant))
	sales.HandleFunc("/firms", h.Firms.List).Methods("GET")
	sales.HandleFunc("/firms", h.Firms.Create).Methods("POST")
	sales.HandleFunc("/firms/{id}", h.Firms.Get).Methods("GET")
	sales.HandleFunc("/firms/{id}", h.Firms.Update).Methods("PUT")
	sales.HandleFunc("/firms/{id}", h.Firms.Delete).Methods("DELETE")
	sales.HandleFunc("/inquiries", h.Inquiries.List).Methods("GET")
	sales.HandleFunc("/inquiries/{id}", h.Inquiries.Get).Methods("GET")
	sales.HandleFunc("/inquiries/{id}/status", h.Inquiries.UpdateStatus).Methods("PUT")

	// Generative drafting; the drafting service narrows roles per flow
	ai := r.PathPrefix("/api/ai").Subrouter()
	ai.Use(authMiddleware.RequireRole(models.RoleAdmin, models.RoleOperationalManager, models.RoleSales, models.RoleAccountant))
	ai.HandleFunc("/waiter-count", h.AI.SuggestWaiterCount).Methods("POST")
	ai.HandleFunc("/agreement", h.AI.DraftAgreement).Methods("POST")
	ai.HandleFunc("/orders/{id}/invoice-draft", h.AI.DraftInvoice).Methods("POST")

	// Admin only
	admin := r.PathPrefix("/api").Subrouter()
	admin.Use(authMiddleware.RequireRole(models.RoleAdmin))
	admin.HandleFunc("/users", h.Users.CreateUser).Methods("POST")
	admin.HandleFunc("/users", h.Users.ListUsers).Methods("GET")
	admin.HandleFunc("/users/{id}/role", h.Users.UpdateRole).Methods("PUT")
	admin.HandleFunc("/users/{id}/active", h.Users.ToggleActiveStatus).Methods("PUT")
	admin.HandleFunc("/users/{id}", h.Users.DeleteUser).Methods("DELETE")
	admin.HandleFunc("/activity-logs", h.ActivityLogs.List).Methods("GET")
	admin.HandleFunc("/health/detailed", h.Health.DetailedHealth).Methods("GET")

	return r
}
