package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"staffing-backend/internal/auth"
	"staffing-backend/internal/config"
	"staffing-backend/internal/models"
	"staffing-backend/pkg/logger"
)

type fakeUsers map[string]*models.User

func (f fakeUsers) Get(_ context.Context, id string) (*models.User, error) {
	u, ok := f[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return u, nil
}

func newAuth(t *testing.T) (*AuthMiddleware, *auth.JWTManager, fakeUsers) {
	t.Helper()
	jwt := auth.NewJWTManager("test-secret", "staffing-backend", 1)
	users := fakeUsers{
		"admin":  {ID: "admin", Name: "Admin", Role: models.RoleAdmin, IsActive: true},
		"waiter": {ID: "waiter", Name: "Waiter", Role: models.RoleWaiter, IsActive: true},
		"gone":   {ID: "gone", Name: "Gone", Role: models.RoleAdmin, IsActive: false},
	}
	return NewAuthMiddleware(jwt, users), jwt, users
}

func tokenFor(t *testing.T, jwt *auth.JWTManager, u *models.User) string {
	t.Helper()
	tok, err := jwt.GenerateToken(u)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return tok
}

func TestRequireRole(t *testing.T) {
	m, jwt, users := newAuth(t)
	var seen auth.Session
	h := m.RequireRole(models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = SessionFromContext(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", "Bearer " + tokenFor(t, jwt, users["waiter"]), http.StatusForbidden},
		{"suspended", "Bearer " + tokenFor(t, jwt, users["gone"]), http.StatusForbidden},
		{"admin", "Bearer " + tokenFor(t, jwt, users["admin"]), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
	if seen.UserID != "admin" || seen.Role != models.RoleAdmin {
		t.Errorf("session not propagated: %+v", seen)
	}
}

func TestAuthenticate_UsesCurrentRole(t *testing.T) {
	m, jwt, users := newAuth(t)
	tok := tokenFor(t, jwt, users["waiter"])
	users["waiter"].Role = models.RoleCaptain

	var seen auth.Session
	h := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = SessionFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen.Role != models.RoleCaptain {
		t.Errorf("role = %s, want role from the user record", seen.Role)
	}
}

func TestAuthenticate_WebsocketQueryToken(t *testing.T) {
	m, jwt, users := newAuth(t)
	req := httptest.NewRequest(http.MethodGet, "/ws/orders?token="+tokenFor(t, jwt, users["admin"]), nil)
	req.Header.Set("Upgrade", "websocket")
	rec := httptest.NewRecorder()
	m.Authenticate(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestPanicRecovery(t *testing.T) {
	h := PanicRecovery(logger.Discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Internal server error") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2)
	h := rl.Limit(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/inquiries", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}

	// Another client has its own bucket.
	req := httptest.NewRequest(http.MethodPost, "/api/inquiries", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("second client status = %d", rec.Code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.5:1234"
	if got := ClientIP(req); got != "192.168.1.5" {
		t.Errorf("ClientIP = %q", got)
	}
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := ClientIP(req); got != "203.0.113.9" {
		t.Errorf("ClientIP with XFF = %q", got)
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, 0, "json")
	h := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/orders", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	out := buf.String()
	if !strings.Contains(out, `"path":"/api/orders"`) || !strings.Contains(out, `"status":418`) {
		t.Errorf("missing request line: %s", out)
	}
	if strings.Contains(out, `"/health"`) {
		t.Errorf("health probe should not be logged: %s", out)
	}
}

func TestCORSExposesDownloadHeaders(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.CorsAllowedOrigins = []string{"https://dash.example.com"}
	cfg.Server.CorsAllowedMethods = []string{"GET", "POST"}
	cfg.Server.CorsAllowedHeaders = []string{"Authorization", "Content-Type"}

	h := NewCORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", "attachment; filename=INV-000001.pdf")
		w.Write([]byte("%PDF"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/orders/o-1/invoice/pdf", nil)
	req.Header.Set("Origin", "https://dash.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://dash.example.com" {
		t.Fatalf("allow origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Expose-Headers"); !strings.Contains(got, "Content-Disposition") {
		t.Errorf("expose headers = %q", got)
	}

	other := httptest.NewRequest(http.MethodGet, "/api/orders/o-1/invoice/pdf", nil)
	other.Header.Set("Origin", "https://elsewhere.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unknown origin allowed: %q", got)
	}
}
