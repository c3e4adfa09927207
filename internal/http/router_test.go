package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ouveo-backend/internal/auth"
	"ouveo-backend/internal/config"
	"ouveo-backend/internal/handlers"
	"ouveo-backend/internal/middleware"
)

// newTestRouter builds the full route table with empty handlers. Requests in
// these tests are stopped by the router or the auth middleware before any
// handler body runs.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1

	jwtManager := auth.NewJWTManager(cfg)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, nil)

	return NewRouter(
		handlers.NewAuthHandler(nil),
		handlers.NewUserHandler(nil, nil),
		handlers.NewServiceHandler(nil, nil),
		handlers.NewBookingHandler(nil),
		handlers.NewMissionHandler(nil, nil),
		handlers.NewInvoiceHandler(nil, nil),
		handlers.NewPaymentHandler(nil),
		handlers.NewPortfolioHandler(nil, nil),
		handlers.NewMessageHandler(nil),
		handlers.NewReportHandler(nil),
		handlers.NewAnalyticsHandler(nil, nil),
		handlers.NewHealthHandler(nil),
		authMiddleware,
		t.TempDir(),
	)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/api/account"},
		{"POST", "/api/bookings"},
		{"GET", "/api/bookings"},
		{"GET", "/api/missions"},
		{"GET", "/api/invoices"},
		{"GET", "/api/messages"},
		{"POST", "/api/reports"},
		{"GET", "/api/admin/users"},
		{"POST", "/api/services"},
		{"GET", "/api/portfolio"},
	}

	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token: got %d, want 401", p.method, p.path, rec.Code)
		}
	}
}

func TestProtectedRouteRejectsBadToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("GET", "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer not.a.valid.token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("got %d, want 401", rec.Code)
	}
}

func TestProtectedRouteRejectsMalformedHeader(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("GET", "/api/bookings", nil)
	req.Header.Set("Authorization", "token-without-bearer-prefix")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("got %d, want 401", rec.Code)
	}
}

func TestUnknownRouteNotFound(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("GET", "/api/unknown", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("got %d, want 404", rec.Code)
	}
}

func TestNonNumericIDNotRouted(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("DELETE", "/api/services/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("got %d, want 404", rec.Code)
	}
}
