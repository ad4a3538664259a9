package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/salon-booking/internal/api/http/handlers"
	"github.com/spec-kit/salon-booking/internal/auth"
	"github.com/spec-kit/salon-booking/internal/domain"
	"github.com/spec-kit/salon-booking/internal/events"
	"github.com/spec-kit/salon-booking/internal/observability"
	"github.com/spec-kit/salon-booking/internal/persistence"
	"github.com/spec-kit/salon-booking/internal/repository"
	"github.com/spec-kit/salon-booking/internal/repository/memory"
	"github.com/spec-kit/salon-booking/internal/service"
)

type testServer struct {
	app        *fiber.App
	store      *repository.Store
	tokens     *auth.TokenManager
	adminToken string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	dispatcher := events.NewInMemoryDispatcher()
	logger := zap.NewNop()

	authService, err := service.NewAuthService(service.AuthDependencies{
		UserRepo:       store.Users,
		LoginEventRepo: store.LoginEvents,
		TokenManager:   tokens,
		Dispatcher:     dispatcher,
		BcryptCost:     4,
		Logger:         logger,
	})
	require.NoError(t, err)

	backend := &persistence.Backend{Driver: "memory", Store: store}
	app := NewServer(ServerConfig{
		AppName:     "salon-test",
		MetricsPath: "/metrics",
		Logger:      logger,
		Metrics:     observability.NewMetrics(),
		Routes: RouteConfig{
			Health: handlers.NewHealthHandler("salon-test", "test", backend, nil),
			Auth:   handlers.NewAuthHandler(authService),
			Services: handlers.NewServicesHandler(
				service.NewCatalogService(store.Services, nil, 0, nil)),
			Bookings: handlers.NewBookingsHandler(service.NewBookingService(service.BookingDependencies{
				BookingRepo: store.Bookings,
				Dispatcher:  dispatcher,
				Logger:      logger,
			})),
			Availability:   handlers.NewAvailabilityHandler(service.NewAvailabilityService(store.Bookings, nil, 0)),
			Admin:          handlers.NewAdminHandler(service.NewAdminService(store, nil)),
			AuthMiddleware: auth.NewAuthMiddleware(tokens, store.Users),
		},
	})

	hash, err := auth.HashPassword("admin123", 4)
	require.NoError(t, err)
	admin := &domain.User{Name: "Admin", Email: "admin@salon.com", PasswordHash: hash, Role: domain.RoleAdmin, CreatedAt: time.Now()}
	require.NoError(t, store.Users.Create(context.Background(), admin))
	token, err := tokens.GenerateToken(admin)
	require.NoError(t, err)

	return &testServer{app: app, store: store, tokens: tokens, adminToken: token.Value}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) (*stdhttp.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

func (s *testServer) signup(t *testing.T, name, email string) string {
	t.Helper()
	resp, body := s.do(t, fiber.MethodPost, "/api/auth/signup",
		map[string]string{"name": name, "email": email, "password": "secret1"}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return body["token"].(string)
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format(domain.DateFormat)
}

func bookingBody(email, slot string) map[string]string {
	return map[string]string{
		"customerName": "Sarah Johnson",
		"email":        email,
		"phone":        "555-123-4567",
		"service":      "Hair Styling",
		"date":         futureDate(),
		"time":         slot,
	}
}

func errorCode(body map[string]any) string {
	errBody, _ := body["error"].(map[string]any)
	code, _ := errBody["code"].(string)
	return code
}

func TestHealthAndUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, fiber.MethodGet, "/api/health", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Salon Booking API is running", body["message"])

	resp, body = s.do(t, fiber.MethodGet, "/api/health/ready", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ready", body["status"])

	resp, body = s.do(t, fiber.MethodGet, "/api/nope", nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "NOT_FOUND", errorCode(body))
}

func TestAuthEndpoints(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, fiber.MethodPost, "/api/auth/signup",
		map[string]string{"name": "Jane", "email": "jane@example.com", "password": "secret1"}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])
	assert.NotEmpty(t, body["expiresAt"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "customer", user["role"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")

	resp, body = s.do(t, fiber.MethodPost, "/api/auth/signup",
		map[string]string{"name": "Jane", "email": "jane@example.com", "password": "secret1"}, "")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", errorCode(body))

	resp, _ = s.do(t, fiber.MethodPost, "/api/auth/login",
		map[string]string{"email": "jane@example.com", "password": "secret1"}, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = s.do(t, fiber.MethodPost, "/api/auth/signup",
		map[string]string{"name": "Long", "email": "long@example.com", "password": strings.Repeat("x", 73)}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_PASSWORD", errorCode(body))

	resp, wrong := s.do(t, fiber.MethodPost, "/api/auth/login",
		map[string]string{"email": "jane@example.com", "password": "nope"}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	_, unknown := s.do(t, fiber.MethodPost, "/api/auth/login",
		map[string]string{"email": "ghost@example.com", "password": "nope"}, "")
	assert.Equal(t, wrong, unknown)

	resp, body = s.do(t, fiber.MethodPost, "/api/auth/forgot-password", map[string]string{"email": "x@y.com"}, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, service.ForgotPasswordMessage, body["message"])

	resp, body = s.do(t, fiber.MethodPost, "/api/auth/forgot-password", map[string]string{}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MISSING_FIELD", errorCode(body))
}

func TestBookingFlow(t *testing.T) {
	s := newTestServer(t)
	customer := s.signup(t, "Sarah", "sarah@example.com")

	resp, body := s.do(t, fiber.MethodPost, "/api/bookings", bookingBody("sarah@example.com", "2:00 PM"), customer)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	booking := body["booking"].(map[string]any)
	assert.Equal(t, "pending", booking["status"])
	assert.NotNil(t, booking["userId"])
	assert.Nil(t, booking["updatedAt"])

	resp, body = s.do(t, fiber.MethodPost, "/api/bookings", bookingBody("mike@example.com", "2:00 PM"), "")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "SLOT_TAKEN", errorCode(body))

	bad := bookingBody("mike@example.com", "3:00 PM")
	bad["customerName"] = "  "
	resp, body = s.do(t, fiber.MethodPost, "/api/bookings", bad, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MISSING_FIELD", errorCode(body))

	resp, body = s.do(t, fiber.MethodGet, "/api/availability/"+futureDate(), nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{"2:00 PM"}, body["bookedSlots"])
	assert.Len(t, body["availableSlots"], 10)

	resp, body = s.do(t, fiber.MethodPatch, "/api/bookings/1", map[string]string{"status": "confirmed"}, s.adminToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "confirmed", body["status"])
	assert.NotNil(t, body["updatedAt"])

	resp, body = s.do(t, fiber.MethodPatch, "/api/bookings/1", map[string]string{"status": "pending"}, s.adminToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "ILLEGAL_TRANSITION", errorCode(body))

	resp, body = s.do(t, fiber.MethodDelete, "/api/bookings/1", nil, customer)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Booking deleted successfully", body["message"])

	resp, _ = s.do(t, fiber.MethodGet, "/api/bookings/1", nil, s.adminToken)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestBookingAuthorization(t *testing.T) {
	s := newTestServer(t)
	sarah := s.signup(t, "Sarah", "sarah@example.com")
	mike := s.signup(t, "Mike", "mike@example.com")

	resp, _ := s.do(t, fiber.MethodPost, "/api/bookings", bookingBody("sarah@example.com", "9:00 AM"), "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{name: "list all anonymous", method: fiber.MethodGet, path: "/api/bookings", status: fiber.StatusUnauthorized},
		{name: "list all customer", method: fiber.MethodGet, path: "/api/bookings", token: sarah, status: fiber.StatusForbidden},
		{name: "list all admin", method: fiber.MethodGet, path: "/api/bookings", token: s.adminToken, status: fiber.StatusOK},
		{name: "filter admin", method: fiber.MethodGet, path: "/api/bookings?status=pending", token: s.adminToken, status: fiber.StatusOK},
		{name: "bad filter", method: fiber.MethodGet, path: "/api/bookings?status=lost", token: s.adminToken, status: fiber.StatusBadRequest},
		{name: "own email", method: fiber.MethodGet, path: "/api/bookings/user/sarah@example.com", token: sarah, status: fiber.StatusOK},
		{name: "own email percent-encoded", method: fiber.MethodGet, path: "/api/bookings/user/sarah%40example.com", token: sarah, status: fiber.StatusOK},
		{name: "other email percent-encoded", method: fiber.MethodGet, path: "/api/bookings/user/sarah%40example.com", token: mike, status: fiber.StatusForbidden},
		{name: "other email", method: fiber.MethodGet, path: "/api/bookings/user/sarah@example.com", token: mike, status: fiber.StatusForbidden},
		{name: "owner by email", method: fiber.MethodGet, path: "/api/bookings/1", token: sarah, status: fiber.StatusOK},
		{name: "not owner", method: fiber.MethodGet, path: "/api/bookings/1", token: mike, status: fiber.StatusForbidden},
		{name: "bad id", method: fiber.MethodGet, path: "/api/bookings/abc", token: sarah, status: fiber.StatusBadRequest},
		{name: "garbage token", method: fiber.MethodGet, path: "/api/bookings/1", token: "garbage", status: fiber.StatusUnauthorized},
		{name: "patch by customer", method: fiber.MethodPatch, path: "/api/bookings/1", token: sarah, status: fiber.StatusForbidden},
		{name: "delete by other", method: fiber.MethodDelete, path: "/api/bookings/1", token: mike, status: fiber.StatusForbidden},
		{name: "stats customer", method: fiber.MethodGet, path: "/api/admin/stats", token: sarah, status: fiber.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := s.do(t, tt.method, tt.path, nil, tt.token)
			assert.Equal(t, tt.status, resp.StatusCode, "body: %v", body)
		})
	}
}

func TestListByEncodedEmailReturnsBookings(t *testing.T) {
	s := newTestServer(t)
	sarah := s.signup(t, "Sarah", "sarah@example.com")
	resp, _ := s.do(t, fiber.MethodPost, "/api/bookings", bookingBody("sarah@example.com", "9:00 AM"), "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	for _, token := range []string{sarah, s.adminToken} {
		req := httptest.NewRequest(fiber.MethodGet, "/api/bookings/user/sarah%40example.com", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := s.app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var list []map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
		require.Len(t, list, 1)
		assert.Equal(t, "sarah@example.com", list[0]["email"])
	}
}

func TestCatalogEndpoints(t *testing.T) {
	s := newTestServer(t)
	customer := s.signup(t, "Jane", "jane@example.com")
	payload := map[string]string{"name": "Manicure", "priceRange": "$25 - $60", "category": "Nails"}

	resp, _ := s.do(t, fiber.MethodPost, "/api/services", payload, customer)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, body := s.do(t, fiber.MethodPost, "/api/services", payload, s.adminToken)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "$25 - $60", body["priceRange"])

	resp, body = s.do(t, fiber.MethodPut, "/api/services/1", map[string]string{"duration": "45 min"}, s.adminToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "45 min", body["duration"])
	assert.Equal(t, "Manicure", body["name"])

	resp, body = s.do(t, fiber.MethodPatch, "/api/services/1", map[string]string{"priceRange": "free"}, s.adminToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_PRICE_RANGE", errorCode(body))

	resp, _ = s.do(t, fiber.MethodGet, "/api/services/1", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = s.do(t, fiber.MethodDelete, "/api/services/1", nil, s.adminToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Manicure", body["service"].(map[string]any)["name"])

	resp, _ = s.do(t, fiber.MethodGet, "/api/services/1", nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAdminEndpointsAndMetrics(t *testing.T) {
	s := newTestServer(t)
	resp, _ := s.do(t, fiber.MethodPost, "/api/bookings", bookingBody("sarah@example.com", "9:00 AM"), "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body := s.do(t, fiber.MethodGet, "/api/admin/stats", nil, s.adminToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["totalUsers"])
	assert.Equal(t, float64(1), body["totalBookings"])
	byStatus := body["bookingsByStatus"].(map[string]any)
	assert.Len(t, byStatus, 4)
	assert.Equal(t, float64(1), byStatus["pending"])

	req := httptest.NewRequest(fiber.MethodGet, "/api/admin/bookings/export?format=csv", nil)
	req.Header.Set("Authorization", "Bearer "+s.adminToken)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(raw), "\n"))

	resp, err = s.app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "salon_http_requests_total")
}
