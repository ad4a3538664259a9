package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/salon-booking/internal/domain"
	"github.com/spec-kit/salon-booking/internal/repository/memory"
	apperrors "github.com/spec-kit/salon-booking/pkg/util"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("admin123", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hash)
	assert.NoError(t, ComparePassword(hash, "admin123"))
	assert.Error(t, ComparePassword(hash, "admin124"))
}

func TestTokenRoundTrip(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManager("secret", time.Hour).WithClock(func() time.Time { return now })

	token, err := tm.GenerateToken(&domain.User{ID: 7, Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), token.ExpiresAt)

	claims, err := tm.ParseToken(token.Value)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, "7", claims.Subject)

	_, err = NewTokenManager("other", time.Hour).WithClock(func() time.Time { return now }).ParseToken(token.Value)
	assert.Error(t, err)

	later := NewTokenManager("secret", time.Hour).WithClock(func() time.Time { return now.Add(2 * time.Hour) })
	_, err = later.ParseToken(token.Value)
	assert.Error(t, err)
}

type authFixture struct {
	app      *fiber.App
	tokens   *TokenManager
	admin    *domain.User
	customer *domain.User
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	users := memory.NewUserRepository()
	admin := &domain.User{Name: "Admin", Email: "admin@salon.com", Role: domain.RoleAdmin}
	customer := &domain.User{Name: "John", Email: "user@example.com", Role: domain.RoleCustomer}
	require.NoError(t, users.Create(context.Background(), admin))
	require.NoError(t, users.Create(context.Background(), customer))

	tokens := NewTokenManager("secret", time.Hour)
	mw := NewAuthMiddleware(tokens, users)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		},
	})
	whoami := func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return c.SendString("anonymous")
		}
		return c.SendString(principal.User.Email)
	}
	app.Get("/optional", mw.Optional, whoami)
	app.Get("/private", mw.Handle, RequireAuth(), whoami)
	app.Get("/admin", mw.Handle, RequireRole(domain.RoleAdmin), whoami)

	return authFixture{app: app, tokens: tokens, admin: admin, customer: customer}
}

func (f authFixture) bearer(t *testing.T, user *domain.User) string {
	t.Helper()
	token, err := f.tokens.GenerateToken(user)
	require.NoError(t, err)
	return "Bearer " + token.Value
}

func TestMiddlewareAccess(t *testing.T) {
	f := newAuthFixture(t)

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{name: "optional anonymous", path: "/optional", status: fiber.StatusOK},
		{name: "optional with token", path: "/optional", header: f.bearer(t, f.customer), status: fiber.StatusOK},
		{name: "optional with bad token", path: "/optional", header: "Bearer nope", status: fiber.StatusUnauthorized},
		{name: "private anonymous", path: "/private", status: fiber.StatusUnauthorized},
		{name: "private malformed header", path: "/private", header: "Token abc", status: fiber.StatusUnauthorized},
		{name: "private customer", path: "/private", header: f.bearer(t, f.customer), status: fiber.StatusOK},
		{name: "admin as customer", path: "/admin", header: f.bearer(t, f.customer), status: fiber.StatusForbidden},
		{name: "admin as admin", path: "/admin", header: f.bearer(t, f.admin), status: fiber.StatusOK},
		{name: "unknown user", path: "/private", header: f.bearer(t, &domain.User{ID: 404, Role: domain.RoleAdmin}), status: fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := f.app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
