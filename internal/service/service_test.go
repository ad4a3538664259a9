package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/salon-booking/internal/auth"
	"github.com/spec-kit/salon-booking/internal/events"
	"github.com/spec-kit/salon-booking/internal/repository"
	"github.com/spec-kit/salon-booking/internal/repository/memory"
)

var testNow = time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key]
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		c.deleted = append(c.deleted, k)
	}
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) handle(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store        *repository.Store
	clock        *fakeClock
	cache        *fakeCache
	events       *recorder
	bookings     *BookingService
	availability *AvailabilityService
	auth         *AuthService
	catalog      *CatalogService
	admin        *AdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:  memory.NewStore(),
		clock:  &fakeClock{now: testNow},
		cache:  newFakeCache(),
		events: &recorder{},
	}
	dispatcher := events.NewInMemoryDispatcher()
	for _, et := range []events.EventType{
		events.EventBookingCreated, events.EventBookingStatusChanged, events.EventBookingDeleted,
		events.EventUserRegistered, events.EventUserLoggedIn,
	} {
		dispatcher.Subscribe(et, f.events.handle)
	}

	f.bookings = NewBookingService(BookingDependencies{
		BookingRepo: f.store.Bookings,
		Dispatcher:  dispatcher,
		Cache:       f.cache,
		Clock:       f.clock.Now,
		Location:    time.UTC,
		Logger:      zap.NewNop(),
	})
	f.availability = NewAvailabilityService(f.store.Bookings, f.cache, time.Minute)

	authSvc, err := NewAuthService(AuthDependencies{
		UserRepo:       f.store.Users,
		LoginEventRepo: f.store.LoginEvents,
		TokenManager:   auth.NewTokenManager("test-secret", time.Hour).WithClock(f.clock.Now),
		Dispatcher:     dispatcher,
		BcryptCost:     4,
		Clock:          f.clock.Now,
		Logger:         zap.NewNop(),
	})
	require.NoError(t, err)
	f.auth = authSvc
	f.catalog = NewCatalogService(f.store.Services, f.cache, time.Minute, f.clock.Now)
	f.admin = NewAdminService(f.store, f.clock.Now)
	return f
}

func validBooking() CreateBookingInput {
	return CreateBookingInput{
		CustomerName: "Sarah Johnson",
		Email:        "sarah@example.com",
		Phone:        "+1 (555) 123-4567",
		Service:      "Hair Styling",
		Date:         "2026-01-11",
		Time:         "2:00 PM",
	}
}
