package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/spec-kit/salon-booking/internal/domain"
	"github.com/spec-kit/salon-booking/internal/events"
	"github.com/spec-kit/salon-booking/internal/repository"
	apperrors "github.com/spec-kit/salon-booking/pkg/util"
)

// Clock returns the current time. Services take one so tests can pin "today".
type Clock func() time.Time

// Cache is the read-through cache used for the catalog and availability.
// Implementations must treat backend failures as misses.
type Cache interface {
	Get(ctx context.Context, key string) []byte
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
}

const servicesCacheKey = "services:all"

func availabilityCacheKey(date string) string {
	return "availability:" + date
}

func cacheGetJSON(ctx context.Context, cache Cache, key string, dest any) bool {
	if cache == nil {
		return false
	}
	raw := cache.Get(ctx, key)
	if raw == nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func cacheSetJSON(ctx context.Context, cache Cache, key string, value any, ttl time.Duration) {
	if cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	cache.Set(ctx, key, raw, ttl)
}

func cacheDelete(ctx context.Context, cache Cache, keys ...string) {
	if cache == nil {
		return
	}
	cache.Delete(ctx, keys...)
}

// storeError maps repository sentinels to domain errors.
func storeError(err error, resource string, details map[string]any) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(resource, details)
	}
	return apperrors.NewStoreError(err)
}

func publish(ctx context.Context, dispatcher events.Dispatcher, now time.Time, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = now
	}
	_ = dispatcher.Publish(ctx, event)
}

func actorOf(user *domain.User) events.Actor {
	if user == nil {
		return events.Actor{}
	}
	id := user.ID
	return events.Actor{UserID: &id, Role: user.Role}
}
