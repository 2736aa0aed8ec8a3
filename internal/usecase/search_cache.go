package usecase

import (
	"context"
	"time"
)

// SearchCache is the slice of the Redis cache the search usecase needs.
// A nil cache (or an unavailable Redis) means every search recomputes.
type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}
