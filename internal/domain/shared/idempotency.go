package shared

import (
	"context"
	"time"
)

// IdempotencyStore stores processed notification IDs to prevent duplicate processing
type IdempotencyStore interface {
	// MarkProcessed marks a notification as processed with a TTL.
	// Returns true if the notification was newly marked, false if it was already processed.
	MarkProcessed(ctx context.Context, notificationID string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a notification has already been processed
	IsProcessed(ctx context.Context, notificationID string) (bool, error)

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is the time-to-live for processed notification IDs.
	// Dedup is an optimization; the conditional dues update remains the
	// correctness guarantee after the TTL expires.
	TTL time.Duration

	// Enabled determines whether idempotency checking is enabled
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
