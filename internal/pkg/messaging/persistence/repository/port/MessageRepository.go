package repository

import (
	"context"

	messaging "github.com/1mmey/SecurityChat/internal/pkg/messaging/domain"
)

// MessageRepository defines the durable message log.
type MessageRepository interface {
	// Save persists a message exactly as routed (including its Delivered
	// flag) and returns its id.
	Save(ctx context.Context, m messaging.Message) (int64, error)

	// DrainOffline atomically claims all undelivered messages addressed to
	// userID: it marks them delivered and returns them ordered by creation
	// time in the same operation. Two concurrent drains must never both
	// return the same message, so a second drain with no intervening send
	// yields an empty slice.
	DrainOffline(ctx context.Context, userID int64) ([]messaging.Message, error)

	// History returns the two-way conversation between a and b in creation
	// order, paginated.
	History(ctx context.Context, a, b int64, limit, offset int) ([]messaging.Message, error)
}
