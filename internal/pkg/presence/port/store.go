package port

import (
	"context"
	"time"
)

// Store persists the durable online/offline flag and last-seen timestamp.
// This is the cross-process view of presence; live sessions are tracked
// separately by the in-memory registry and the two deliberately diverge
// (heartbeat-only clients are online with no socket, and vice versa during
// reconnect races).
type Store interface {
	// SetOnline flips the user online and advances last_seen.
	SetOnline(ctx context.Context, userID int64) error

	// SetOffline flips the user offline.
	SetOffline(ctx context.Context, userID int64) error

	// SweepStale atomically flips offline every online user whose last_seen
	// is older than cutoff and returns their ids.
	SweepStale(ctx context.Context, cutoff time.Time) ([]int64, error)
}
