package presence

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/1mmey/SecurityChat/internal/pkg/presence/port"
)

const (
	DefaultSweepInterval    = 60 * time.Second
	DefaultHeartbeatTimeout = 2 * time.Minute
)

// Reconciler periodically demotes users whose last-seen timestamp exceeds the
// heartbeat timeout. It runs independently of the session registry: a crashed
// process or a heartbeat-only client leaves the persisted flag stale, and
// this loop is what eventually corrects it.
type Reconciler struct {
	store    port.Store
	interval time.Duration
	timeout  time.Duration
}

func NewReconciler(store port.Store, interval, timeout time.Duration) *Reconciler {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if timeout <= 0 {
		timeout = DefaultHeartbeatTimeout
	}
	return &Reconciler{store: store, interval: interval, timeout: timeout}
}

// Run sweeps on a fixed interval until ctx is canceled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.Sweep(ctx); err != nil {
				logrus.WithError(err).Error("presence sweep failed")
			}
		}
	}
}

// Sweep flips offline every user online in storage but silent for longer
// than the timeout, and returns the affected ids.
func (r *Reconciler) Sweep(ctx context.Context) ([]int64, error) {
	cutoff := time.Now().Add(-r.timeout)
	ids, err := r.store.SweepStale(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		logrus.WithFields(logrus.Fields{
			"count":  len(ids),
			"cutoff": cutoff,
		}).Info("swept stale presence entries")
	}
	return ids, nil
}
