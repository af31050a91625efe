// Package presence reconciles three independently-changing facts about a
// user: the live transport connection (session registry), the persisted
// online flag, and heartbeat recency. The tracker drives connect/disconnect/
// heartbeat transitions; the reconciler demotes users that went silent.
package presence

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/1mmey/SecurityChat/internal/infrastructure/realtime"
	"github.com/1mmey/SecurityChat/internal/pkg/presence/port"
)

// Tracker applies the per-user presence state machine:
// OFFLINE -> ONLINE on login, heartbeat or registry register;
// ONLINE -> OFFLINE on logout, registry unregister or reconciler timeout.
// A heartbeat while OFFLINE goes straight to ONLINE.
type Tracker struct {
	registry *realtime.Registry
	store    port.Store
}

func NewTracker(registry *realtime.Registry, store port.Store) *Tracker {
	return &Tracker{registry: registry, store: store}
}

// Registry exposes the session registry for delivery decisions.
func (t *Tracker) Registry() *realtime.Registry {
	return t.registry
}

// OnConnect registers the live session (evicting any previous one) and marks
// the user online in durable storage. The evicted handle, if any, has already
// been closed and is returned for accounting.
func (t *Tracker) OnConnect(ctx context.Context, userID int64, h realtime.Handle) (realtime.Handle, error) {
	evicted := t.registry.Register(userID, h)
	if err := t.store.SetOnline(ctx, userID); err != nil {
		return evicted, err
	}
	logrus.WithField("user_id", userID).Info("user connected")
	return evicted, nil
}

// OnDisconnect removes the session if it is still the current one. Presence
// is only flipped offline when the removal happened; a connection that lost
// the race to a newer login must not mark the newer session's user offline.
func (t *Tracker) OnDisconnect(ctx context.Context, userID int64, h realtime.Handle) error {
	if !t.registry.Unregister(userID, h) {
		return nil
	}
	if err := t.store.SetOffline(ctx, userID); err != nil {
		return err
	}
	logrus.WithField("user_id", userID).Info("user disconnected")
	return nil
}

// OnHeartbeat refreshes last-seen and flips the user online, whether or not
// a live session exists. Heartbeat-only clients are valid online users.
func (t *Tracker) OnHeartbeat(ctx context.Context, userID int64) error {
	return t.store.SetOnline(ctx, userID)
}

// OnLogin marks the user online after successful authentication.
func (t *Tracker) OnLogin(ctx context.Context, userID int64) error {
	return t.store.SetOnline(ctx, userID)
}

// OnLogout flips the user offline explicitly.
func (t *Tracker) OnLogout(ctx context.Context, userID int64) error {
	return t.store.SetOffline(ctx, userID)
}
