package realtime

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// Handle is the transport-facing side of a live session. *Connection is the
// production implementation; tests substitute in-memory fakes.
type Handle interface {
	Send(payload []byte) error
	Close(code int, reason string)
}

// Application close codes, distinct so clients can tell eviction causes
// apart: 4001 means a newer login took the slot, 4002 means the transport
// faulted on a delivery.
const (
	closeSessionReplaced = 4001
	closeSendFailed      = 4002
)

// Registry tracks at most one live session per user. It is purely in-memory
// and process-local: it is rebuilt empty on restart, and durable presence is
// reconciled separately. All methods are safe for concurrent use and none of
// them blocks on the network while holding the lock.
type Registry struct {
	mu       sync.RWMutex
	sessions map[int64]Handle
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[int64]Handle)}
}

// Register binds h to userID. A previous session for the same user is evicted
// (last writer wins), closed with a "session replaced" notice and returned so
// the caller can account for it. Returns nil when there was nothing to evict.
func (r *Registry) Register(userID int64, h Handle) Handle {
	r.mu.Lock()
	previous := r.sessions[userID]
	r.sessions[userID] = h
	r.mu.Unlock()

	if previous != nil {
		previous.Close(closeSessionReplaced, "session replaced")
		logrus.WithField("user_id", userID).Info("evicted previous session")
	}
	return previous
}

// Unregister removes the session for userID only if it still is h. A
// connection that lost the race to a newer login must not remove its
// replacement, hence compare-and-remove instead of a blind delete.
func (r *Registry) Unregister(userID int64, h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.sessions[userID]
	if !ok || current != h {
		return false
	}
	delete(r.sessions, userID)
	return true
}

// Lookup returns the live session for userID, if any.
func (r *Registry) Lookup(userID int64) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.sessions[userID]
	return h, ok
}

// Snapshot returns the user ids with a live session, sorted ascending.
// The result is a copy; concurrent connects and disconnects never
// invalidate an iteration over it.
func (r *Registry) Snapshot() []int64 {
	r.mu.RLock()
	ids := make([]int64, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Send delivers payload to userID's live session, best effort. A transport
// failure is local: the faulting session is evicted and false is returned so
// the caller can fall back to durable storage. It never silently drops.
func (r *Registry) Send(userID int64, payload []byte) bool {
	h, ok := r.Lookup(userID)
	if !ok {
		return false
	}
	if err := h.Send(payload); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err,
		}).Warn("live send failed, evicting session")
		r.Unregister(userID, h)
		h.Close(closeSendFailed, "send failed")
		return false
	}
	return true
}

// Broadcast sends payload to every live session and reports how many accepted
// it. The session set is copied first so a slow or dead peer cannot stall
// registration for other users.
func (r *Registry) Broadcast(payload []byte) int {
	ids := r.Snapshot()
	delivered := 0
	for _, id := range ids {
		if r.Send(id, payload) {
			delivered++
		}
	}
	return delivered
}

// Close terminates all tracked sessions and clears the registry.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := make([]Handle, 0, len(r.sessions))
	for _, h := range r.sessions {
		sessions = append(sessions, h)
	}
	r.sessions = make(map[int64]Handle)
	r.mu.Unlock()

	for _, h := range sessions {
		h.Close(1001, "registry shutdown")
	}
}
