package contacts

import (
	"errors"
	"time"
)

// Status of a directed contact edge. A mutual friendship is two accepted
// edges (owner→target and target→owner) created together on accept.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
)

var (
	ErrSelfContact      = errors.New("contacts: cannot add yourself")
	ErrEdgeExists       = errors.New("contacts: a request or friendship already exists")
	ErrNoPendingRequest = errors.New("contacts: no pending request to accept")
	ErrNotContacts      = errors.New("contacts: users are not contacts")
)

// Contact is a directed edge, unique per (owner, target).
type Contact struct {
	ID        int64
	OwnerID   int64
	TargetID  int64
	Status    Status
	CreatedAt time.Time
}

// View is a contact edge joined with the counterpart's user record, shaped
// for list responses.
type View struct {
	UserID   int64     `json:"user_id"`
	Username string    `json:"username"`
	IsOnline bool      `json:"is_online"`
	LastSeen time.Time `json:"last_seen"`
	Since    time.Time `json:"since"`
}
