package repository

import (
	"context"

	contacts "github.com/1mmey/SecurityChat/internal/pkg/contacts/domain"
)

// ContactRepository defines persistence operations for the contact state
// machine. CreatePending and Accept must be atomic: the duplicate check is
// bidirectional, and accepting creates both directed edges or neither.
type ContactRepository interface {
	// CreatePending inserts owner→target pending unless an edge already
	// exists in either direction, in which case contacts.ErrEdgeExists.
	CreatePending(ctx context.Context, ownerID, targetID int64) (int64, error)

	// Accept flips requester→accepter to accepted and creates the reciprocal
	// accepted edge in one transaction. contacts.ErrNoPendingRequest when no
	// pending requester→accepter edge exists.
	Accept(ctx context.Context, requesterID, accepterID int64) error

	// RemovePair deletes both directed edges regardless of status and
	// reports whether anything was removed.
	RemovePair(ctx context.Context, a, b int64) (bool, error)

	// AreContacts reports whether a has an accepted edge to b.
	AreContacts(ctx context.Context, a, b int64) (bool, error)

	// ListAccepted returns the accepted contacts of owner.
	ListAccepted(ctx context.Context, ownerID int64) ([]contacts.View, error)

	// ListPendingFor returns pending requests addressed to user, i.e. edges
	// requester→user still awaiting an answer.
	ListPendingFor(ctx context.Context, userID int64) ([]contacts.View, error)
}
