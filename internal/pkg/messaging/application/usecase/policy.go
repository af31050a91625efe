package usecase

import (
	"context"

	contactport "github.com/1mmey/SecurityChat/internal/pkg/contacts/persistence/repository/port"
)

// Policy decides whether a sender may message a recipient. The default
// imposes no contact requirement; deployments wanting contacts-only
// messaging swap in ContactsPolicy without touching the send contract.
type Policy interface {
	CanMessage(ctx context.Context, senderID, recipientID int64) (bool, error)
}

// AllowAllPolicy permits any pair of existing users.
type AllowAllPolicy struct{}

func (AllowAllPolicy) CanMessage(ctx context.Context, senderID, recipientID int64) (bool, error) {
	return true, nil
}

// ContactsPolicy only permits messaging between accepted contacts.
type ContactsPolicy struct {
	Contacts contactport.ContactRepository
}

func (p ContactsPolicy) CanMessage(ctx context.Context, senderID, recipientID int64) (bool, error) {
	return p.Contacts.AreContacts(ctx, senderID, recipientID)
}
