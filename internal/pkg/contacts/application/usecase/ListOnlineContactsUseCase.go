package usecase

import (
	"context"

	contacts "github.com/1mmey/SecurityChat/internal/pkg/contacts/domain"
)

// ListOnlineContactsUseCase filters the accepted contact list down to users
// currently flagged online. It is a join over the contact list and presence
// state, deliberately not a separately maintained structure.
type ListOnlineContactsUseCase struct {
	List *ListContactsUseCase
}

func NewListOnlineContactsUseCase(list *ListContactsUseCase) *ListOnlineContactsUseCase {
	return &ListOnlineContactsUseCase{List: list}
}

func (uc *ListOnlineContactsUseCase) Execute(ctx context.Context, userID int64) ([]contacts.View, error) {
	views, err := uc.List.Execute(ctx, userID)
	if err != nil {
		return nil, err
	}
	online := make([]contacts.View, 0, len(views))
	for _, v := range views {
		if v.IsOnline {
			online = append(online, v)
		}
	}
	return online, nil
}
