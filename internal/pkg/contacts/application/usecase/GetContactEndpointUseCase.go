package usecase

import (
	"context"
	"errors"
	"fmt"

	accounts "github.com/1mmey/SecurityChat/internal/pkg/accounts/domain"
	userport "github.com/1mmey/SecurityChat/internal/pkg/accounts/persistence/repository/port"
	contacts "github.com/1mmey/SecurityChat/internal/pkg/contacts/domain"
	repository "github.com/1mmey/SecurityChat/internal/pkg/contacts/persistence/repository/port"
)

type GetContactEndpointInput struct {
	OwnerID   int64
	ContactID int64
}

// GetContactEndpointUseCase returns the peer endpoint hint of an accepted
// contact. Non-contacts get ErrNotContacts, not the address.
type GetContactEndpointUseCase struct {
	Repo  repository.ContactRepository
	Users userport.UserRepository
}

func NewGetContactEndpointUseCase(repo repository.ContactRepository, users userport.UserRepository) *GetContactEndpointUseCase {
	return &GetContactEndpointUseCase{Repo: repo, Users: users}
}

func (uc *GetContactEndpointUseCase) Execute(ctx context.Context, in GetContactEndpointInput) (*accounts.Endpoint, error) {
	ok, err := uc.Repo.AreContacts(ctx, in.OwnerID, in.ContactID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !ok {
		return nil, contacts.ErrNotContacts
	}

	user, err := uc.Users.GetByID(ctx, in.ContactID)
	if err != nil {
		if errors.Is(err, accounts.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return user.Endpoint, nil
}
