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

type RequestContactInput struct {
	OwnerID  int64
	TargetID int64
}

// RequestContactUseCase starts the NONE -> PENDING transition. The duplicate
// check is bidirectional: an edge in either direction blocks a new request.
type RequestContactUseCase struct {
	Repo  repository.ContactRepository
	Users userport.UserRepository
}

func NewRequestContactUseCase(repo repository.ContactRepository, users userport.UserRepository) *RequestContactUseCase {
	return &RequestContactUseCase{Repo: repo, Users: users}
}

func (uc *RequestContactUseCase) Execute(ctx context.Context, in RequestContactInput) error {
	if in.OwnerID == in.TargetID {
		return contacts.ErrSelfContact
	}

	exists, err := uc.Users.Exists(ctx, in.TargetID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !exists {
		return accounts.ErrUserNotFound
	}

	if _, err := uc.Repo.CreatePending(ctx, in.OwnerID, in.TargetID); err != nil {
		if errors.Is(err, contacts.ErrEdgeExists) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
