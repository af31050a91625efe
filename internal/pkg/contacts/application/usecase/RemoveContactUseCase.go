package usecase

import (
	"context"
	"fmt"

	contacts "github.com/1mmey/SecurityChat/internal/pkg/contacts/domain"
	repository "github.com/1mmey/SecurityChat/internal/pkg/contacts/persistence/repository/port"
)

type RemoveContactInput struct {
	OwnerID  int64
	TargetID int64
}

// RemoveContactUseCase deletes both directed edges regardless of status; it
// covers unfriend, request rejection and request cancellation alike.
type RemoveContactUseCase struct {
	Repo  repository.ContactRepository
	Cache ListCacheInvalidator
}

func NewRemoveContactUseCase(repo repository.ContactRepository, cache ListCacheInvalidator) *RemoveContactUseCase {
	return &RemoveContactUseCase{Repo: repo, Cache: cache}
}

func (uc *RemoveContactUseCase) Execute(ctx context.Context, in RemoveContactInput) error {
	removed, err := uc.Repo.RemovePair(ctx, in.OwnerID, in.TargetID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !removed {
		return contacts.ErrNotContacts
	}
	if uc.Cache != nil {
		uc.Cache.Invalidate(ctx, in.OwnerID, in.TargetID)
	}
	return nil
}
