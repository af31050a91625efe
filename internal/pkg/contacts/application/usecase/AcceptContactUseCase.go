package usecase

import (
	"context"
	"errors"
	"fmt"

	contacts "github.com/1mmey/SecurityChat/internal/pkg/contacts/domain"
	repository "github.com/1mmey/SecurityChat/internal/pkg/contacts/persistence/repository/port"
)

type AcceptContactInput struct {
	RequesterID int64 // who sent the request
	AccepterID  int64 // who is accepting it
}

// AcceptContactUseCase performs PENDING -> ACCEPTED. This is the only
// operation that creates two edges atomically.
type AcceptContactUseCase struct {
	Repo  repository.ContactRepository
	Cache ListCacheInvalidator
}

func NewAcceptContactUseCase(repo repository.ContactRepository, cache ListCacheInvalidator) *AcceptContactUseCase {
	return &AcceptContactUseCase{Repo: repo, Cache: cache}
}

func (uc *AcceptContactUseCase) Execute(ctx context.Context, in AcceptContactInput) error {
	if err := uc.Repo.Accept(ctx, in.RequesterID, in.AccepterID); err != nil {
		if errors.Is(err, contacts.ErrNoPendingRequest) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if uc.Cache != nil {
		uc.Cache.Invalidate(ctx, in.RequesterID, in.AccepterID)
	}
	return nil
}
