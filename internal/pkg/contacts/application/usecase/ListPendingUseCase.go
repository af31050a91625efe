package usecase

import (
	"context"
	"fmt"

	contacts "github.com/1mmey/SecurityChat/internal/pkg/contacts/domain"
	repository "github.com/1mmey/SecurityChat/internal/pkg/contacts/persistence/repository/port"
)

// ListPendingUseCase returns requests addressed to the user that still await
// an answer.
type ListPendingUseCase struct {
	Repo repository.ContactRepository
}

func NewListPendingUseCase(repo repository.ContactRepository) *ListPendingUseCase {
	return &ListPendingUseCase{Repo: repo}
}

func (uc *ListPendingUseCase) Execute(ctx context.Context, userID int64) ([]contacts.View, error) {
	views, err := uc.Repo.ListPendingFor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return views, nil
}
