package usecase

import (
	"context"
	"fmt"

	messaging "github.com/1mmey/SecurityChat/internal/pkg/messaging/domain"
	repository "github.com/1mmey/SecurityChat/internal/pkg/messaging/persistence/repository/port"
)

type FetchOfflineInput struct {
	UserID int64
}

// FetchOfflineUseCase drains the store-and-forward queue for a user. The
// drain is destructive: messages are marked delivered the moment they are
// claimed, so a crash between the claim and the client receiving the batch
// loses that batch. Callers that need stronger guarantees should replay
// from History instead.
type FetchOfflineUseCase struct {
	Repo repository.MessageRepository
}

func NewFetchOfflineUseCase(repo repository.MessageRepository) *FetchOfflineUseCase {
	return &FetchOfflineUseCase{Repo: repo}
}

func (uc *FetchOfflineUseCase) Execute(ctx context.Context, in FetchOfflineInput) ([]messaging.Message, error) {
	msgs, err := uc.Repo.DrainOffline(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}
