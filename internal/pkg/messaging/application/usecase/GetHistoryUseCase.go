package usecase

import (
	"context"
	"fmt"

	messaging "github.com/1mmey/SecurityChat/internal/pkg/messaging/domain"
	repository "github.com/1mmey/SecurityChat/internal/pkg/messaging/persistence/repository/port"
)

type GetHistoryInput struct {
	UserID int64
	PeerID int64
	Limit  int
	Offset int
}

// GetHistoryUseCase returns the two-way conversation between a user and a
// peer, oldest first.
type GetHistoryUseCase struct {
	Repo repository.MessageRepository
}

func NewGetHistoryUseCase(repo repository.MessageRepository) *GetHistoryUseCase {
	return &GetHistoryUseCase{Repo: repo}
}

func (uc *GetHistoryUseCase) Execute(ctx context.Context, in GetHistoryInput) ([]messaging.Message, error) {
	msgs, err := uc.Repo.History(ctx, in.UserID, in.PeerID, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}
