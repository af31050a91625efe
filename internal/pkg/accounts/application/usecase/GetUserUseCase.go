package usecase

import (
	"context"
	"errors"
	"fmt"

	accounts "github.com/1mmey/SecurityChat/internal/pkg/accounts/domain"
	repository "github.com/1mmey/SecurityChat/internal/pkg/accounts/persistence/repository/port"
)

// GetUserUseCase serves profile and public-key reads.
type GetUserUseCase struct {
	Repo repository.UserRepository
}

func NewGetUserUseCase(repo repository.UserRepository) *GetUserUseCase {
	return &GetUserUseCase{Repo: repo}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, id int64) (*accounts.User, error) {
	user, err := uc.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, accounts.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return user, nil
}
