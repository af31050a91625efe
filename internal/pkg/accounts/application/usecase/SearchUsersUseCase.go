package usecase

import (
	"context"
	"fmt"
	"strings"

	accounts "github.com/1mmey/SecurityChat/internal/pkg/accounts/domain"
	repository "github.com/1mmey/SecurityChat/internal/pkg/accounts/persistence/repository/port"
)

type SearchUsersInput struct {
	Query     string
	Requestor int64
	Limit     int
}

// SearchUsersUseCase finds users by username fragment, excluding the caller.
type SearchUsersUseCase struct {
	Repo repository.UserRepository
}

func NewSearchUsersUseCase(repo repository.UserRepository) *SearchUsersUseCase {
	return &SearchUsersUseCase{Repo: repo}
}

func (uc *SearchUsersUseCase) Execute(ctx context.Context, in SearchUsersInput) ([]accounts.User, error) {
	q := strings.TrimSpace(in.Query)
	if q == "" {
		return nil, accounts.ErrInvalidInput
	}
	users, err := uc.Repo.Search(ctx, q, in.Requestor, in.Limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return users, nil
}
