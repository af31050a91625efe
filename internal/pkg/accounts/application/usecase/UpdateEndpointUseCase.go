package usecase

import (
	"context"
	"errors"
	"fmt"

	accounts "github.com/1mmey/SecurityChat/internal/pkg/accounts/domain"
	repository "github.com/1mmey/SecurityChat/internal/pkg/accounts/persistence/repository/port"
)

type UpdateEndpointInput struct {
	UserID int64
	IP     string
	Port   int
}

// UpdateEndpointUseCase stores the (ip, port) hint other clients use to dial
// the user directly.
type UpdateEndpointUseCase struct {
	Repo repository.UserRepository
}

func NewUpdateEndpointUseCase(repo repository.UserRepository) *UpdateEndpointUseCase {
	return &UpdateEndpointUseCase{Repo: repo}
}

func (uc *UpdateEndpointUseCase) Execute(ctx context.Context, in UpdateEndpointInput) error {
	ep := accounts.Endpoint{IP: in.IP, Port: in.Port}
	if err := ep.Validate(); err != nil {
		return err
	}
	if err := uc.Repo.UpdateEndpoint(ctx, in.UserID, ep); err != nil {
		if errors.Is(err, accounts.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
