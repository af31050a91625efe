package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	accounts "github.com/1mmey/SecurityChat/internal/pkg/accounts/domain"
	repository "github.com/1mmey/SecurityChat/internal/pkg/accounts/persistence/repository/port"
)

// RegisterUserInput carries the data needed to create an account. PublicKey
// is opaque key material generated client-side.
type RegisterUserInput struct {
	Username  string
	Email     string
	Password  string
	PublicKey string
}

// RegisterUserUseCase creates an account with a bcrypt password hash.
type RegisterUserUseCase struct {
	Repo repository.UserRepository
}

func NewRegisterUserUseCase(repo repository.UserRepository) *RegisterUserUseCase {
	return &RegisterUserUseCase{Repo: repo}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, in RegisterUserInput) (*accounts.User, error) {
	if len(in.Password) < 8 {
		return nil, accounts.ErrInvalidInput
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	user, err := accounts.NewUser(in.Username, in.Email, string(hashed), in.PublicKey)
	if err != nil {
		return nil, err
	}

	id, err := uc.Repo.Create(ctx, *user)
	if err != nil {
		if errors.Is(err, accounts.ErrUsernameTaken) || errors.Is(err, accounts.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	user.ID = id
	return user, nil
}
