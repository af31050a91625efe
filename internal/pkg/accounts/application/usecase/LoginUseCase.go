package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/1mmey/SecurityChat/internal/infrastructure/auth"
	accounts "github.com/1mmey/SecurityChat/internal/pkg/accounts/domain"
	repository "github.com/1mmey/SecurityChat/internal/pkg/accounts/persistence/repository/port"
	"github.com/1mmey/SecurityChat/internal/pkg/presence"
)

type LoginInput struct {
	Username string
	Password string
}

type LoginOutput struct {
	Token string
	User  *accounts.User
}

// LoginUseCase verifies credentials, issues an access token and marks the
// user online. A failed lookup and a failed password compare are reported
// identically so usernames cannot be probed.
type LoginUseCase struct {
	Repo    repository.UserRepository
	Issuer  *auth.TokenIssuer
	Tracker *presence.Tracker
}

func NewLoginUseCase(repo repository.UserRepository, issuer *auth.TokenIssuer, tracker *presence.Tracker) *LoginUseCase {
	return &LoginUseCase{Repo: repo, Issuer: issuer, Tracker: tracker}
}

func (uc *LoginUseCase) Execute(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	user, err := uc.Repo.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, accounts.ErrUserNotFound) {
			return nil, accounts.ErrBadCredentials
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, accounts.ErrBadCredentials
	}

	token, err := uc.Issuer.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := uc.Tracker.OnLogin(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &LoginOutput{Token: token, User: user}, nil
}
