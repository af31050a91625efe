package repository

import (
	"context"

	accounts "github.com/1mmey/SecurityChat/internal/pkg/accounts/domain"
)

// UserRepository defines persistence operations for accounts. It is also the
// user existence/lookup collaborator the messaging core consumes.
type UserRepository interface {
	Create(ctx context.Context, u accounts.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*accounts.User, error)
	GetByUsername(ctx context.Context, username string) (*accounts.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Search(ctx context.Context, query string, excludeID int64, limit int) ([]accounts.User, error)
	UpdateEndpoint(ctx context.Context, id int64, ep accounts.Endpoint) error
}
