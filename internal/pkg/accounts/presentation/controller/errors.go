package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/1mmey/SecurityChat/internal/pkg/accounts/application/usecase"
	accounts "github.com/1mmey/SecurityChat/internal/pkg/accounts/domain"
)

// handleUseCaseError maps domain errors to HTTP responses. Persistence
// failures stay opaque to clients.
func handleUseCaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, accounts.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, accounts.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
	case errors.Is(err, accounts.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
	case errors.Is(err, accounts.ErrBadCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
	case errors.Is(err, accounts.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
	case errors.Is(err, usecase.ErrPersistence):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected persistence error"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

// userResponse is the public shape of a user; the password hash never leaves
// the backend.
type userResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	PublicKey string `json:"public_key,omitempty"`
	IsOnline  bool   `json:"is_online"`
}

func toUserResponse(u *accounts.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		PublicKey: u.PublicKey,
		IsOnline:  u.IsOnline,
	}
}
