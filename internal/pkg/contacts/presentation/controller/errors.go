package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	accounts "github.com/1mmey/SecurityChat/internal/pkg/accounts/domain"
	"github.com/1mmey/SecurityChat/internal/pkg/contacts/application/usecase"
	contacts "github.com/1mmey/SecurityChat/internal/pkg/contacts/domain"
)

// handleUseCaseError maps domain errors to HTTP responses.
func handleUseCaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, accounts.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, contacts.ErrSelfContact):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot add yourself"})
	case errors.Is(err, contacts.ErrEdgeExists):
		c.JSON(http.StatusConflict, gin.H{"error": "a request or friendship already exists"})
	case errors.Is(err, contacts.ErrNoPendingRequest):
		c.JSON(http.StatusNotFound, gin.H{"error": "no pending request to accept"})
	case errors.Is(err, contacts.ErrNotContacts):
		c.JSON(http.StatusNotFound, gin.H{"error": "users are not contacts"})
	case errors.Is(err, usecase.ErrPersistence):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected persistence error"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

var errBadIDParam = errors.New("invalid id parameter")

// parseIDParam reads the :id path parameter; on failure it writes the 400
// itself and returns a non-nil error so callers just bail out.
func parseIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, errBadIDParam
	}
	return id, nil
}
