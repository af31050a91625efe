package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/1mmey/SecurityChat/internal/pkg/messaging/application/usecase"
	messaging "github.com/1mmey/SecurityChat/internal/pkg/messaging/domain"
)

// handleUseCaseError maps domain errors to HTTP responses.
func handleUseCaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, messaging.ErrRecipientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "recipient not found"})
	case errors.Is(err, messaging.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed to message this user"})
	case errors.Is(err, messaging.ErrEmptyPayload):
		c.JSON(http.StatusBadRequest, gin.H{"error": "payload must not be empty"})
	case errors.Is(err, usecase.ErrPersistence):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected persistence error"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
