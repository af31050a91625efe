package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/1mmey/SecurityChat/internal/infrastructure/auth"
	"github.com/1mmey/SecurityChat/internal/pkg/contacts/application/usecase"
)

// AcceptContactController accepts a pending friend request addressed to the
// caller.
type AcceptContactController struct {
	uc *usecase.AcceptContactUseCase
}

func NewAcceptContactController(uc *usecase.AcceptContactUseCase) *AcceptContactController {
	return &AcceptContactController{uc: uc}
}

func (h *AcceptContactController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}

		requesterID, err := parseIDParam(c)
		if err != nil {
			return
		}

		err = h.uc.Execute(c.Request.Context(), usecase.AcceptContactInput{
			RequesterID: requesterID,
			AccepterID:  userID,
		})
		if err != nil {
			handleUseCaseError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "request accepted"})
	}
}
