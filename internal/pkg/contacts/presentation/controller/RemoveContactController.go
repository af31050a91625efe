package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/1mmey/SecurityChat/internal/infrastructure/auth"
	"github.com/1mmey/SecurityChat/internal/pkg/contacts/application/usecase"
)

// RemoveContactController removes a friendship or withdraws/rejects a
// request; either party may call it.
type RemoveContactController struct {
	uc *usecase.RemoveContactUseCase
}

func NewRemoveContactController(uc *usecase.RemoveContactUseCase) *RemoveContactController {
	return &RemoveContactController{uc: uc}
}

func (h *RemoveContactController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}

		targetID, err := parseIDParam(c)
		if err != nil {
			return
		}

		err = h.uc.Execute(c.Request.Context(), usecase.RemoveContactInput{
			OwnerID:  userID,
			TargetID: targetID,
		})
		if err != nil {
			handleUseCaseError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "contact removed"})
	}
}
