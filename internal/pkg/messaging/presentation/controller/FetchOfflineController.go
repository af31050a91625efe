package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/1mmey/SecurityChat/internal/infrastructure/auth"
	"github.com/1mmey/SecurityChat/internal/pkg/messaging/application/usecase"
	messaging "github.com/1mmey/SecurityChat/internal/pkg/messaging/domain"
)

// FetchOfflineController drains the caller's stored messages. The drain is
// destructive; a message is returned by exactly one successful call.
type FetchOfflineController struct {
	uc *usecase.FetchOfflineUseCase
}

func NewFetchOfflineController(uc *usecase.FetchOfflineUseCase) *FetchOfflineController {
	return &FetchOfflineController{uc: uc}
}

func (h *FetchOfflineController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}

		msgs, err := h.uc.Execute(c.Request.Context(), usecase.FetchOfflineInput{UserID: userID})
		if err != nil {
			handleUseCaseError(c, err)
			return
		}
		if msgs == nil {
			msgs = []messaging.Message{}
		}
		c.JSON(http.StatusOK, gin.H{"messages": msgs})
	}
}
