package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/1mmey/SecurityChat/internal/infrastructure/auth"
	"github.com/1mmey/SecurityChat/internal/pkg/messaging/application/usecase"
)

// SavePeerMessageController logs a message the client already delivered over
// a direct peer connection.
type SavePeerMessageController struct {
	uc *usecase.SavePeerMessageUseCase
}

func NewSavePeerMessageController(uc *usecase.SavePeerMessageUseCase) *SavePeerMessageController {
	return &SavePeerMessageController{uc: uc}
}

func (h *SavePeerMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		msg, err := h.uc.Execute(c.Request.Context(), usecase.SavePeerMessageInput{
			SenderID:    userID,
			RecipientID: req.RecipientID,
			Payload:     req.Payload,
		})
		if err != nil {
			handleUseCaseError(c, err)
			return
		}
		c.JSON(http.StatusCreated, msg)
	}
}
