package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/1mmey/SecurityChat/internal/infrastructure/auth"
	"github.com/1mmey/SecurityChat/internal/pkg/messaging/application/usecase"
)

// SendMessageController routes a message synchronously: the response tells
// the sender whether it went out live or was stored for later pickup.
type SendMessageController struct {
	uc *usecase.SendMessageUseCase
}

func NewSendMessageController(uc *usecase.SendMessageUseCase) *SendMessageController {
	return &SendMessageController{uc: uc}
}

type sendMessageRequest struct {
	RecipientID int64  `json:"recipient_id" binding:"required"`
	Payload     string `json:"payload" binding:"required"`
}

func (h *SendMessageController) Handle() gin.HandlerFunc {
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

		msg, err := h.uc.Execute(c.Request.Context(), usecase.SendMessageInput{
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
