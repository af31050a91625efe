package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/1mmey/SecurityChat/internal/infrastructure/auth"
	queueport "github.com/1mmey/SecurityChat/internal/infrastructure/queue/port"
	"github.com/1mmey/SecurityChat/internal/pkg/messaging/application/task"
)

// EnqueueMessageController accepts a message and hands routing to the
// background workers; the client gets a task id back immediately.
type EnqueueMessageController struct {
	q queueport.Client
}

func NewEnqueueMessageController(client queueport.Client) *EnqueueMessageController {
	return &EnqueueMessageController{q: client}
}

func (h *EnqueueMessageController) Handle() gin.HandlerFunc {
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

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		id, err := task.EnqueueSendMessage(ctx, h.q, task.SendMessageTaskPayload{
			SenderID:    userID,
			RecipientID: req.RecipientID,
			Payload:     req.Payload,
		})
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to enqueue message"})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"status":       "queued",
			"task_id":      id,
			"recipient_id": req.RecipientID,
		})
	}
}
