package task

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	qport "github.com/1mmey/SecurityChat/internal/infrastructure/queue/port"
	"github.com/1mmey/SecurityChat/internal/pkg/messaging/application/usecase"
	messaging "github.com/1mmey/SecurityChat/internal/pkg/messaging/domain"
)

// SendMessageTaskType is the queue task name for routing a message in the
// background.
const SendMessageTaskType = "message:send"

// SendMessageTaskPayload is the JSON payload transported via the queue.
// Kept decoupled from domain types to avoid tight coupling with JSON tags.
type SendMessageTaskPayload struct {
	SenderID    int64  `json:"senderId"`
	RecipientID int64  `json:"recipientId"`
	Payload     string `json:"payload"`
}

// EnqueueSendMessage queues a message for background routing.
func EnqueueSendMessage(ctx context.Context, client qport.Client, p SendMessageTaskPayload) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return client.Enqueue(ctx, qport.Task{Type: SendMessageTaskType, Payload: raw}, qport.EnqueueOption{Queue: "chat", MaxRetry: 5})
}

// RegisterSendMessageTask binds the task handler to the provided server.
// Routing outcomes that are the sender's fault (unknown recipient, empty
// payload, policy denial) are swallowed so the queue does not retry them.
func RegisterSendMessageTask(srv qport.Server, uc *usecase.SendMessageUseCase) {
	srv.Register(SendMessageTaskType, func(ctx context.Context, t qport.Task) error {
		var p SendMessageTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: do not retry indefinitely
			return err
		}

		// give DB a reasonable time budget per task execution
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		_, err := uc.Execute(ctx, usecase.SendMessageInput{
			SenderID:    p.SenderID,
			RecipientID: p.RecipientID,
			Payload:     p.Payload,
		})
		switch {
		case err == nil:
			return nil
		case errors.Is(err, messaging.ErrRecipientNotFound),
			errors.Is(err, messaging.ErrNotAuthorized),
			errors.Is(err, messaging.ErrEmptyPayload):
			// permanent failure, retrying cannot fix it
			return nil
		default:
			return err
		}
	})
}
