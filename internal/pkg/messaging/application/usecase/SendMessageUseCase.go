package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	userport "github.com/1mmey/SecurityChat/internal/pkg/accounts/persistence/repository/port"
	messaging "github.com/1mmey/SecurityChat/internal/pkg/messaging/domain"
	repository "github.com/1mmey/SecurityChat/internal/pkg/messaging/persistence/repository/port"
)

// LiveDeliverer attempts hand-off to the recipient's live session and
// reports whether it succeeded. Implementations must treat transport
// failures as "not delivered", never as fatal errors.
type LiveDeliverer interface {
	Deliver(m messaging.Message) bool
}

type SendMessageInput struct {
	SenderID    int64
	RecipientID int64
	Payload     string
}

// SendMessageUseCase is the delivery router. A send succeeds from the
// sender's perspective whenever the recipient exists and is authorized:
// live hand-off is attempted first, and any failure there silently falls
// back to the durable offline path.
type SendMessageUseCase struct {
	Users  userport.UserRepository
	Policy Policy
	Live   LiveDeliverer
	Repo   repository.MessageRepository
}

func NewSendMessageUseCase(users userport.UserRepository, policy Policy, live LiveDeliverer, repo repository.MessageRepository) *SendMessageUseCase {
	if policy == nil {
		policy = AllowAllPolicy{}
	}
	return &SendMessageUseCase{Users: users, Policy: policy, Live: live, Repo: repo}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*messaging.Message, error) {
	m, err := messaging.NewMessage(in.SenderID, in.RecipientID, in.Payload)
	if err != nil {
		return nil, err
	}

	exists, err := uc.Users.Exists(ctx, in.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !exists {
		return nil, messaging.ErrRecipientNotFound
	}

	allowed, err := uc.Policy.CanMessage(ctx, in.SenderID, in.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !allowed {
		return nil, messaging.ErrNotAuthorized
	}

	// Live path first; the delivered flag is decided before the row is
	// written so the store never needs a second update.
	delivered := false
	if uc.Live != nil {
		delivered = uc.Live.Deliver(*m)
	}
	if delivered {
		m.Transport = messaging.TransportLive
		m.Delivered = true
	} else {
		m.Transport = messaging.TransportOffline
		m.Delivered = false
	}

	id, err := uc.Repo.Save(ctx, *m)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	m.ID = id

	logrus.WithFields(logrus.Fields{
		"message_id": m.ID,
		"sender":     m.SenderID,
		"recipient":  m.RecipientID,
		"transport":  m.Transport,
	}).Debug("message routed")
	return m, nil
}
