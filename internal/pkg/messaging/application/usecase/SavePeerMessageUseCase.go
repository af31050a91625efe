package usecase

import (
	"context"
	"fmt"

	messaging "github.com/1mmey/SecurityChat/internal/pkg/messaging/domain"
	repository "github.com/1mmey/SecurityChat/internal/pkg/messaging/persistence/repository/port"
)

type SavePeerMessageInput struct {
	SenderID    int64
	RecipientID int64
	Payload     string
}

// SavePeerMessageUseCase records a message the client already delivered
// over a direct peer connection. The server only keeps the log entry; it
// never attempts delivery, so the row is written delivered=true with the
// peer transport tag.
type SavePeerMessageUseCase struct {
	Repo repository.MessageRepository
}

func NewSavePeerMessageUseCase(repo repository.MessageRepository) *SavePeerMessageUseCase {
	return &SavePeerMessageUseCase{Repo: repo}
}

func (uc *SavePeerMessageUseCase) Execute(ctx context.Context, in SavePeerMessageInput) (*messaging.Message, error) {
	m, err := messaging.NewMessage(in.SenderID, in.RecipientID, in.Payload)
	if err != nil {
		return nil, err
	}
	m.Transport = messaging.TransportPeer
	m.Delivered = true

	id, err := uc.Repo.Save(ctx, *m)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	m.ID = id
	return m, nil
}
